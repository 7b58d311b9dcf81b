package main

import "wardaropa-backend/internal/app"

func main() {
	app.Run()
}
