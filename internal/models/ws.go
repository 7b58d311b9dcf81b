package models

// WebSocket envelopes for the echo endpoint
type WSWelcome struct {
	Message string `json:"message"`
}

type WSEcho struct {
	Echo string `json:"echo"`
}
