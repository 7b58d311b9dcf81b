package models

import "time"

type Comment struct {
	ID        int64     `json:"id"`
	Texto     string    `json:"texto"`
	CreatedAt time.Time `json:"created_at"`
	UsuarioID int64     `json:"usuario_id"`
	Username  string    `json:"username"`
}

type CreateCommentRequest struct {
	UsuarioID ID     `json:"usuario_id" form:"usuario_id"`
	Texto     string `json:"texto" form:"texto"`
}
