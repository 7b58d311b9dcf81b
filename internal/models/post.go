package models

import "time"

// Post is a feed row: the post itself plus its author and engagement counts.
type Post struct {
	ID            int64     `json:"id"`
	Descripcion   string    `json:"descripcion"`
	Foto          string    `json:"foto"`
	CreatedAt     time.Time `json:"created_at"`
	UsuarioID     int64     `json:"usuario_id"`
	Username      string    `json:"username"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
}

type CreatePostRequest struct {
	UsuarioID   ID     `json:"usuario_id" form:"usuario_id"`
	Descripcion string `json:"descripcion" form:"descripcion"`
	Foto        string `json:"foto" form:"foto"`
}

type LikeRequest struct {
	UsuarioID ID `json:"usuario_id" form:"usuario_id"`
}
