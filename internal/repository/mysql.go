package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wardaropa-backend/internal/db"
	"wardaropa-backend/internal/models"
)

// MySQL stores data through database/sql and go-sql-driver/mysql. The pool
// must be opened with parseTime enabled (see db.NewMySQLPool).
type MySQL struct {
	db *sql.DB
}

func NewMySQL(db *sql.DB) *MySQL {
	return &MySQL{db: db}
}

func (r *MySQL) InitSchema(ctx context.Context) error {
	// DDL auto-commits in MySQL, so the statements run one by one outside a tx.
	for _, stmt := range db.Schema(db.MySQL) {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

func (r *MySQL) insert(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify(err)
	}
	return res.LastInsertId()
}

func (r *MySQL) CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error) {
	return r.insert(ctx, `INSERT INTO users (username, email, password) VALUES (?, ?, ?)`, username, email, passwordHash)
}

func (r *MySQL) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	query := `SELECT id, username, email, password, created_at FROM users WHERE username = ?`
	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *MySQL) CreatePost(ctx context.Context, usuarioID int64, descripcion, foto string) (int64, error) {
	return r.insert(ctx, `INSERT INTO posts (usuario_id, descripcion, foto) VALUES (?, ?, ?)`, usuarioID, descripcion, foto)
}

func (r *MySQL) ListPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, listPostsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Descripcion, &p.Foto, &p.CreatedAt, &p.UsuarioID, &p.Username, &p.LikesCount, &p.CommentsCount); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *MySQL) AddLike(ctx context.Context, postID, usuarioID int64) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO likes (post_id, usuario_id) VALUES (?, ?)`, postID, usuarioID)
	return classify(err)
}

func (r *MySQL) RemoveLike(ctx context.Context, postID, usuarioID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE post_id = ? AND usuario_id = ?`, postID, usuarioID)
	return err
}

func (r *MySQL) CreateComment(ctx context.Context, postID, usuarioID int64, texto string) (int64, error) {
	return r.insert(ctx, `INSERT INTO comments (post_id, usuario_id, texto) VALUES (?, ?, ?)`, postID, usuarioID, texto)
}

func (r *MySQL) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.texto, c.created_at, u.id, u.username
		FROM comments c
		INNER JOIN users u ON c.usuario_id = u.id
		WHERE c.post_id = ?
		ORDER BY c.created_at ASC, c.id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Texto, &c.CreatedAt, &c.UsuarioID, &c.Username); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *MySQL) Close() {
	r.db.Close()
}
