package repository

import (
	"context"
	"errors"
	"fmt"

	"wardaropa-backend/internal/db"
	"wardaropa-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of *pgxpool.Pool the repository uses.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

type Postgres struct {
	pool PgxPool
}

func NewPostgres(pool PgxPool) *Postgres {
	return &Postgres{pool: pool}
}

func (r *Postgres) InitSchema(ctx context.Context) error {
	for _, stmt := range db.Schema(db.Postgres) {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

func (r *Postgres) CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error) {
	var id int64
	query := `INSERT INTO users (username, email, password) VALUES ($1, $2, $3) RETURNING id`
	err := r.pool.QueryRow(ctx, query, username, email, passwordHash).Scan(&id)
	return id, classify(err)
}

func (r *Postgres) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	query := `SELECT id, username, email, password, created_at FROM users WHERE username = $1`
	err := r.pool.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Postgres) CreatePost(ctx context.Context, usuarioID int64, descripcion, foto string) (int64, error) {
	var id int64
	query := `INSERT INTO posts (usuario_id, descripcion, foto) VALUES ($1, $2, $3) RETURNING id`
	err := r.pool.QueryRow(ctx, query, usuarioID, descripcion, foto).Scan(&id)
	return id, classify(err)
}

func (r *Postgres) ListPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := r.pool.Query(ctx, listPostsQuery)
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

func (r *Postgres) AddLike(ctx context.Context, postID, usuarioID int64) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO likes (post_id, usuario_id) VALUES ($1, $2)`, postID, usuarioID)
	return classify(err)
}

func (r *Postgres) RemoveLike(ctx context.Context, postID, usuarioID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM likes WHERE post_id = $1 AND usuario_id = $2`, postID, usuarioID)
	return err
}

func (r *Postgres) CreateComment(ctx context.Context, postID, usuarioID int64, texto string) (int64, error) {
	var id int64
	query := `INSERT INTO comments (post_id, usuario_id, texto) VALUES ($1, $2, $3) RETURNING id`
	err := r.pool.QueryRow(ctx, query, postID, usuarioID, texto).Scan(&id)
	return id, classify(err)
}

func (r *Postgres) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.texto, c.created_at, u.id, u.username
		FROM comments c
		INNER JOIN users u ON c.usuario_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`
	rows, err := r.pool.Query(ctx, query, postID)
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

func (r *Postgres) Close() {
	r.pool.Close()
}
