package repository

import (
	"context"
	"errors"
	"fmt"

	"wardaropa-backend/internal/models"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrConflict reports a unique constraint violation: duplicate username
	// or email, or a second like on the same (post, user) pair.
	ErrConflict = errors.New("conflict")
	// ErrNotFound reports a lookup that matched no row.
	ErrNotFound = errors.New("not found")
)

// Repository is the persistence boundary. Every method is a single
// statement, so none of them needs a transaction.
type Repository interface {
	InitSchema(ctx context.Context) error

	CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	CreatePost(ctx context.Context, usuarioID int64, descripcion, foto string) (int64, error)
	ListPosts(ctx context.Context) ([]models.Post, error)

	AddLike(ctx context.Context, postID, usuarioID int64) error
	RemoveLike(ctx context.Context, postID, usuarioID int64) error

	CreateComment(ctx context.Context, postID, usuarioID int64, texto string) (int64, error)
	ListComments(ctx context.Context, postID int64) ([]models.Comment, error)

	Close()
}

const (
	pgUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// classify maps driver-specific unique violations onto ErrConflict and
// leaves every other error untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return fmt.Errorf("%w: %s", ErrConflict, myErr.Message)
	}

	return err
}

const listPostsQuery = `
	SELECT
		p.id,
		COALESCE(p.descripcion, ''),
		p.foto,
		p.created_at,
		u.id,
		u.username,
		(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)
	FROM posts p
	INNER JOIN users u ON p.usuario_id = u.id
	ORDER BY p.created_at DESC, p.id DESC
`
