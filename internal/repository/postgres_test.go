package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgres(t *testing.T) (*Postgres, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgres(mock), mock
}

func TestPostgres_InitSchema(t *testing.T) {
	repo, mock := newMockPostgres(t)

	for _, table := range []string{"users", "posts", "likes", "comments"} {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + table).WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	}

	assert.NoError(t, repo.InitSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CreateUser(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(mock pgxmock.PgxPoolIface)
		wantID    int64
		wantError error
	}{
		{
			name: "inserted",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users \(username, email, password\) VALUES \(\$1, \$2, \$3\) RETURNING id`).
					WithArgs("ana", "ana@example.com", "hash").
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
			},
			wantID: 7,
		},
		{
			name: "duplicate email",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO users").
					WithArgs("ana", "ana@example.com", "hash").
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
			},
			wantError: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockPostgres(t)
			tt.setup(mock)

			id, err := repo.CreateUser(context.Background(), "ana", "ana@example.com", "hash")
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgres_GetUserByUsername(t *testing.T) {
	repo, mock := newMockPostgres(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, username, email, password, created_at FROM users WHERE username = \$1`).
		WithArgs("ana").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password", "created_at"}).
			AddRow(int64(3), "ana", "ana@example.com", "hash", created))
	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	u, err := repo.GetUserByUsername(context.Background(), "ana")
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.Equal(t, created, u.CreatedAt)

	_, err = repo.GetUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CreatePost_ForeignKeyIsGenericError(t *testing.T) {
	repo, mock := newMockPostgres(t)

	mock.ExpectQuery(`INSERT INTO posts \(usuario_id, descripcion, foto\) VALUES \(\$1, \$2, \$3\) RETURNING id`).
		WithArgs(int64(99), "", "data:x").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "posts_usuario_id_fkey"})

	_, err := repo.CreatePost(context.Background(), 99, "", "data:x")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListPosts(t *testing.T) {
	repo, mock := newMockPostgres(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM posts p(.|\s)*ORDER BY p\.created_at DESC, p\.id DESC`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "descripcion", "foto", "created_at", "usuario_id", "username", "likes", "comments"}).
			AddRow(int64(2), "second", "data:b", now, int64(1), "ana", int64(1), int64(2)).
			AddRow(int64(1), "", "data:a", now.Add(-time.Minute), int64(1), "ana", int64(0), int64(0)))

	posts, err := repo.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(2), posts[0].ID)
	assert.Equal(t, int64(1), posts[0].LikesCount)
	assert.Equal(t, int64(2), posts[0].CommentsCount)
	assert.Equal(t, "", posts[1].Descripcion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListPosts_EmptyIsNotNil(t *testing.T) {
	repo, mock := newMockPostgres(t)

	mock.ExpectQuery("FROM posts p").
		WillReturnRows(pgxmock.NewRows([]string{"id", "descripcion", "foto", "created_at", "usuario_id", "username", "likes", "comments"}))

	posts, err := repo.ListPosts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestPostgres_Likes(t *testing.T) {
	repo, mock := newMockPostgres(t)

	mock.ExpectExec(`INSERT INTO likes \(post_id, usuario_id\) VALUES \(\$1, \$2\)`).
		WithArgs(int64(5), int64(1)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO likes").
		WithArgs(int64(5), int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "unique_like"})
	mock.ExpectExec(`DELETE FROM likes WHERE post_id = \$1 AND usuario_id = \$2`).
		WithArgs(int64(5), int64(9)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	ctx := context.Background()
	assert.NoError(t, repo.AddLike(ctx, 5, 1))
	assert.ErrorIs(t, repo.AddLike(ctx, 5, 1), ErrConflict)
	assert.NoError(t, repo.RemoveLike(ctx, 5, 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Comments(t *testing.T) {
	repo, mock := newMockPostgres(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO comments \(post_id, usuario_id, texto\) VALUES \(\$1, \$2, \$3\) RETURNING id`).
		WithArgs(int64(5), int64(1), "nice").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectQuery(`WHERE c\.post_id = \$1\s+ORDER BY c\.created_at ASC, c\.id ASC`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "texto", "created_at", "usuario_id", "username"}).
			AddRow(int64(10), "first", now.Add(-time.Minute), int64(2), "bea").
			AddRow(int64(11), "nice", now, int64(1), "ana"))

	ctx := context.Background()
	id, err := repo.CreateComment(ctx, 5, 1, "nice")
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)

	comments, err := repo.ListComments(ctx, 5)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Texto)
	assert.Equal(t, "ana", comments[1].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
