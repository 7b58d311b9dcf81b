package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"wardaropa-backend/internal/models"
)

type likeKey struct {
	postID    int64
	usuarioID int64
}

type memPost struct {
	id          int64
	usuarioID   int64
	descripcion string
	foto        string
	createdAt   time.Time
}

type memComment struct {
	id        int64
	postID    int64
	usuarioID int64
	texto     string
	createdAt time.Time
}

// Memory is an in-process Repository guarded by a mutex. It enforces the
// same unique and foreign-key constraints as the SQL schema and is meant for
// local development and tests.
type Memory struct {
	mu sync.RWMutex

	users      map[int64]*models.User
	byUsername map[string]int64
	byEmail    map[string]int64
	posts      map[int64]*memPost
	likes      map[likeKey]struct{}
	comments   []*memComment

	lastUserID    int64
	lastPostID    int64
	lastCommentID int64

	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users:      make(map[int64]*models.User),
		byUsername: make(map[string]int64),
		byEmail:    make(map[string]int64),
		posts:      make(map[int64]*memPost),
		likes:      make(map[likeKey]struct{}),
		now:        time.Now,
	}
}

func (m *Memory) InitSchema(ctx context.Context) error {
	return nil
}

func (m *Memory) CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byUsername[username]; ok {
		return 0, fmt.Errorf("%w: username", ErrConflict)
	}
	if _, ok := m.byEmail[email]; ok {
		return 0, fmt.Errorf("%w: email", ErrConflict)
	}

	m.lastUserID++
	u := &models.User{
		ID:           m.lastUserID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    m.now(),
	}
	m.users[u.ID] = u
	m.byUsername[username] = u.ID
	m.byEmail[email] = u.ID
	return u.ID, nil
}

func (m *Memory) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	u := *m.users[id]
	return &u, nil
}

func (m *Memory) CreatePost(ctx context.Context, usuarioID int64, descripcion, foto string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[usuarioID]; !ok {
		return 0, fmt.Errorf("foreign key violation: user %d does not exist", usuarioID)
	}

	m.lastPostID++
	m.posts[m.lastPostID] = &memPost{
		id:          m.lastPostID,
		usuarioID:   usuarioID,
		descripcion: descripcion,
		foto:        foto,
		createdAt:   m.now(),
	}
	return m.lastPostID, nil
}

func (m *Memory) ListPosts(ctx context.Context) ([]models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	likes := make(map[int64]int64)
	for k := range m.likes {
		likes[k.postID]++
	}
	comments := make(map[int64]int64)
	for _, c := range m.comments {
		comments[c.postID]++
	}

	posts := make([]models.Post, 0, len(m.posts))
	for _, p := range m.posts {
		posts = append(posts, models.Post{
			ID:            p.id,
			Descripcion:   p.descripcion,
			Foto:          p.foto,
			CreatedAt:     p.createdAt,
			UsuarioID:     p.usuarioID,
			Username:      m.users[p.usuarioID].Username,
			LikesCount:    likes[p.id],
			CommentsCount: comments[p.id],
		})
	}

	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts, nil
}

func (m *Memory) AddLike(ctx context.Context, postID, usuarioID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkRefs(postID, usuarioID); err != nil {
		return err
	}

	key := likeKey{postID: postID, usuarioID: usuarioID}
	if _, ok := m.likes[key]; ok {
		return fmt.Errorf("%w: unique_like", ErrConflict)
	}
	m.likes[key] = struct{}{}
	return nil
}

func (m *Memory) RemoveLike(ctx context.Context, postID, usuarioID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.likes, likeKey{postID: postID, usuarioID: usuarioID})
	return nil
}

func (m *Memory) CreateComment(ctx context.Context, postID, usuarioID int64, texto string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkRefs(postID, usuarioID); err != nil {
		return 0, err
	}

	m.lastCommentID++
	m.comments = append(m.comments, &memComment{
		id:        m.lastCommentID,
		postID:    postID,
		usuarioID: usuarioID,
		texto:     texto,
		createdAt: m.now(),
	})
	return m.lastCommentID, nil
}

func (m *Memory) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	comments := make([]models.Comment, 0)
	for _, c := range m.comments {
		if c.postID != postID {
			continue
		}
		comments = append(comments, models.Comment{
			ID:        c.id,
			Texto:     c.texto,
			CreatedAt: c.createdAt,
			UsuarioID: c.usuarioID,
			Username:  m.users[c.usuarioID].Username,
		})
	}

	sort.SliceStable(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (m *Memory) Close() {}

// checkRefs must be called with m.mu held.
func (m *Memory) checkRefs(postID, usuarioID int64) error {
	if _, ok := m.posts[postID]; !ok {
		return fmt.Errorf("foreign key violation: post %d does not exist", postID)
	}
	if _, ok := m.users[usuarioID]; !ok {
		return fmt.Errorf("foreign key violation: user %d does not exist", usuarioID)
	}
	return nil
}
