package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"wardaropa-backend/internal/models"
	"wardaropa-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type UserService struct {
	repo repository.Repository
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewUserService hashes passwords with the given bcrypt cost. Costs outside
// bcrypt's range fall back to bcrypt.DefaultCost (10).
func NewUserService(repo repository.Repository, cost int) *UserService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &UserService{repo: repo, cost: cost}
}

func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordBytes(req.Password), s.cost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.repo.CreateUser(ctx, req.Username, req.Email, string(hash))
	if errors.Is(err, repository.ErrConflict) {
		return 0, ErrUserExists
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Login verifies the credentials and returns the public user view. An
// unknown username and a wrong password produce the same error. No session
// token is issued.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.UserInfo, error) {
	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if errors.Is(err, repository.ErrNotFound) {
		// Burn a comparison so response time does not reveal whether the user exists.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), passwordBytes(req.Password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordBytes(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &models.UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// bcrypt only reads the first 72 bytes and x/crypto rejects longer input, so
// passwords are cut to that length on both the hashing and the checking side.
const maxPasswordBytes = 72

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

func (s *UserService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("wardaropa-dummy-password"), s.cost)
	})
	return s.dummyHash
}
