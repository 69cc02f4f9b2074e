package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"runTrackerAPI/internal/user"
)

const userColumns = `uuid, email, username, image_url, created_at, updated_at`

type UserService struct {
	db *pgxpool.Pool
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Register(ctx context.Context, req *user.RegisterRequest) (*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{}
	err = s.db.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		req.Email, req.Username, string(hash)).Scan(
		&u.UUID, &u.Email, &u.Username, &u.ImageURL, &u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (s *UserService) Login(ctx context.Context, req *user.LoginRequest) (*user.User, error) {
	u := &user.User{}
	var hash string
	err := s.db.QueryRow(ctx,
		"SELECT "+userColumns+", password_hash FROM users WHERE email = $1", req.Email).Scan(
		&u.UUID, &u.Email, &u.Username, &u.ImageURL, &u.CreatedAt, &u.UpdatedAt, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) GetByUUID(ctx context.Context, userUUID uuid.UUID) (*user.User, error) {
	u := &user.User{}
	err := s.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE uuid = $1", userUUID).Scan(
		&u.UUID, &u.Email, &u.Username, &u.ImageURL, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userUUID uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error) {
	u := &user.User{}
	err := s.db.QueryRow(ctx, `
		UPDATE users
		SET username = COALESCE($2, username),
		    image_url = COALESCE($3, image_url),
		    updated_at = NOW()
		WHERE uuid = $1
		RETURNING `+userColumns,
		userUUID, req.Username, req.ImageURL).Scan(
		&u.UUID, &u.Email, &u.Username, &u.ImageURL, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}
