package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/models"
)

// ErrDuplicateEmail is returned by Create when the email uniqueness
// constraint rejects the insert. The store is the only arbiter for
// concurrent sign-ups with the same email.
var ErrDuplicateEmail = errors.New("user with such email already exists")

// ErrNotFound is returned when no record matches the query.
var ErrNotFound = sql.ErrNoRows

type Storage struct {
	Users interface {
		GetByEmail(ctx context.Context, email string) (*models.User, error)
		Create(ctx context.Context, user *models.User) error
		SetVerified(ctx context.Context, id int64) error
	}
}

func NewStorage(db *sql.DB) Storage {
	return Storage{
		Users: &UsersStore{db: db},
	}
}
