package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/keremsimsek1907/nova-app/internal/config"
	"github.com/keremsimsek1907/nova-app/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository persists user credentials.
type UserRepository interface {
	// Create stores the user and fills in its ID and CreatedAt.
	// A taken email yields ErrDuplicateEmail.
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// ItemRepository persists items. Every read and delete is scoped to an owner.
type ItemRepository interface {
	// Create stores the item and fills in its ID and CreatedAt.
	Create(ctx context.Context, item *model.Item) error
	// ListByOwner returns the owner's items, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Item, error)
	// DeleteByOwner removes the item only when both id and owner match and
	// reports whether anything was removed.
	DeleteByOwner(ctx context.Context, ownerID, id string) (bool, error)
}

// Store bundles the repositories of one backend with its connection lifecycle.
type Store struct {
	Users UserRepository
	Items ItemRepository

	driver string
	ping   func(ctx context.Context) error
	close  func(ctx context.Context) error
}

// Open connects to the configured backend, verifies it is reachable within
// cfg.ConnectTimeout and prepares indexes or tables.
func Open(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return openMongo(ctx, cfg)
	case config.DriverMySQL:
		return openMySQL(ctx, cfg)
	case config.DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("open store: unknown driver %q", cfg.Driver)
	}
}

// Driver names the backend behind the store.
func (s *Store) Driver() string {
	return s.driver
}

// Ping reports whether the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the backend connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
