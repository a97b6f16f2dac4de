package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/keremsimsek1907/nova-app/internal/config"
	"github.com/keremsimsek1907/nova-app/internal/model"
)

// NewMemoryStore returns a process-local store for development and tests.
// Nothing survives a restart.
func NewMemoryStore() *Store {
	return &Store{
		Users:  NewMemoryUserRepository(),
		Items:  NewMemoryItemRepository(),
		driver: config.DriverMemory,
	}
}

// MemoryUserRepository keeps users in maps guarded by a RWMutex.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string
}

var _ UserRepository = (*MemoryUserRepository)(nil)

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]model.User),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return ErrDuplicateEmail
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()

	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// MemoryItemRepository keeps items in creation order.
type MemoryItemRepository struct {
	mu    sync.RWMutex
	items []model.Item
}

var _ ItemRepository = (*MemoryItemRepository)(nil)

func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{}
}

func (r *MemoryItemRepository) Create(ctx context.Context, item *model.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()
	r.items = append(r.items, *item)
	return nil
}

func (r *MemoryItemRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Item{}
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].OwnerID == ownerID {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *MemoryItemRepository) DeleteByOwner(ctx context.Context, ownerID, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id && it.OwnerID == ownerID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
