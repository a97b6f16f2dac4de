package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/keremsimsek1907/nova-app/internal/model"
	"github.com/keremsimsek1907/nova-app/internal/repository"
)

// MaxItemNameLength caps item names, counted in characters.
const MaxItemNameLength = 200

var (
	ErrNameRequired = errors.New("name is required")
	ErrNameTooLong  = fmt.Errorf("name must be at most %d characters", MaxItemNameLength)
)

// ItemService scopes every item operation to the calling user.
type ItemService struct {
	repo repository.ItemRepository
}

// NewItemService creates a new ItemService.
func NewItemService(repo repository.ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

// List returns the caller's items, newest first. No items is an empty slice.
func (s *ItemService) List(ctx context.Context, owner string) ([]model.ItemResponse, error) {
	items, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return itemsToResponse(items), nil
}

// Create stores a new item owned by the caller.
func (s *ItemService) Create(ctx context.Context, owner string, req model.CreateItemRequest) (model.ItemResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.ItemResponse{}, ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxItemNameLength {
		return model.ItemResponse{}, ErrNameTooLong
	}

	item := &model.Item{Name: name, OwnerID: owner}
	if err := s.repo.Create(ctx, item); err != nil {
		return model.ItemResponse{}, fmt.Errorf("create item: %w", err)
	}

	return model.ItemResponse{ID: item.ID, Name: item.Name}, nil
}

// Delete removes the item when the caller owns it. Unknown, foreign and
// malformed ids are a silent no-op; only store failures are reported.
func (s *ItemService) Delete(ctx context.Context, owner, id string) (model.DeleteResponse, error) {
	deleted, err := s.repo.DeleteByOwner(ctx, owner, id)
	if err != nil {
		return model.DeleteResponse{}, fmt.Errorf("delete item: %w", err)
	}
	if !deleted {
		slog.DebugContext(ctx, "item delete matched nothing", "owner", owner, "item_id", id)
	}
	return model.DeleteResponse{OK: true}, nil
}

// itemsToResponse converts items to their public view.
func itemsToResponse(items []model.Item) []model.ItemResponse {
	result := make([]model.ItemResponse, len(items))
	for i, it := range items {
		result[i] = model.ItemResponse{ID: it.ID, Name: it.Name}
	}
	return result
}
