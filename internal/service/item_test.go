package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/keremsimsek1907/nova-app/internal/model"
	"github.com/keremsimsek1907/nova-app/internal/repository"
)

type failingItems struct{}

func (failingItems) Create(context.Context, *model.Item) error { return errStoreDown }
func (failingItems) ListByOwner(context.Context, string) ([]model.Item, error) {
	return nil, errStoreDown
}
func (failingItems) DeleteByOwner(context.Context, string, string) (bool, error) {
	return false, errStoreDown
}

func newTestItemService() *ItemService {
	return NewItemService(repository.NewMemoryItemRepository())
}

func names(items []model.ItemResponse) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{"empty", "", ErrNameRequired},
		{"whitespace", "   ", ErrNameRequired},
		{"too long", strings.Repeat("n", MaxItemNameLength+1), ErrNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestItemService()
			_, err := svc.Create(context.Background(), "u-1", model.CreateItemRequest{Name: tt.in})
			if err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreate_TrimsName(t *testing.T) {
	svc := newTestItemService()

	resp, err := svc.Create(context.Background(), "u-1", model.CreateItemRequest{Name: "  book "})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if resp.Name != "book" || resp.ID == "" {
		t.Errorf("Create() = %+v", resp)
	}
}

func TestList_IsolatedPerOwner(t *testing.T) {
	svc := newTestItemService()
	ctx := context.Background()

	for _, n := range []string{"first", "n"} {
		if _, err := svc.Create(ctx, "u-1", model.CreateItemRequest{Name: n}); err != nil {
			t.Fatalf("Create() unexpected error: %v", err)
		}
	}

	other, err := svc.List(ctx, "u-2")
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if other == nil || len(other) != 0 {
		t.Errorf("expected empty list for u-2, got %#v", other)
	}

	mine, err := svc.List(ctx, "u-1")
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if got := names(mine); len(got) != 2 || got[0] != "n" || got[1] != "first" {
		t.Errorf("expected [n first], got %v", got)
	}
}

func TestDelete_NonOwnerIsSilentNoop(t *testing.T) {
	svc := newTestItemService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u-1", model.CreateItemRequest{Name: "book"})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	resp, err := svc.Delete(ctx, "u-2", created.ID)
	if err != nil || !resp.OK {
		t.Fatalf("Delete() = %+v, %v; want ok", resp, err)
	}

	mine, _ := svc.List(ctx, "u-1")
	if len(mine) != 1 || mine[0].ID != created.ID {
		t.Errorf("item should survive a foreign delete, got %+v", mine)
	}
}

func TestCreateListDeleteRoundTrip(t *testing.T) {
	svc := newTestItemService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u-1", model.CreateItemRequest{Name: "book"})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	before, _ := svc.List(ctx, "u-1")
	if len(before) != 1 || before[0] != created {
		t.Fatalf("expected [%+v], got %+v", created, before)
	}

	resp, err := svc.Delete(ctx, "u-1", created.ID)
	if err != nil || !resp.OK {
		t.Fatalf("Delete() = %+v, %v", resp, err)
	}

	after, _ := svc.List(ctx, "u-1")
	if len(after) != 0 {
		t.Errorf("expected empty list after delete, got %+v", after)
	}

	again, err := svc.Delete(ctx, "u-1", created.ID)
	if err != nil || !again.OK {
		t.Errorf("repeated Delete() = %+v, %v; want ok", again, err)
	}
}

func TestItemService_StoreErrors(t *testing.T) {
	svc := NewItemService(failingItems{})
	ctx := context.Background()

	if _, err := svc.List(ctx, "u-1"); !errors.Is(err, errStoreDown) {
		t.Errorf("List() expected store error, got %v", err)
	}
	if _, err := svc.Create(ctx, "u-1", model.CreateItemRequest{Name: "x"}); !errors.Is(err, errStoreDown) {
		t.Errorf("Create() expected store error, got %v", err)
	}
	if _, err := svc.Delete(ctx, "u-1", "i-1"); !errors.Is(err, errStoreDown) {
		t.Errorf("Delete() expected store error, got %v", err)
	}
}

func TestItemsToResponse_EmptySlice(t *testing.T) {
	result := itemsToResponse(nil)

	if result == nil {
		t.Fatal("expected non-nil empty slice, got nil")
	}
	if len(result) != 0 {
		t.Errorf("expected 0 items, got %d", len(result))
	}
}
