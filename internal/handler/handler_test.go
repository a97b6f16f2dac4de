package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keremsimsek1907/nova-app/internal/logging"
	"github.com/keremsimsek1907/nova-app/internal/middleware"
	"github.com/keremsimsek1907/nova-app/internal/model"
	"github.com/keremsimsek1907/nova-app/internal/repository"
	"github.com/keremsimsek1907/nova-app/internal/service"
)

var errStoreDown = errors.New("store down")

type downItems struct{}

func (downItems) Create(context.Context, *model.Item) error { return errStoreDown }
func (downItems) ListByOwner(context.Context, string) ([]model.Item, error) {
	return nil, errStoreDown
}
func (downItems) DeleteByOwner(context.Context, string, string) (bool, error) {
	return false, errStoreDown
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func asUser(r *http.Request, subject string) *http.Request {
	return r.WithContext(middleware.WithIdentity(r.Context(), model.Identity{Subject: subject}))
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["error"]
}

func TestHandleCreate_BodyLimits(t *testing.T) {
	h := NewItemHandler(service.NewItemService(repository.NewMemoryItemRepository()), logging.Discard())

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"oversized", `{"name":"` + strings.Repeat("n", maxBodyBytes) + `"}`, http.StatusRequestEntityTooLarge},
		{"malformed", `{"name":`, http.StatusBadRequest},
		{"wrong type", `{"name":42}`, http.StatusBadRequest},
		{"ok", `{"name":"milk"}`, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asUser(httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(tt.body)), "u1")
			rec := httptest.NewRecorder()

			h.HandleCreate(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestItemHandlers_StoreFailureIsGeneric500(t *testing.T) {
	h := NewItemHandler(service.NewItemService(downItems{}), logging.Discard())

	routes := []struct {
		name string
		req  *http.Request
		fn   http.HandlerFunc
	}{
		{"list", httptest.NewRequest(http.MethodGet, "/api/items", nil), h.HandleList},
		{"create", httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(`{"name":"x"}`)), h.HandleCreate},
		{"delete", httptest.NewRequest(http.MethodDelete, "/api/items/1", nil), h.HandleDelete},
	}

	for _, rt := range routes {
		t.Run(rt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rt.fn(rec, asUser(rt.req, "u1"))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			msg := errorBody(t, rec)
			assert.Equal(t, "internal server error", msg)
			assert.NotContains(t, msg, errStoreDown.Error())
		})
	}
}

func TestItemHandlers_RequireIdentity(t *testing.T) {
	h := NewItemHandler(service.NewItemService(repository.NewMemoryItemRepository()), logging.Discard())

	rec := httptest.NewRecorder()
	h.HandleList(rec, httptest.NewRequest(http.MethodGet, "/api/items", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleDelete_UsesURLParam(t *testing.T) {
	items := repository.NewMemoryItemRepository()
	h := NewItemHandler(service.NewItemService(items), logging.Discard())

	item := &model.Item{Name: "x", OwnerID: "u1"}
	require.NoError(t, items.Create(context.Background(), item))

	r := chi.NewRouter()
	r.Delete("/api/items/{id}", func(w http.ResponseWriter, req *http.Request) {
		h.HandleDelete(w, asUser(req, "u1"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/items/"+item.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	left, err := items.ListByOwner(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestHandleMe_UnknownSubject(t *testing.T) {
	svc := service.NewAuthService(repository.NewMemoryUserRepository(), "handler-secret-0123456", time.Hour)
	h := NewAuthHandler(svc, logging.Discard())

	rec := httptest.NewRecorder()
	h.HandleMe(rec, asUser(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), "gone"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user not found", errorBody(t, rec))
}

func TestHandleStatus(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		store Pinger
		ready bool
	}{
		{"reachable", pinger{}, true},
		{"unreachable", pinger{err: errStoreDown}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewStatusHandler(tt.store)
			h.now = func() time.Time { return fixed }

			rec := httptest.NewRecorder()
			h.HandleStatus(rec, httptest.NewRequest(http.MethodGet, "/api", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var got model.StatusResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, model.StatusResponse{Status: "API OK", StoreReady: tt.ready, Time: fixed}, got)
		})
	}
}
