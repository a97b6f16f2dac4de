// Package server assembles the HTTP routes of the nova API.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/keremsimsek1907/nova-app/internal/handler"
	"github.com/keremsimsek1907/nova-app/internal/middleware"
	"github.com/keremsimsek1907/nova-app/internal/repository"
	"github.com/keremsimsek1907/nova-app/internal/service"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Store       *repository.Store
	Auth        *service.AuthService
	Items       *service.ItemService
	Log         *slog.Logger
	CORSOrigins []string
	StaticDir   string
}

// NewRouter builds the application router.
func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	authHandler := handler.NewAuthHandler(d.Auth, log)
	itemHandler := handler.NewItemHandler(d.Items, log)
	statusHandler := handler.NewStatusHandler(d.Store)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recover(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", statusHandler.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", statusHandler.HandleStatus)

		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(d.Auth))
			r.Get("/auth/me", authHandler.HandleMe)

			r.Get("/items", itemHandler.HandleList)
			r.Post("/items", itemHandler.HandleCreate)
			r.Delete("/items/{id}", itemHandler.HandleDelete)
		})

		r.NotFound(apiNotFound)
	})

	if d.StaticDir != "" {
		r.Get("/*", spaHandler(d.StaticDir))
	}

	return r
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
}

// spaHandler serves files from dir and falls back to dir/index.html for
// paths that do not name a file. /api paths never reach it.
func spaHandler(dir string) http.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			files.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, index)
	}
}
