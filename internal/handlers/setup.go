package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/RygelGasparTheOG/rycord/internal/models"
	"github.com/RygelGasparTheOG/rycord/internal/store"
)

var sugar *zap.SugaredLogger
var chatStore *store.Store
var validate = validator.New()

// Setup wires the handler package to its collaborators, builds the route
// tree and serves it. Handlers own no state; every operation goes through
// the store.
func Setup(cfg *models.ConfigFile, _sugar *zap.SugaredLogger, _store *store.Store) error {
	sugar = _sugar
	chatStore = _store

	address := fmt.Sprintf("%s:%s", cfg.Address, cfg.Port)
	return http.ListenAndServe(address, router(cfg))
}

func router(cfg *models.ConfigFile) chi.Router {
	r := chi.NewRouter()

	if cfg.PrintHttpRequests {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(api chi.Router) {
		api.Post("/signup", Signup)
		api.Post("/login", Login)

		api.Get("/channels", GetChannels)
		api.Get("/messages", GetMessages)
		api.Post("/send", SendMessage)
		api.Post("/delete", DeleteMessage)

		api.Post("/upload", UploadFile)
		api.Get("/file/{fileID}", GetFile)

		api.Post("/heartbeat", Heartbeat)
		api.Get("/users", GetUsers)

		api.Route("/admin", func(r chi.Router) {
			r.Post("/login", AdminLogin)
			r.Get("/data", GetAdminData)
			r.Post("/data", SaveAdminData)
		})
	})

	// Static assets are served outside the store's critical section.
	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}
