package api

import (
	"net/http"

	"github.com/shaiso/glimpse/internal/telemetry"
)

// Routes возвращает http.Handler со всеми маршрутами и middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	chain := Chain(
		Recovery(h.logger),
		RequestID(h.logger),
		Logging(),
		Metrics(),
		SecurityHeaders(),
		CORS(h.corsOrigins),
	)
	return chain(mux)
}

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /healthz", h.Health)
	mux.Handle("GET /metrics", telemetry.MetricsHandler())

	// Movies
	mux.HandleFunc("GET /movies", h.ListMovies)
	mux.HandleFunc("POST /movies", h.CreateMovie)
	mux.HandleFunc("GET /movies/{id}", h.GetMovie)
	mux.HandleFunc("PATCH /movies/{id}", h.UpdateMovie)
	mux.HandleFunc("DELETE /movies/{id}", h.DeleteMovie)
	mux.HandleFunc("POST /movies/{id}/restore", h.RestoreMovie)

	// Categories
	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("POST /categories", h.CreateCategory)
	mux.HandleFunc("GET /categories/{id}", h.GetCategory)
	mux.HandleFunc("PATCH /categories/{id}", h.UpdateCategory)
	mux.HandleFunc("DELETE /categories/{id}", h.DeleteCategory)
	mux.HandleFunc("POST /categories/{id}/restore", h.RestoreCategory)
	mux.HandleFunc("GET /categories/{id}/movies", h.ListCategoryMovies)
	mux.HandleFunc("POST /categories/{id}/movies", h.LinkCategoryMovies)

	// Genres
	mux.HandleFunc("GET /genres", h.ListGenres)
	mux.HandleFunc("POST /genres", h.CreateGenre)
	mux.HandleFunc("GET /genres/{id}", h.GetGenre)
	mux.HandleFunc("PATCH /genres/{id}", h.UpdateGenre)
	mux.HandleFunc("DELETE /genres/{id}", h.DeleteGenre)
	mux.HandleFunc("POST /genres/{id}/restore", h.RestoreGenre)
	mux.HandleFunc("GET /genres/{id}/movies", h.ListGenreMovies)
	mux.HandleFunc("POST /genres/{id}/movies", h.LinkGenreMovies)

	// Join records
	mux.HandleFunc("GET /movieCategories", h.ListMovieCategories)
	mux.HandleFunc("GET /movieGenres", h.ListMovieGenres)
}
