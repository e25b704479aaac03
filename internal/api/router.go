package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/fijas/internal/api/apierr"
	"github.com/mcoot/fijas/internal/api/handler"
	"github.com/mcoot/fijas/internal/api/middleware"
	"github.com/mcoot/fijas/internal/api/response"
	sharedmw "github.com/mcoot/fijas/internal/middleware"
	"github.com/mcoot/fijas/internal/services/room"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	RoomController room.ControllerInterface
	// RateLimitRPS of zero disables rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter creates a new API router with all routes configured.
// Routes are served both at the root and under /api/v1.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.RoomController)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(sharedmw.Logging(cfg.Logger))
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	registerRoutes(r.PathPrefix("/api/v1").Subrouter(), roomHandler)
	registerRoutes(r, roomHandler)

	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)

	return r
}

func registerRoutes(r *mux.Router, h *handler.RoomHandler) {
	r.HandleFunc("/rooms", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{code}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{code}/join", h.Join).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{roomId}/secret/{playerId}", h.SetSecret).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{roomId}/guess/{playerId}", h.Guess).Methods(http.MethodPost)

	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}
