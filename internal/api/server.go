package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	gorillaws "github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"

	"markeep/internal/account"
	"markeep/internal/auth"
	"markeep/internal/config"
	"markeep/internal/database"
	"markeep/internal/metrics"
	"markeep/internal/validation"
	"markeep/internal/websocket"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Config   *config.Config
	Store    *database.Store
	Accounts *account.Service
	Tokens   *auth.TokenIssuer
	Hub      *websocket.Hub
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

type Server struct {
	config    *config.Config
	store     *database.Store
	accounts  *account.Service
	tokens    *auth.TokenIssuer
	wsHub     *websocket.Hub
	upgrader  *gorillaws.Upgrader
	metrics   *metrics.Collector
	gatherer  prometheus.Gatherer
	limiter   *LoginLimiter
	validator *validation.Validator
	logger    *slog.Logger
}

func NewServer(deps Deps) *Server {
	return &Server{
		config:    deps.Config,
		store:     deps.Store,
		accounts:  deps.Accounts,
		tokens:    deps.Tokens,
		wsHub:     deps.Hub,
		upgrader:  websocket.NewUpgrader(deps.Config.Server.CORSOrigins),
		metrics:   deps.Metrics,
		gatherer:  deps.Gatherer,
		limiter:   NewLoginLimiter(deps.Config.RateLimit.LoginRPS, deps.Config.RateLimit.LoginBurst),
		validator: validation.New(),
		logger:    deps.Logger,
	}
}

// Routes builds the router. Login-like and code-checking endpoints are rate
// limited per client IP.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if s.config.Server.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(s.metrics.Middleware)
	r.Use(s.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(s.config.AppHost+"/swagger/doc.json"),
	))
	r.Get("/health", s.HealthCheckHandler)
	r.Handle("/metrics", metrics.Handler(s.gatherer))
	r.Get("/ws", s.ServeWsHandler)

	r.Route("/user", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.rateLimited)
			r.Post("/login", s.LoginHandler)
			r.Get("/join", s.CheckEmailHandler)
			r.Post("/join", s.JoinHandler)
			r.Put("/password", s.PasswordResetCodeHandler)
			r.Patch("/password", s.UpdatePasswordHandler)
			r.Post("/google-login", s.GoogleLoginHandler)
			r.Get("/naver-login", s.NaverLoginHandler)
			r.Get("/kakao-login", s.KakaoLoginHandler)
		})
		r.Post("/refresh", s.RefreshTokenHandler)
		r.Post("/logout", s.LogoutHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Get("/profile", s.ProfileHandler)
			r.Put("/profile/image", s.UploadProfileImageHandler)
			r.Get("/sessions", s.ListSessionsHandler)
			r.Delete("/sessions/{sessionId}", s.DeleteSessionHandler)
			r.Post("/sessions/terminate-all", s.TerminateAllSessionsHandler)
			r.Get("/events", s.GetEventsHandler)
		})
	})

	r.Get("/users/{userId}/profile-image", s.ProfileImageHandler)

	r.Route("/folders", func(r chi.Router) {
		r.Get("/", s.ListFoldersHandler)
		r.Get("/{folderId}", s.GetFolderHandler)
		r.Get("/{folderId}/sites", s.ListSitesHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Post("/", s.CreateFolderHandler)
			r.Delete("/{folderId}", s.DeleteFolderHandler)
			r.Post("/{folderId}/tags", s.AddTagHandler)
			r.Post("/{folderId}/sites", s.AddSiteHandler)
			r.Get("/{folderId}/pin", s.PinStatusHandler)
			r.Post("/{folderId}/pin", s.PinFolderHandler)
			r.Delete("/{folderId}/pin", s.UnpinFolderHandler)
		})
	})

	return r
}

type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}

// @Summary      Health check
// @Description  Reports whether the server can reach its database.
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.GetPool().Ping(ctx); err != nil {
		s.logger.Warn("health check failed", slog.Any("error", err))
		s.writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}

	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
}
