package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pagemark/bookreview/internal/auth"
	"github.com/pagemark/bookreview/internal/domain"
	"github.com/pagemark/bookreview/internal/service"
	"github.com/pagemark/bookreview/pkg/health"
	"github.com/pagemark/bookreview/pkg/middleware"
)

// RouterConfig holds the knobs the router needs beyond its collaborators.
type RouterConfig struct {
	CORS                CORSConfig
	BookCreateAdminOnly bool
	AuthRateLimit       int
	AuthRateBurst       int
}

// NewRouter creates a chi router with all routes registered.
func NewRouter(
	userService *service.UserService,
	bookService *service.BookService,
	reviewService *service.ReviewService,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("bookreview"))
	r.Use(middleware.PrometheusMetrics("bookreview"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Token verifier that bridges to the internal JWTManager.
	verifier := func(token string) (*middleware.Identity, error) {
		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Identity{
			UserID: claims.UserID,
			Role:   claims.Role,
		}, nil
	}

	userHandler := NewUserHandler(userService, logger)
	bookHandler := NewBookHandler(bookService, logger)
	reviewHandler := NewReviewHandler(reviewService, logger)

	r.Route("/api/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Use(middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateBurst, logger))

			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(verifier))

			r.Get("/me", userHandler.GetProfile)
		})
	})

	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", bookHandler.List)
		r.Get("/{id}", bookHandler.Get)

		r.Group(func(r chi.Router) {
			// Auth runs first so missing credentials always yield 401,
			// even when the request body is not JSON.
			r.Use(middleware.Auth(verifier))
			if cfg.BookCreateAdminOnly {
				r.Use(middleware.RequireRole(domain.RoleAdmin))
			}
			r.Use(ContentTypeJSON)

			r.Post("/", bookHandler.Create)
		})
	})

	r.Route("/api/reviews", func(r chi.Router) {
		r.Get("/", reviewHandler.ListByBook)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(verifier))
			r.Use(ContentTypeJSON)

			r.Post("/", reviewHandler.Add)
		})
	})

	return r
}
