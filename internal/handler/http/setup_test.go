package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pagemark/bookreview/internal/auth"
	"github.com/pagemark/bookreview/internal/domain"
	"github.com/pagemark/bookreview/internal/event"
	redisrepo "github.com/pagemark/bookreview/internal/repository/redis"
	"github.com/pagemark/bookreview/internal/service"
	"github.com/pagemark/bookreview/pkg/health"
	pkgkafka "github.com/pagemark/bookreview/pkg/kafka"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockBookRepo struct {
	mock.Mock
}

func (m *mockBookRepo) Create(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *mockBookRepo) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *mockBookRepo) List(ctx context.Context) ([]domain.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *mockBookRepo) ListByCreator(ctx context.Context, userID string) ([]domain.BookRef, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookRef), args.Error(1)
}

func (m *mockBookRepo) UpdateRating(ctx context.Context, bookID string, averageRating float64, totalReviews int) error {
	args := m.Called(ctx, bookID, averageRating, totalReviews)
	return args.Error(0)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepo) ListByBook(ctx context.Context, bookID string) ([]domain.ReviewWithAuthor, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewWithAuthor), args.Error(1)
}

func (m *mockReviewRepo) ListRatingsByBook(ctx context.Context, bookID string) ([]int, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *mockReviewRepo) ListByAuthor(ctx context.Context, userID string) ([]domain.AuthorReview, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuthorReview), args.Error(1)
}

// ============================================================================
// Test Helpers
// ============================================================================

const testUserID = "550e8400-e29b-41d4-a716-446655440001"
const testBookID = "550e8400-e29b-41d4-a716-446655440002"

func handlerTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func handlerTestEventProducer() *event.Producer {
	logger := handlerTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:19092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

func handlerTestJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("handler-test-secret-key", 168*time.Hour)
}

type testEnv struct {
	userRepo   *mockUserRepo
	bookRepo   *mockBookRepo
	reviewRepo *mockReviewRepo
	redis      *miniredis.Miniredis
	jwt        *auth.JWTManager
	router     http.Handler
}

// setupRouter wires the full production router over mocked repositories and an
// in-memory redis.
func setupRouter(t *testing.T, cfgMods ...func(*RouterConfig)) *testEnv {
	t.Helper()

	logger := handlerTestLogger()
	producer := handlerTestEventProducer()
	jwtManager := handlerTestJWTManager()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cache := redisrepo.NewBookCache(client, 5*time.Minute)

	userRepo := new(mockUserRepo)
	bookRepo := new(mockBookRepo)
	reviewRepo := new(mockReviewRepo)

	userService := service.NewUserService(userRepo, bookRepo, reviewRepo, jwtManager, producer, logger)
	bookService := service.NewBookService(bookRepo, cache, producer, logger)
	reviewService := service.NewReviewService(reviewRepo, bookRepo, cache, producer, logger)

	cfg := RouterConfig{
		CORS:          CORSConfig{AllowedOrigins: []string{"*"}, Environment: "development"},
		AuthRateLimit: 100,
		AuthRateBurst: 100,
	}
	for _, mod := range cfgMods {
		mod(&cfg)
	}

	router := NewRouter(userService, bookService, reviewService, jwtManager, health.NewHandler(), logger, cfg)

	return &testEnv{
		userRepo:   userRepo,
		bookRepo:   bookRepo,
		reviewRepo: reviewRepo,
		redis:      mr,
		jwt:        jwtManager,
		router:     router,
	}
}

// bearerToken issues a valid token for the test user.
func (e *testEnv) bearerToken(t *testing.T, role string) string {
	t.Helper()
	token, err := e.jwt.GenerateToken(testUserID, "test@example.com", role)
	require.NoError(t, err)
	return "Bearer " + token
}
