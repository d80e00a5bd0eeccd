// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tribewave/internal/config"
	"tribewave/internal/database"
	"tribewave/internal/middleware"
	"tribewave/internal/notifications"
	"tribewave/internal/payments"
	"tribewave/internal/ratelimit"
	"tribewave/internal/repository"
	"tribewave/internal/service"
	"tribewave/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config   *config.Config
	db       *gorm.DB
	redis    *redis.Client
	app      *fiber.App
	notifier *notifications.Notifier
	assets   storage.Store
	changes  *sectionChanges

	membership *service.MembershipService
	content    *service.ContentService
	targeting  *service.TargetingService
	fanArt     *service.FanArtService
	bookings   *service.BookingService
	forum      *service.ForumService
	auth       *service.AuthService
}

// NewServer creates a server instance, connecting its own database and Redis.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
	}

	assets, err := storage.NewLocalStore(cfg.AssetDir)
	if err != nil {
		return nil, err
	}

	return NewServerWithDeps(cfg, db, rdb, assets, payments.DevCapturer{})
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	assets storage.Store,
	capturer payments.Capturer,
) (*Server, error) {
	notifier := notifications.NewNotifier(rdb)

	memberRepo := repository.NewMemberRepository(db)
	contentRepo := repository.NewContentRepository(db)
	fanArtRepo := repository.NewFanArtRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	forumRepo := repository.NewForumRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	var forumLimiter ratelimit.Limiter
	if rdb != nil {
		forumLimiter = ratelimit.NewSlidingWindow(
			rdb, cfg.ForumPostLimit, time.Duration(cfg.ForumPostWindowSec)*time.Second)
	}

	s := &Server{
		config:     cfg,
		db:         db,
		redis:      rdb,
		notifier:   notifier,
		assets:     assets,
		changes:    newSectionChanges(),
		membership: service.NewMembershipService(memberRepo, notifier),
		content:    service.NewContentService(contentRepo, notifier),
		targeting:  service.NewTargetingService(contentRepo),
		fanArt:     service.NewFanArtService(fanArtRepo, notifier),
		bookings:   service.NewBookingService(bookingRepo, capturer, notifier, cfg.ConsultationFeeCents),
		forum:      service.NewForumService(forumRepo, forumLimiter, notifier),
		auth:       service.NewAuthService(adminRepo, cfg.JWTSecret),
	}

	middleware.InitMiddleware(cfg)
	s.app = s.buildApp()
	return s, nil
}

func (s *Server) buildApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "tribewave",
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(middleware.VisitorID)

	var submitLimiter ratelimit.Limiter
	if s.redis != nil {
		submitLimiter = ratelimit.NewSlidingWindow(s.redis, 10, time.Minute)
	}

	api := app.Group("/api")

	api.Post("/auth/login", s.AdminLogin)

	api.Post("/tribes/:tribe/join", s.JoinTribe)
	api.Post("/tribes/:tribe/switch", s.SwitchTribe)
	api.Get("/tribes/:tribe/membership", s.GetMembership)
	api.Get("/me/tribe", s.GetCurrentTribe)

	api.Get("/content/resolve", s.ResolveContent)
	api.Get("/content/changes", s.ContentChanges)
	api.Get("/content/sections/:section", middleware.AdminRequired, s.ListSectionContent)
	api.Get("/content/tribes/:tribe", middleware.AdminRequired, s.ListTribeContent)
	api.Post("/content", middleware.AdminRequired, s.CreateContent)
	api.Patch("/content/:id", middleware.AdminRequired, s.UpdateContent)
	api.Delete("/content/:id", middleware.AdminRequired, s.DeleteContent)

	api.Get("/fanart", s.ListGallery)
	api.Post("/fanart", middleware.RateLimit(submitLimiter, "fanart-submit"), s.SubmitFanArt)
	api.Get("/fanart/pending", middleware.AdminRequired, s.ListPendingFanArt)
	api.Post("/fanart/:id/approve", middleware.AdminRequired, s.ApproveFanArt)
	api.Post("/fanart/:id/reject", middleware.AdminRequired, s.RejectFanArt)
	api.Post("/fanart/:id/feature", middleware.AdminRequired, s.ToggleFanArtFeatured)

	api.Post("/bookings", middleware.RateLimit(submitLimiter, "booking-submit"), s.CreateBooking)
	api.Get("/bookings", middleware.AdminRequired, s.ListBookings)
	api.Get("/bookings/:id", middleware.AdminRequired, s.GetBooking)
	api.Post("/bookings/:id/status", middleware.AdminRequired, s.SetBookingStatus)
	api.Delete("/bookings/:id", middleware.AdminRequired, s.DeleteBooking)

	api.Get("/forum/:scope", s.ListForumBoard)
	api.Post("/forum", middleware.AdminOptional, s.CreateForumPost)
	api.Get("/forum/pending/queue", middleware.AdminRequired, s.ListPendingForumPosts)
	api.Post("/forum/:id/activate", middleware.AdminRequired, s.ActivateForumPost)
	api.Delete("/forum/:id", middleware.AdminRequired, s.DeleteForumPost)

	return app
}

// sectionChanges records the last change signal per section, fed by the
// Redis content feed. Clients poll it to learn when to refetch a section.
type sectionChanges struct {
	mu    sync.RWMutex
	stamp map[string]time.Time
}

func newSectionChanges() *sectionChanges {
	return &sectionChanges{stamp: make(map[string]time.Time)}
}

func (sc *sectionChanges) mark(section string) {
	sc.mu.Lock()
	sc.stamp[section] = time.Now()
	sc.mu.Unlock()
}

func (sc *sectionChanges) snapshot() map[string]time.Time {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	out := make(map[string]time.Time, len(sc.stamp))
	for k, v := range sc.stamp {
		out[k] = v
	}
	return out
}

// StartContentWatcher subscribes to the content-change feed and keeps the
// per-section change log current. Returns immediately; the subscription runs
// until ctx is cancelled. A no-op without Redis.
func (s *Server) StartContentWatcher(ctx context.Context) error {
	return s.notifier.StartContentSubscriber(ctx, func(_ string, section string) {
		s.changes.mark(section)
	})
}

// App exposes the fiber application, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
