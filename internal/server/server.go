package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	_ "filmorate/docs" // регистрация OpenAPI-описания
	"filmorate/internal/config"
	"filmorate/internal/database"
	"filmorate/internal/handler/binding"
	cataloghandler "filmorate/internal/handler/catalog"
	filmhandler "filmorate/internal/handler/film"
	"filmorate/internal/handler/health"
	"filmorate/internal/handler/middleware"
	userhandler "filmorate/internal/handler/user"
	repo "filmorate/internal/repository/interfaces"
	"filmorate/internal/repository/memory"
	pgrepo "filmorate/internal/repository/postgres"
	cataloguc "filmorate/internal/usecase/catalog"
	filmuc "filmorate/internal/usecase/film"
	useruc "filmorate/internal/usecase/user"
	"filmorate/pkg/logger"
)

// Server представляет HTTP сервер приложения
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *database.DB
	cfg        *config.Config
	log        logger.Logger

	filmHandler    *filmhandler.Handler
	userHandler    *userhandler.Handler
	catalogHandler *cataloghandler.Handler
}

// repositories набор хранилищ, выбранный по STORAGE_BACKEND.
type repositories struct {
	users   repo.UserRepository
	films   repo.FilmRepository
	catalog repo.CatalogRepository
}

// NewServer создает новый экземпляр сервера.
// db обязателен только для backend postgres, для memory передаётся nil.
func NewServer(cfg *config.Config, db *database.DB, log logger.Logger) (*Server, error) {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	repos, err := newRepositories(cfg, db)
	if err != nil {
		return nil, err
	}

	binding.Setup()

	s := &Server{
		router: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	userService := useruc.NewService(repos.users, log)
	filmService := filmuc.NewService(repos.films, repos.catalog, log)
	catalogService := cataloguc.NewService(repos.catalog)

	s.userHandler = userhandler.NewHandler(userService, log)
	s.filmHandler = filmhandler.NewHandler(filmService, log)
	s.catalogHandler = cataloghandler.NewHandler(catalogService, log)

	s.setupMiddleware()
	s.setupRoutes()

	log.Info("server configured", map[string]any{"storage": cfg.Storage.Backend, "env": cfg.AppEnv})
	return s, nil
}

func newRepositories(cfg *config.Config, db *database.DB) (*repositories, error) {
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		users := memory.NewUserRepository()
		return &repositories{
			users:   users,
			films:   memory.NewFilmRepository(users),
			catalog: memory.NewCatalogRepository(),
		}, nil
	case config.StoragePostgres:
		if db == nil {
			return nil, errors.New("для STORAGE_BACKEND=postgres требуется подключение к базе данных")
		}
		return &repositories{
			users:   pgrepo.NewUserRepository(db.DB),
			films:   pgrepo.NewFilmRepository(db.DB),
			catalog: pgrepo.NewCatalogRepository(db.DB),
		}, nil
	default:
		return nil, fmt.Errorf("неизвестный STORAGE_BACKEND: %q", cfg.Storage.Backend)
	}
}

// setupMiddleware настраивает middleware для роутера
func (s *Server) setupMiddleware() {
	// RequestID первым, чтобы идентификатор попал и в лог паники
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.LoggerStructured(s.log))
	s.router.Use(middleware.CORS(&s.cfg.CORS))
}

// setupRoutes настраивает маршруты приложения
func (s *Server) setupRoutes() {
	s.setupHealthRoutes()

	root := s.router.Group("")
	s.filmHandler.Register(root)
	s.userHandler.Register(root)
	s.catalogHandler.Register(root)

	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
}

// setupHealthRoutes настраивает health-check эндпоинты.
func (s *Server) setupHealthRoutes() {
	var pinger health.Pinger
	if s.db != nil {
		pinger = s.db
	}
	healthHandler := health.NewHandler(pinger, s.cfg.Storage.Backend, s.cfg.AppEnv)

	s.router.GET("/health", healthHandler.Health)
	s.router.GET("/health/db", healthHandler.HealthDB)
}

// Start запускает HTTP сервер и блокируется до отмены ctx (SIGINT/SIGTERM в main)
// или ошибки запуска. После отмены выполняется graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	address := s.cfg.Server.Address()

	s.httpServer = &http.Server{
		Addr:           address,
		Handler:        s.router,
		ReadTimeout:    s.cfg.Server.ReadTimeout,
		WriteTimeout:   s.cfg.Server.WriteTimeout,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("http server started", map[string]any{"address": address})
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ошибка запуска HTTP сервера: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("shutting down http server", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("ошибка при остановке сервера: %w", err)
		}
		s.log.Info("http server stopped", nil)
		return nil
	})

	return g.Wait()
}

// GetRouter возвращает роутер (для тестирования)
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
