package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"buzzwordz-backend/internal/background"
	"buzzwordz-backend/internal/config"
	"buzzwordz-backend/internal/handlers"
	"buzzwordz-backend/internal/middleware"
	"buzzwordz-backend/internal/models"
	"buzzwordz-backend/internal/repository"
	"buzzwordz-backend/internal/seed"
	"buzzwordz-backend/internal/service"
	"buzzwordz-backend/pkg/cache"
	"buzzwordz-backend/pkg/logger"
	"buzzwordz-backend/pkg/utils"
)

type Options struct {
	TemplatesDir string
}

type Application struct {
	cfg     *config.Config
	options Options

	db    *gorm.DB
	cache *cache.Cache

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	templateHandler *handlers.TemplateHandler
	scheduler       *background.Scheduler
	rateLimits      *middleware.RateLimitManager
	router          *gin.Engine
	server          *http.Server
}

type repositoryContainer struct {
	User repository.UserRepository
	Page repository.PageRepository
	Menu repository.MenuRepository
	Word repository.WordRepository
}

type serviceContainer struct {
	Auth       *service.AuthService
	Page       *service.PageService
	Menu       *service.MenuService
	Dictionary *service.DictionaryService
	Sessions   *service.SessionStore
	Tiles      *service.TileService
	Spelling   *service.SpellingService
	Vocabulary *service.VocabularyService
	Lookup     service.WordLookupProvider
}

type handlerContainer struct {
	Auth       *handlers.AuthHandler
	Page       *handlers.PageHandler
	Menu       *handlers.MenuHandler
	Dictionary *handlers.DictionaryHandler
	Spelling   *handlers.SpellingHandler
	Vocabulary *handlers.VocabularyHandler
}

func New(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if opts.TemplatesDir == "" {
		opts.TemplatesDir = "./templates"
	}

	app := &Application{
		cfg:     cfg,
		options: opts,
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.runMigrations(); err != nil {
		return nil, err
	}

	if err := app.createIndexes(); err != nil {
		return nil, err
	}

	app.initCache()
	app.initRepositories()

	if err := app.initServices(); err != nil {
		return nil, err
	}

	seed.EnsureDefaultPages(app.services.Page)
	seed.EnsureDefaultMenu(app.services.Menu, app.services.Page)
	seed.EnsureStarterDictionary(app.services.Dictionary)
	seed.EnsureAdminUser(app.repositories.User, cfg)

	if err := app.initHandlers(); err != nil {
		return nil, err
	}

	app.rateLimits = middleware.NewRateLimitManager(context.Background())

	if err := app.initRouter(); err != nil {
		return nil, err
	}

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

// StartBackground launches the job scheduler and registers the periodic
// maintenance jobs. Call once, before Run.
func (a *Application) StartBackground(ctx context.Context) {
	a.scheduler = background.NewScheduler(background.SchedulerConfig{})
	a.scheduler.Start(ctx)

	if err := a.scheduler.ScheduleEvery(time.Minute, background.Job{
		Name:    "quiz-session-sweep",
		Timeout: 30 * time.Second,
		Run: func(ctx context.Context) error {
			if removed := a.services.Sessions.Sweep(); removed > 0 {
				logger.Debug("Swept expired quiz sessions", map[string]interface{}{"removed": removed})
			}
			return nil
		},
	}); err != nil {
		logger.Error(err, "Failed to schedule session sweep", nil)
	}

	if err := a.scheduler.ScheduleEvery(time.Minute, background.Job{
		Name:    "publish-due-pages",
		Timeout: 30 * time.Second,
		RetryPolicy: background.RetryPolicy{
			MaxRetries: 2,
			Backoff:    10 * time.Second,
		},
		Run: func(ctx context.Context) error {
			published, err := a.services.Page.PublishDue(time.Now())
			if err != nil {
				return err
			}
			if published > 0 {
				logger.Info("Published scheduled pages", map[string]interface{}{"count": published})
			}
			return nil
		},
	}); err != nil {
		logger.Error(err, "Failed to schedule page publication", nil)
	}
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.scheduler != nil {
		if err := a.scheduler.Shutdown(ctx); err != nil {
			logger.Error(err, "Failed to stop background scheduler", nil)
		}
	}

	if a.rateLimits != nil {
		if err := a.rateLimits.Shutdown(); err != nil {
			logger.Error(err, "Failed to stop rate limit manager", nil)
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(
		&models.User{},
		&models.Page{},
		&models.MenuItem{},
		&models.WordEntry{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) createIndexes() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_pages_published ON pages(published) WHERE published = true",
		"CREATE INDEX IF NOT EXISTS idx_pages_path ON pages(path) WHERE published = true",
		"CREATE INDEX IF NOT EXISTS idx_pages_order ON pages(\"order\" ASC)",
		"CREATE INDEX IF NOT EXISTS idx_menu_items_location ON menu_items(location)",
		"CREATE INDEX IF NOT EXISTS idx_word_entries_word_lower ON word_entries(LOWER(word))",
	}

	for _, stmt := range statements {
		if err := a.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func (a *Application) initCache() {
	enable := a.cfg.EnableCache && a.cfg.EnableRedis

	addr := ""
	if enable {
		addr = a.cfg.RedisURL
	}

	c, err := cache.NewCache(addr, enable)
	if err != nil {
		logger.Error(err, "Redis unavailable, continuing without cache", nil)
		c, _ = cache.NewCache("", false)
	}
	a.cache = c
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		User: repository.NewUserRepository(a.db),
		Page: repository.NewPageRepository(a.db),
		Menu: repository.NewMenuRepository(a.db),
		Word: repository.NewWordRepository(a.db),
	}
}

func (a *Application) initServices() error {
	tiles, err := service.NewTileService(a.cfg.TilesDir)
	if err != nil {
		return fmt.Errorf("failed to initialize tile service: %w", err)
	}

	sessions := service.NewSessionStore(a.cache, a.cfg.QuizSessionTTL)

	a.services = serviceContainer{
		Auth:       service.NewAuthService(a.repositories.User, a.cfg.JWTSecret),
		Page:       service.NewPageService(a.repositories.Page, a.cache),
		Menu:       service.NewMenuService(a.repositories.Menu, a.cache),
		Dictionary: service.NewDictionaryService(a.repositories.Word),
		Sessions:   sessions,
		Tiles:      tiles,
		Spelling:   service.NewSpellingService(a.repositories.Word, sessions, tiles, a.cfg.QuizDefaultWords, a.cfg.QuizMaxWords),
		Vocabulary: service.NewVocabularyService(a.repositories.Word, sessions, a.cfg.QuizDefaultWords, a.cfg.QuizMaxWords),
	}

	if a.cfg.LookupEnabled() {
		provider, err := service.NewCollegiateProvider(a.cfg.DictionaryAPIKey, service.CollegiateOptions{
			Endpoint: a.cfg.DictionaryAPIURL,
		})
		if err != nil {
			logger.Error(err, "Dictionary lookup disabled", nil)
		} else {
			a.services.Lookup = provider
			logger.Info("Dictionary lookup enabled", nil)
		}
	}

	return nil
}

func (a *Application) initHandlers() error {
	a.handlers = handlerContainer{
		Auth:       handlers.NewAuthHandler(a.services.Auth),
		Page:       handlers.NewPageHandler(a.services.Page),
		Menu:       handlers.NewMenuHandler(a.services.Menu),
		Dictionary: handlers.NewDictionaryHandler(a.services.Dictionary, a.services.Lookup),
		Spelling:   handlers.NewSpellingHandler(a.services.Spelling),
		Vocabulary: handlers.NewVocabularyHandler(a.services.Vocabulary),
	}

	templates, err := utils.LoadTemplates(a.options.TemplatesDir)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	templateHandler, err := handlers.NewTemplateHandler(a.services.Page, a.services.Menu, a.cfg, templates)
	if err != nil {
		return fmt.Errorf("failed to initialize template handler: %w", err)
	}

	a.templateHandler = templateHandler
	return nil
}

func (a *Application) initRouter() error {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.RateLimitMiddleware(a.rateLimits, a.cfg.RateLimitRequests, a.cfg.RateLimitWindow))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.Static("/static", "./static")
	router.Static("/tiles", a.cfg.TilesDir)
	router.StaticFile("/favicon.ico", "./static/favicon.ico")

	router.GET("/", a.templateHandler.RenderIndex)
	router.GET("/page/:slug", a.templateHandler.RenderPage)

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("")
		{
			public.POST("/login", a.handlers.Auth.Login)

			public.GET("/pages", a.handlers.Page.GetAll)
			public.GET("/pages/:id", a.handlers.Page.GetByID)
			public.GET("/pages/slug/:slug", a.handlers.Page.GetBySlug)

			public.GET("/menu", a.handlers.Menu.List)
			public.GET("/navigation", a.handlers.Menu.Navigation)

			public.GET("/words/count", a.handlers.Dictionary.Count)

			public.POST("/quiz/spelling", a.handlers.Spelling.Start)
			public.GET("/quiz/spelling/:id", a.handlers.Spelling.Get)
			public.POST("/quiz/spelling/:id/answer", a.handlers.Spelling.Submit)
			public.POST("/quiz/spelling/:id/hint", a.handlers.Spelling.Hint)
			public.POST("/quiz/spelling/:id/next", a.handlers.Spelling.Next)
			public.POST("/quiz/spelling/:id/previous", a.handlers.Spelling.Previous)
			public.DELETE("/quiz/spelling/:id", a.handlers.Spelling.Quit)

			public.POST("/quiz/vocabulary", a.handlers.Vocabulary.Start)
			public.GET("/quiz/vocabulary/:id", a.handlers.Vocabulary.Get)
			public.POST("/quiz/vocabulary/:id/answer", a.handlers.Vocabulary.Submit)
			public.POST("/quiz/vocabulary/:id/next", a.handlers.Vocabulary.Next)
			public.POST("/quiz/vocabulary/:id/previous", a.handlers.Vocabulary.Previous)
			public.DELETE("/quiz/vocabulary/:id", a.handlers.Vocabulary.Quit)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
		{
			protected.GET("/profile", a.handlers.Auth.Me)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/pages", a.handlers.Page.Create)
			admin.PUT("/pages/:id", a.handlers.Page.Update)
			admin.DELETE("/pages/:id", a.handlers.Page.Delete)
			admin.GET("/pages", a.handlers.Page.GetAllAdmin)
			admin.PUT("/pages/:id/publish", a.handlers.Page.Publish)
			admin.PUT("/pages/:id/unpublish", a.handlers.Page.Unpublish)

			admin.GET("/menu", a.handlers.Menu.List)
			admin.POST("/menu", a.handlers.Menu.Create)
			admin.PUT("/menu/:id", a.handlers.Menu.Update)
			admin.DELETE("/menu/:id", a.handlers.Menu.Delete)
			admin.PUT("/menu/reorder", a.handlers.Menu.Reorder)

			admin.GET("/words", a.handlers.Dictionary.List)
			admin.POST("/words", a.handlers.Dictionary.Create)
			admin.DELETE("/words/:id", a.handlers.Dictionary.Delete)
			admin.POST("/words/import", a.handlers.Dictionary.Import)
			admin.POST("/words/lookup/:word", a.handlers.Dictionary.Lookup)

			if a.cache != nil {
				admin.DELETE("/cache", handlers.ClearCache(a.cache))
			}
		}
	}

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Route not found",
				"path":  c.Request.URL.Path,
			})
			return
		}

		// every other path is a candidate page; unknown paths get the 404 view
		if a.templateHandler.TryRenderPage(c) {
			return
		}
		a.templateHandler.RenderNotFound(c)
	})

	a.router = router
	return nil
}
