package main

import (
	"database/sql"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/tieuluan/laptop-storefront/internal/catalog"
	"github.com/tieuluan/laptop-storefront/internal/config"
	"github.com/tieuluan/laptop-storefront/internal/history"
	"github.com/tieuluan/laptop-storefront/internal/order"
	"github.com/tieuluan/laptop-storefront/internal/recommended"
	"github.com/tieuluan/laptop-storefront/internal/recosource"
	"github.com/tieuluan/laptop-storefront/internal/wishlist"
)

// protectedPaths require a valid token; everything else accepts an optional
// one so recommendation reads can personalize when a visitor is logged in.
var protectedPaths = map[string]bool{
	"/api/v1/track/sync": true,
	"/api/v1/buy-again":  true,
}

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger(logger))

	store := mustOpenStore(cfg, logger)

	recoClient := recosource.NewClient(cfg.RecoBaseURL, cfg.HTTPTimeout, logger)
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, cfg.HTTPTimeout, logger)
	defer catalogClient.Close()

	orderService := order.NewService(order.NewClient(cfg.CatalogBaseURL, cfg.HTTPTimeout), logger)
	wishlistClient := wishlist.NewClient(cfg.CatalogBaseURL, cfg.HTTPTimeout, logger)

	historyService := history.NewService(store, recoClient, logger)
	historyHandler := history.NewHandler(historyService)

	recommendedService := recommended.NewService(historyService, orderService, wishlistClient, recoClient, catalogClient, logger)
	recommendedHandler := recommended.NewHandler(recommendedService)

	// the token is validated whenever present; only the protected paths
	// reject anonymous requests
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		Filter: func(c *fiber.Ctx) bool {
			if protectedPaths[c.Path()] {
				return false
			}
			return c.Get(fiber.HeaderAuthorization) == ""
		},
	}))

	historyHandler.RegisterPublicRoutes(app)
	historyHandler.RegisterProtectedRoutes(app)
	recommendedHandler.RegisterPublicRoutes(app)
	recommendedHandler.RegisterProtectedRoutes(app)

	logger.Info().Str("addr", cfg.Addr).Msg("starting storefront core")
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Debug().
			Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Int("status", c.Response().StatusCode()).
			Dur("took", time.Since(start)).
			Msg("request")
		return err
	}
}

// mustOpenStore picks the session-history store: Postgres when a database is
// configured, in-memory otherwise (anonymous logs then live only as long as
// the process).
func mustOpenStore(cfg config.Config, logger zerolog.Logger) history.Store {
	if cfg.DatabaseURL == "" {
		logger.Warn().Msg("DATABASE_URL not set, using in-memory session store")
		return history.NewInMemoryStore()
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}

	store := history.NewPostgresStore(db)
	if err := store.EnsureSchema(); err != nil {
		logger.Fatal().Err(err).Msg("ensure session_history schema")
	}
	return store
}
