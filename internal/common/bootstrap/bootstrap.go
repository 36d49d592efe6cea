package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/AlibekovAA/microblog/internal/auth/http"
	authservice "github.com/AlibekovAA/microblog/internal/auth/service"
	"github.com/AlibekovAA/microblog/internal/auth/token"
	"github.com/AlibekovAA/microblog/internal/common/clock"
	"github.com/AlibekovAA/microblog/internal/common/config"
	"github.com/AlibekovAA/microblog/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/microblog/internal/common/crypto"
	"github.com/AlibekovAA/microblog/internal/common/db"
	commonhttp "github.com/AlibekovAA/microblog/internal/common/http"
	"github.com/AlibekovAA/microblog/internal/common/jwtverify"
	"github.com/AlibekovAA/microblog/internal/common/logger"
	"github.com/AlibekovAA/microblog/internal/common/server"
	tweethttp "github.com/AlibekovAA/microblog/internal/tweet/http"
	tweetrepo "github.com/AlibekovAA/microblog/internal/tweet/repository"
	tweetservice "github.com/AlibekovAA/microblog/internal/tweet/service"
	"github.com/AlibekovAA/microblog/internal/tweet/storage"
	userrepo "github.com/AlibekovAA/microblog/internal/user/repository"
)

const ServiceName = "microblog"

type Stores struct {
	Users  userrepo.Repository
	Tweets tweetrepo.Repository
	Images storage.ImageStore
}

type Services struct {
	Auth   *authservice.AuthService
	Tweets *tweetservice.TweetService
	Tokens *token.Service
}

type App struct {
	Config   config.AppConfig
	Log      *logger.Logger
	Pool     *pgxpool.Pool
	Services Services
	Handler  http.Handler

	hooks []server.ShutdownHook
}

// New opens the configured stores and assembles the HTTP handler. Background
// work started here stops when ctx is cancelled.
func New(ctx context.Context, cfg config.AppConfig, log *logger.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	stores, err := app.openStores(ctx)
	if err != nil {
		return nil, err
	}

	services, err := NewServices(cfg, stores, clock.NewRealClock(), log)
	if err != nil {
		app.close()
		return nil, err
	}

	app.Services = services
	app.Handler = NewRouter(cfg, services, log)
	return app, nil
}

func (a *App) openStores(ctx context.Context) (Stores, error) {
	var stores Stores

	switch a.Config.StoreDriver {
	case config.StoreDriverMemory:
		a.Log.Warn("using in-memory store: data is lost on restart")
		stores.Users = userrepo.NewMemoryRepository()
		stores.Tweets = tweetrepo.NewMemoryRepository()
	default:
		if a.Config.RunMigrations {
			if err := db.Migrate(ctx, a.Log, a.Config.DatabaseURL); err != nil {
				return Stores{}, fmt.Errorf("migrate database: %w", err)
			}
		}

		pool, err := db.NewPool(ctx, a.Log, a.Config.DatabaseURL)
		if err != nil {
			return Stores{}, fmt.Errorf("open database pool: %w", err)
		}
		a.Pool = pool
		a.hooks = append(a.hooks, func(context.Context) error {
			a.Log.Info("closing database pool")
			pool.Close()
			return nil
		})

		db.StartPoolMetrics(ctx, pool, constants.DBPoolMetricsInterval)

		stores.Users = userrepo.NewPgRepository(pool)
		stores.Tweets = tweetrepo.NewPgRepository(pool)
	}

	if a.Config.S3.Enabled() {
		images, err := storage.NewS3Store(ctx, a.Config.S3)
		if err != nil {
			a.close()
			return Stores{}, fmt.Errorf("init image store: %w", err)
		}
		stores.Images = images
		a.Log.Infof("image attachments stored in bucket %s", a.Config.S3.Bucket)
	} else {
		a.Log.Info("no S3 bucket configured: image attachments are ignored")
	}

	return stores, nil
}

func (a *App) close() {
	for _, hook := range a.hooks {
		_ = hook(context.Background())
	}
	a.hooks = nil
}

func (a *App) ShutdownHooks() []server.ShutdownHook {
	return a.hooks
}

func NewServices(cfg config.AppConfig, stores Stores, clk clock.Clock, log *logger.Logger) (Services, error) {
	tokens, err := token.NewService(cfg.JWTSecret, cfg.TokenTTL, clk)
	if err != nil {
		return Services{}, fmt.Errorf("init token service: %w", err)
	}

	ids := commoncrypto.NewUUIDGenerator()

	auth := authservice.NewAuthService(authservice.AuthServiceDeps{
		Repo:        stores.Users,
		Hasher:      commoncrypto.NewBcryptHasher(cfg.BcryptCost),
		IDGenerator: ids,
		Tokens:      tokens,
		Clock:       clk,
		Log:         log,
	})

	tweets := tweetservice.NewTweetService(tweetservice.TweetServiceDeps{
		Repo:        stores.Tweets,
		Images:      stores.Images,
		IDGenerator: ids,
		Clock:       clk,
		Log:         log,
	})

	return Services{
		Auth:   auth,
		Tweets: tweets,
		Tokens: tokens,
	}, nil
}

// NewRouter mounts every route behind the shared middleware stack.
func NewRouter(cfg config.AppConfig, services Services, log *logger.Logger) http.Handler {
	gate := jwtverify.Middleware(services.Tokens, log)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", commonhttp.HealthHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(commonhttp.WithTimeout(cfg.RequestTimeout))

		r.Route("/api/auth", func(r chi.Router) {
			authhttp.NewHandler(services.Auth, log).RegisterRoutes(r, gate)
		})
		r.Route("/api/tweets", func(r chi.Router) {
			tweethttp.NewHandler(services.Tweets, log).RegisterRoutes(r, gate)
		})
	})

	return commonhttp.BuildBaseHandler(ServiceName, log, constants.MaxImageUploadSize+constants.DefaultMaxRequestSize, r)
}
