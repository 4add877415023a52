package main // Entry point package

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/table-reservation-web/internal/apiclient"
	"github.com/iliyamo/table-reservation-web/internal/config"
	"github.com/iliyamo/table-reservation-web/internal/database"
	"github.com/iliyamo/table-reservation-web/internal/handler"
	"github.com/iliyamo/table-reservation-web/internal/metrics"
	"github.com/iliyamo/table-reservation-web/internal/middleware"
	"github.com/iliyamo/table-reservation-web/internal/queue"
	"github.com/iliyamo/table-reservation-web/internal/router"
	"github.com/iliyamo/table-reservation-web/internal/service"
	"github.com/iliyamo/table-reservation-web/internal/session"
	"github.com/iliyamo/table-reservation-web/internal/utils"
	"github.com/iliyamo/table-reservation-web/internal/view"
)

func main() {
	cfg := config.Load()
	site, err := config.LoadSite(cfg.SiteConfigPath)
	if err != nil {
		log.Fatalf("site config: %v", err)
	}
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	store, db := openStore(ctx, cfg, rdb)
	if db != nil {
		defer db.Close()
	}

	key, err := utils.DeriveKey(cfg.SessionSecret, "session-cookie")
	if err != nil {
		log.Fatalf("derive session key: %v", err)
	}
	sessions := &middleware.Sessions{Store: store, Key: key, TTL: cfg.SessionTTL, Secure: cfg.SecureCookie}

	renderer, err := view.New()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	var pub handler.Publisher
	if url := service.AMQPURLFromEnv(); url != "" {
		pub = service.NewActionPublisher(url)
		log.Printf("publishing actions to %s", queue.ActionQueue)
	}

	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				log.Printf("%s %s -> %d (%s): %v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			log.Printf("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	router.RegisterRoutes(e)
	g := router.NewSite(e, sessions, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterAuth(g, handler.NewAuthHandler(api, sessions, site))
	router.RegisterBooking(g, handler.NewBookingHandler(api, sessions, site, cfg.Location, pub))
	router.RegisterAdmin(g, handler.NewAdminHandler(api, sessions, site, pub), cfg.AdminRequireLogin)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, api=%s, sessions=%s)", addr, cfg.Env, cfg.APIBaseURL, cfg.SessionStore)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// openStore builds the session store named by SESSION_STORE and starts its
// expiry job.
func openStore(ctx context.Context, cfg config.Config, rdb *redis.Client) (session.Store, *sql.DB) {
	switch cfg.SessionStore {
	case config.StoreRedis:
		if rdb == nil {
			log.Fatal("SESSION_STORE=redis but redis is unreachable")
		}
		return session.NewRedisStore(rdb, "rsv:session"), nil
	case config.StoreMySQL:
		db, err := database.Open(cfg)
		if err != nil {
			log.Fatalf("mysql: %v", err)
		}
		st := session.NewMySQLStore(db)
		if err := st.EnsureSchema(ctx); err != nil {
			log.Fatalf("mysql: ensure schema: %v", err)
		}
		go purgeLoop(ctx, st)
		return st, db
	default:
		st := session.NewMemoryStore()
		go st.RunSweeper(ctx, 10*time.Minute)
		return st, nil
	}
}

func purgeLoop(ctx context.Context, st *session.MySQLStore) {
	t := time.NewTicker(30 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := st.PurgeExpired(ctx)
			if err != nil {
				log.Printf("sessions: purge failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("sessions: purged %d expired", n)
			}
		}
	}
}
