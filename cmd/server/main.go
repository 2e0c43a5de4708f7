package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"geo-match-service/internal/adapters/cache"
	"geo-match-service/internal/adapters/messaging"
	"geo-match-service/internal/adapters/repositories"
	"geo-match-service/internal/api"
	"geo-match-service/internal/api/handlers"
	"geo-match-service/internal/config"
	"geo-match-service/internal/platform/db"
	"geo-match-service/internal/platform/obs"
	"geo-match-service/internal/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires the optional adapters (Postgres, Redis, Kafka) behind ports and starts the HTTP server.
func main() {
	config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

// Tunables read from the environment.
type settings struct {
	Port       string
	Workers    int
	RateRPS    float64
	RateBurst  int
	MaxPoints  int
	LogMatches bool
}

func loadSettings() (settings, error) {
	s := settings{
		Port:       config.Get("PORT", "8080"),
		LogMatches: config.GetBool("LOG_MATCHES", false),
	}

	var err error
	if s.Workers, err = config.GetInt("MATCH_WORKERS", 4); err != nil {
		return settings{}, err
	}
	if s.RateRPS, err = config.GetFloat("RATE_LIMIT_RPS", 50); err != nil {
		return settings{}, err
	}
	if s.RateBurst, err = config.GetInt("RATE_LIMIT_BURST", 100); err != nil {
		return settings{}, err
	}
	if s.MaxPoints, err = config.GetInt("MAX_POINTS", handlers.DefaultMaxPoints); err != nil {
		return settings{}, err
	}
	if s.MaxPoints < 1 {
		return settings{}, fmt.Errorf("MAX_POINTS: must be at least 1, got %d", s.MaxPoints)
	}

	return s, nil
}

func run(ctx context.Context) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	port := cfg.Port

	runner := &services.MatchRunner{Matcher: services.Matcher{Workers: cfg.Workers}}
	if cfg.LogMatches {
		runner.Matcher.Observer = obs.LogObserver{}
	}
	checks := map[string]handlers.HealthCheck{}

	if databaseURL := config.Get("DATABASE_URL", ""); databaseURL != "" {
		conn, err := openAndPrepare(ctx, databaseURL, config.Get("SEED_PATH", ""))
		if err != nil {
			return err
		}
		defer conn.Close()

		runner.References = repositories.NewSQLReferenceRepository(conn)
		runner.Runs = repositories.NewSQLMatchRepository(conn)
		checks["postgres"] = conn.PingContext
		log.Println("Postgres enabled: runs are persisted and reference sets available")
	}

	if redisAddr := config.Get("REDIS_ADDR", ""); redisAddr != "" {
		ttl, err := config.GetDuration("RESULT_TTL", cache.DefaultResultTTL)
		if err != nil {
			return err
		}

		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: ping %s: %w", redisAddr, err)
		}

		runner.Cache = cache.NewRedisResultCache(client, ttl)
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		log.Printf("Redis result cache enabled addr=%s ttl=%s", redisAddr, ttl)
	}

	if broker := config.Get("KAFKA_BROKER", ""); broker != "" {
		topic := config.Get("KAFKA_TOPIC", "geomatch.results")
		publisher := messaging.NewKafkaPublisher(broker, topic)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Printf("kafka publisher close failed: %v", err)
			}
		}()

		runner.Publisher = publisher
		log.Printf("Kafka publishing enabled broker=%s topic=%s", broker, topic)
	}

	var limiter *rate.Limiter
	if cfg.RateRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateRPS), cfg.RateBurst)
	}

	router := api.NewRouter(api.RouterConfig{
		Runner:    runner,
		Checks:    checks,
		Limiter:   limiter,
		MaxPoints: cfg.MaxPoints,
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s", port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// openAndPrepare connects to Postgres, ensures the schema exists and,
// when seedPath names an existing file, loads reference sets from it.
func openAndPrepare(ctx context.Context, databaseURL, seedPath string) (*sql.DB, error) {
	conn, err := db.Open(ctx, databaseURL, db.DefaultOptions())
	if err != nil {
		return nil, err
	}

	if err := repositories.InitSchema(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("init and seed: %w", err)
	}

	if seedPath == "" {
		return conn, nil
	}
	if _, err := os.Stat(seedPath); err != nil {
		log.Printf("seed file not loaded path=%s err=%v", seedPath, err)
		return conn, nil
	}
	if err := repositories.SeedReferencePoints(ctx, conn, seedPath); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("init and seed: %w", err)
	}

	return conn, nil
}
