// sentiric-numbering-service/internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sentiric/sentiric-numbering-service/internal/cache"
	"github.com/sentiric/sentiric-numbering-service/internal/config"
	"github.com/sentiric/sentiric-numbering-service/internal/database"
	"github.com/sentiric/sentiric-numbering-service/internal/metrics"
	"github.com/sentiric/sentiric-numbering-service/internal/phonenumber"
	"github.com/sentiric/sentiric-numbering-service/internal/phonenumber/metadata"
	"github.com/sentiric/sentiric-numbering-service/internal/repository/postgres"
	grpcserver "github.com/sentiric/sentiric-numbering-service/internal/server/grpc"
	"github.com/sentiric/sentiric-numbering-service/internal/server/rest"
	"github.com/sentiric/sentiric-numbering-service/internal/service/numbering"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Cfg *config.Config
	Log zerolog.Logger
}

func NewApp(cfg *config.Config, log zerolog.Logger) *App {
	return &App{Cfg: cfg, Log: log}
}

// Run, servisleri başlatır ve ctx iptal edilene ya da SIGINT/SIGTERM gelene kadar bekler.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Kural tablosu ve varsayılan bölge
	base, err := metadata.Default()
	if err != nil {
		return fmt.Errorf("gömülü numaralandırma tablosu yüklenemedi: %w", err)
	}
	var defaultRegion phonenumber.Country
	if a.Cfg.DefaultRegion != "" {
		if defaultRegion, err = phonenumber.ParseCountry(a.Cfg.DefaultRegion); err != nil {
			return fmt.Errorf("geçersiz DEFAULT_REGION %q: %w", a.Cfg.DefaultRegion, err)
		}
	}

	// 2. Altyapı Bağlantıları
	var repo numbering.Repository
	if a.Cfg.DatabaseURL != "" {
		pool, err := a.setupDatabase(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()
		repo = postgres.NewRepository(pool, a.Log)
	} else {
		a.Log.Info().Msg("POSTGRES_URL tanımlı değil, yalnızca gömülü planlar kullanılacak.")
	}

	var parseCache numbering.Cache
	if a.Cfg.RedisURL != "" {
		redisClient, err := a.setupRedis(ctx)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		parseCache = cache.NewParseCache(redisClient, a.Cfg.ParseCacheTTL, a.Log)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// 3. Bağımlılıkların Oluşturulması (Dependency Injection)
	svc := numbering.NewService(base, repo, parseCache, metrics.New(reg), defaultRegion, a.Log)
	if err := svc.LoadPlans(ctx); err != nil {
		return fmt.Errorf("numaralandırma planları yüklenemedi: %w", err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", a.Cfg.Server.HttpPort),
		Handler:           rest.NewRouter(rest.NewHandler(svc, a.Cfg.AdminToken, a.Log), reg, a.Log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer, healthServer, err := grpcserver.NewServer(a.Cfg.TLS, a.Log)
	if err != nil {
		return fmt.Errorf("gRPC sunucusu oluşturulamadı: %w", err)
	}
	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%s", a.Cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("gRPC portu dinlenemedi: %w", err)
	}

	// 4. Sunucuları Başlat
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info().Str("port", a.Cfg.Server.HttpPort).Msg("HTTP sunucusu (API, health & metrics) dinleniyor...")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP sunucusu: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		a.Log.Info().Str("port", a.Cfg.Server.GRPCPort).Msg("gRPC sunucusu dinleniyor")
		grpcserver.SetServing(healthServer, true)
		if err := grpcServer.Serve(grpcListener); err != nil {
			return fmt.Errorf("gRPC sunucusu: %w", err)
		}
		return nil
	})

	// 5. Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		a.Log.Warn().Msg("Kapatma sinyali alındı, servisler durduruluyor...")
		grpcserver.SetServing(healthServer, false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		a.Log.Info().Msg("gRPC sunucusu durduruluyor...")
		grpcServer.GracefulStop()

		a.Log.Info().Msg("HTTP sunucusu durduruluyor...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			a.Log.Error().Err(err).Msg("HTTP sunucusu düzgün kapatılamadı.")
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.Log.Info().Msg("Servis başarıyla durduruldu.")
	return nil
}

func (a *App) setupDatabase(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := database.NewConnection(ctx, a.Cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("veritabanı bağlantısı kurulamadı: %w", err)
	}
	if err := database.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("veritabanı şeması oluşturulamadı: %w", err)
	}
	a.Log.Info().Msg("✅ Veritabanı bağlantısı sağlandı")
	return pool, nil
}

// setupRedis, istemciyi kurar. Ping hatası servisi durdurmaz; cache hataları
// zaten doğrudan çözümlemeye düşer.
func (a *App) setupRedis(ctx context.Context) (*redis.Client, error) {
	redisOpts, err := redis.ParseURL(a.Cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("geçersiz Redis URL: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)

	if err := redisClient.Ping(ctx).Err(); err != nil {
		a.Log.Error().Err(err).Msg("Redis bağlantısı başarısız, cache devre dışı kalabilir")
	} else {
		a.Log.Info().Str("addr", redisOpts.Addr).Msg("✅ Redis bağlantısı sağlandı")
	}
	return redisClient, nil
}
