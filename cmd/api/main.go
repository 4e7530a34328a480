package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"shorturl.local/gee"
	"shorturl.local/gee/middleware"
	"shorturl.local/internal/app/shortlink"
	slcache "shorturl.local/internal/app/shortlink/cache"
	shortlinkhttpapi "shorturl.local/internal/app/shortlink/httpapi"
	"shorturl.local/internal/app/shortlink/repo"
	platformcache "shorturl.local/internal/platform/cache"
	"shorturl.local/internal/platform/config"
	"shorturl.local/internal/platform/db"
	"shorturl.local/internal/platform/dynamo"
	"shorturl.local/internal/platform/httpmiddleware"
	"shorturl.local/internal/platform/httpserver"
	"shorturl.local/internal/platform/metrics"
	"shorturl.local/internal/platform/migrate"
	"shorturl.local/internal/platform/trace"
	"shorturl.local/migrations"
)

var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var h slog.Handler
	if cfg.LogFormat == "text" {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(h).With("service", cfg.ServiceName)
}

// openStore 按 STORE_DRIVER 构造存储；返回的 cleanup 在退出时释放连接。
func openStore(ctx context.Context, cfg config.Config) (shortlink.Store, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		slog.Warn("using in-memory store, mappings are lost on restart")
		return repo.NewMemoryStore(), func() {}, nil
	case "postgres":
		pool, err := db.New(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres ping: %w", err)
		}
		slog.Info("数据库连接成功")
		if cfg.MigrateOnStart {
			res, err := migrate.Up(ctx, pool, migrate.Options{Dir: cfg.MigrationsDir, FS: migrations.FS})
			if err != nil {
				pool.Close()
				return nil, nil, err
			}
			slog.Info("migrations done", "applied", len(res.AppliedFiles), "skipped", len(res.SkippedFiles))
		}
		return repo.NewPostgresStore(pool, cfg.StoreTimeout), pool.Close, nil
	case "redis":
		client, err := platformcache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewRedisStore(client, cfg.StoreTimeout), func() { _ = client.Close() }, nil
	case "dynamodb":
		client, err := dynamo.New(ctx, cfg.AWSRegion, cfg.DynamoEndpoint)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using dynamodb store", "table", cfg.DynamoTable, "region", cfg.AWSRegion)
		return repo.NewDynamoStore(client, cfg.DynamoTable, cfg.StoreTimeout), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// withCache 给存储加 L1(ristretto)+L2(redis) 读缓存；Redis 不可用时只保留 L1。
func withCache(store shortlink.Store, cfg config.Config) (shortlink.Store, func(), error) {
	localCache, err := slcache.NewLocalCache(100000, 1<<24) // 10万条目，16MB
	if err != nil {
		return nil, nil, err
	}
	redisClient, err := platformcache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		slog.Warn("redis cache unavailable, falling back to local cache only", "err", err)
		redisClient = nil
	}
	slCache := slcache.NewShortlinkCache(redisClient, localCache)
	return repo.NewCachedStore(store, slCache), func() {
		slCache.Close()
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}, nil
}

func main() {
	cfg := config.Load()
	slog.SetDefault(newLogger(cfg))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, closeStore, err := openStore(initCtx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	if cfg.CacheEnabled {
		cached, closeCache, err := withCache(store, cfg)
		if err != nil {
			log.Fatal(err)
		}
		defer closeCache()
		store = cached
	}

	gen, err := shortlink.NewGenerator(cfg.TokenEncoding, cfg.TokenBytes, cfg.TokenLength)
	if err != nil {
		log.Fatal(err)
	}
	creator := shortlink.NewCreateService(store, gen, cfg.BaseURL, cfg.CreateMaxAttempts)
	resolver := shortlink.NewResolveService(store)

	metrics.Init()

	if cfg.TracingEnabled {
		shutdown, err := trace.InitTrace(cfg.OtlpGrpcEndpoint, cfg.OtlpServiceName)
		if err != nil {
			slog.Error("trace init failed", "err", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					slog.Error("trace shutdown failed", "err", err)
				}
			}()
		}
	} else {
		slog.Warn("Tracing disabled by config", "TRACING_ENABLED", false)
	}

	// 对外业务
	r := gee.New()
	r.Use(gee.Recovery(), middleware.ReqID(), middleware.AccessLog(), httpmiddleware.Metrics(), httpmiddleware.TraceName())

	shortlinkhttpapi.RegisterPublicRoutes(r, creator, resolver)

	r.GET("/healthz", func(ctx *gee.Context) {
		ctx.String(http.StatusOK, "ok")
	})

	publicHandler := httpmiddleware.CORS(cfg.CORSAllowedOrigins)(r)
	if cfg.TracingEnabled {
		publicHandler = otelhttp.NewHandler(publicHandler, "http")
	}
	publicSrv := httpserver.New(cfg, publicHandler)

	// 仅本机/内网
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())
	adminMux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		p, ok := store.(repo.Pinger)
		if !ok {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			slog.Error("readyz: store ping failed", "driver", cfg.StoreDriver, "err", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("store not ready"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})

	adminMux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"service_name": cfg.ServiceName,
			"version":      version,
			"commit":       commit,
			"build_time":   buildTime,
			"go_version":   runtime.Version(),
			"store_driver": cfg.StoreDriver,
		})
	})

	if cfg.PprofEnabled {
		adminMux.HandleFunc("/debug/pprof/", pprof.Index)
		adminMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		adminMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		adminMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		adminMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	adminCfg := cfg
	adminCfg.Addr = cfg.AdminAddr
	adminSrv := httpserver.New(adminCfg, adminMux)

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errch := make(chan error, 2)
	go func() {
		errch <- httpserver.RunWithGracefulShutdownContext(publicSrv, cfg.ShutdownTimeout, stopCtx)
	}()
	go func() {
		errch <- httpserver.RunWithGracefulShutdownContext(adminSrv, cfg.ShutdownTimeout, stopCtx)
	}()
	slog.Info("shorturl started", "addr", cfg.Addr, "admin_addr", cfg.AdminAddr, "store", cfg.StoreDriver, "encoding", cfg.TokenEncoding)

	err = <-errch
	if err != nil {
		stop()
		select {
		case <-errch:
		case <-time.After(cfg.ShutdownTimeout + time.Second):
		}
		log.Fatal(err)
	}

	stop()
	<-errch
}
