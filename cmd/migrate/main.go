package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"shorturl.local/internal/platform/config"
	"shorturl.local/internal/platform/db"
	"shorturl.local/internal/platform/migrate"
	"shorturl.local/migrations"
)

// 用法: go run ./cmd/migrate [-dir ./migrations]
// 不传 -dir 时使用编译进二进制的 migrations。
func main() {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	dir := flag.String("dir", cfg.MigrationsDir, "directory of .sql files (default: embedded)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := db.New(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal(err)
	}

	res, err := migrate.Up(ctx, pool, migrate.Options{Dir: *dir, FS: migrations.FS})
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("migrate done", "applied", res.AppliedFiles, "skipped", res.SkippedFiles)
}
