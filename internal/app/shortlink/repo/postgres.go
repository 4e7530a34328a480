package repo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"shorturl.local/internal/app/shortlink"
)

type PostgresStore struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

var _ shortlink.Store = (*PostgresStore)(nil)

func NewPostgresStore(db *pgxpool.Pool, timeout time.Duration) *PostgresStore {
	return &PostgresStore{
		db:      db,
		timeout: orDefault(timeout),
	}
}

/*
PutIfAbsent 依赖 id 主键 + ON CONFLICT DO NOTHING 实现原子写：
冲突时 RETURNING 不返回行，Scan 得到 pgx.ErrNoRows。
*/
func (s *PostgresStore) PutIfAbsent(ctx context.Context, m shortlink.Mapping) error {
	dbctx, cancel := writeContext(ctx, s.timeout)
	defer cancel()

	var id string
	err := s.db.
		QueryRow(dbctx, "INSERT INTO url_mappings (id,long_url,short_url,created_at) VALUES ($1,$2,$3,$4) ON CONFLICT (id) DO NOTHING RETURNING id", m.ID, m.LongURL, m.ShortURL, m.CreatedAt).
		Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shortlink.ErrAlreadyExists
		}
		slog.Error("postgres put failed", "id", m.ID, "err", err)
		return err
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (shortlink.Mapping, error) {
	dbctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	m := shortlink.Mapping{ID: id}
	if err := s.db.
		QueryRow(dbctx, "SELECT long_url,short_url,created_at FROM url_mappings WHERE id=$1", id).
		Scan(&m.LongURL, &m.ShortURL, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shortlink.Mapping{}, shortlink.ErrNotFound
		}
		slog.Error("postgres get failed", "id", id, "err", err)
		return shortlink.Mapping{}, err
	}
	return m, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
