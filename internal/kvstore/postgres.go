package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrota/internal/telemetry/tracing"
)

// PgConnection is satisfied by *pgxpool.Pool
type PgConnection interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const createTableSQL = `CREATE TABLE IF NOT EXISTS kv_store (key TEXT PRIMARY KEY, value TEXT NOT NULL);`

const upsertSQL = `INSERT INTO kv_store (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;`

type PgStore struct {
	db PgConnection
}

func NewPgStore(db PgConnection) *PgStore {
	return &PgStore{
		db: db,
	}
}

// Migrate creates the kv_store table if missing
func (s *PgStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create kv_store table: %w", err)
	}
	return nil
}

func (s *PgStore) Get(ctx context.Context, key string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.pg.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var value string
	if err := s.db.QueryRow(
		ctx,
		`SELECT value FROM kv_store WHERE key = $1;`,
		key,
	).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("select %s: %w", key, err)
	}

	return value, nil
}

func (s *PgStore) Set(ctx context.Context, key, value string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.pg.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.db.Exec(ctx, upsertSQL, key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *PgStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM kv_store WHERE key = $1;`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *PgStore) ListKeys(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.pg.listKeys")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := s.db.Query(ctx, `SELECT key FROM kv_store ORDER BY key;`)
	if err != nil {
		return nil, fmt.Errorf("select keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return keys, nil
}

func (s *PgStore) GetMany(ctx context.Context, keys []string) (_ map[string]string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.pg.getMany")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	res := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return res, nil
	}

	rows, err := s.db.Query(
		ctx,
		`SELECT key, value FROM kv_store WHERE key = ANY($1);`,
		keys,
	)
	if err != nil {
		return nil, fmt.Errorf("select many: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		res[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return res, nil
}

func (s *PgStore) SetMany(ctx context.Context, pairs map[string]string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.pg.setMany")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if len(pairs) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	for _, k := range sortedKeys(pairs) {
		if _, err := tx.Exec(ctx, upsertSQL, k, pairs[k]); err != nil {
			rollback(ctx, tx)
			return fmt.Errorf("upsert %s: %w", k, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *PgStore) Clear(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM kv_store;`); err != nil {
		return fmt.Errorf("delete all: %w", err)
	}
	return nil
}

// Replace deletes every row and writes pairs in a single transaction
func (s *PgStore) Replace(ctx context.Context, pairs map[string]string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.pg.replace")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM kv_store;`); err != nil {
		rollback(ctx, tx)
		return fmt.Errorf("delete all: %w", err)
	}
	for _, k := range sortedKeys(pairs) {
		if _, err := tx.Exec(ctx, upsertSQL, k, pairs[k]); err != nil {
			rollback(ctx, tx)
			return fmt.Errorf("upsert %s: %w", k, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil {
		log.Errorf("kv store rollback: %s", err)
	}
}
