package kvstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/2beens/gymrota/internal/telemetry/tracing"
)

const (
	DefaultRedisKeyPrefix = "gymrota:"
	redisScanCount        = 100
)

// RedisStore keeps every key under a common prefix, so Clear and ListKeys
// never touch keys owned by someone else in the same redis db
type RedisStore struct {
	rdb       redis.UniversalClient
	keyPrefix string
}

func NewRedisStore(rdb redis.UniversalClient, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = DefaultRedisKeyPrefix
	}
	return &RedisStore{
		rdb:       rdb,
		keyPrefix: keyPrefix,
	}
}

func (s *RedisStore) key(k string) string {
	return s.keyPrefix + k
}

func (s *RedisStore) Get(ctx context.Context, key string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.redis.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	value, err := s.rdb.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.redis.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.rdb.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) ListKeys(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.redis.listKeys")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		keys   []string
		cursor uint64
	)
	for {
		var batch []string
		batch, cursor, err = s.rdb.Scan(ctx, cursor, s.keyPrefix+"*", redisScanCount).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan: %w", err)
		}
		for _, k := range batch {
			keys = append(keys, strings.TrimPrefix(k, s.keyPrefix))
		}
		if cursor == 0 {
			break
		}
	}

	sort.Strings(keys)
	return keys, nil
}

func (s *RedisStore) GetMany(ctx context.Context, keys []string) (_ map[string]string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.redis.getMany")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	res := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return res, nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.key(k)
	}

	values, err := s.rdb.MGet(ctx, prefixed...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}

	for i, v := range values {
		if v == nil {
			continue
		}
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("redis mget: unexpected value type %T for key %s", v, keys[i])
		}
		res[keys[i]] = str
	}

	return res, nil
}

func (s *RedisStore) SetMany(ctx context.Context, pairs map[string]string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.redis.setMany")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if len(pairs) == 0 {
		return nil
	}

	keys := sortedKeys(pairs)
	values := make([]interface{}, 0, 2*len(keys))
	for _, k := range keys {
		values = append(values, s.key(k), pairs[k])
	}

	if err := s.rdb.MSet(ctx, values...).Err(); err != nil {
		return fmt.Errorf("redis mset: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	keys, err := s.ListKeys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.key(k)
	}
	if err := s.rdb.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("redis del all: %w", err)
	}
	return nil
}

// Replace drops the stale keys and writes pairs inside one MULTI/EXEC
func (s *RedisStore) Replace(ctx context.Context, pairs map[string]string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.redis.replace")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	stale, err := s.ListKeys(ctx)
	if err != nil {
		return err
	}
	if len(stale) == 0 && len(pairs) == 0 {
		return nil
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(stale) > 0 {
			prefixed := make([]string, len(stale))
			for i, k := range stale {
				prefixed[i] = s.key(k)
			}
			pipe.Del(ctx, prefixed...)
		}
		if len(pairs) > 0 {
			keys := sortedKeys(pairs)
			values := make([]interface{}, 0, 2*len(keys))
			for _, k := range keys {
				values = append(values, s.key(k), pairs[k])
			}
			pipe.MSet(ctx, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis replace: %w", err)
	}
	return nil
}

func sortedKeys(pairs map[string]string) []string {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
