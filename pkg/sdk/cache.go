package sdk

import (
	"context"
	"errors"
	"hash/fnv"
	"log"
	"strconv"
	"time"

	"github.com/matst80/slask-storefront/pkg/common/jsoncompat"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("sdk: cache miss")

// CacheStore is the byte store behind the search cache. Get returns
// ErrCacheMiss for unknown keys.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, expiration time.Duration) error
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return data, err
}

func (s *RedisStore) Set(ctx context.Context, key string, data []byte, expiration time.Duration) error {
	return s.client.Set(ctx, key, data, expiration).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// CachedSearcher answers repeated searches from the store. Store failures
// are logged and the search goes to the wrapped searcher.
type CachedSearcher struct {
	next       Searcher
	store      CacheStore
	expiration time.Duration
	prefix     string
}

func NewCachedSearcher(next Searcher, store CacheStore, expiration time.Duration, prefix string) *CachedSearcher {
	return &CachedSearcher{
		next:       next,
		store:      store,
		expiration: expiration,
		prefix:     prefix,
	}
}

func (c *CachedSearcher) CacheKey(req *ProductSearchRequest) string {
	h := fnv.New64a()
	h.Write([]byte(req.Values().Encode()))
	return c.prefix + "search:" + strconv.FormatUint(h.Sum64(), 36)
}

func (c *CachedSearcher) SearchProducts(ctx context.Context, req *ProductSearchRequest) (*PagedSearchResult, error) {
	key := c.CacheKey(req)
	data, err := c.store.Get(ctx, key)
	if err == nil {
		result := &PagedSearchResult{}
		if err = jsoncompat.Unmarshal(data, result); err == nil {
			return result, nil
		}
		log.Printf("Failed to decode cached search %s: %v", key, err)
	} else if !errors.Is(err, ErrCacheMiss) {
		log.Printf("Failed to read search cache: %v", err)
	}

	result, err := c.next.SearchProducts(ctx, req)
	if err != nil {
		return nil, err
	}
	if data, err := jsoncompat.Marshal(result); err == nil {
		if err := c.store.Set(ctx, key, data, c.expiration); err != nil {
			log.Printf("Failed to store search cache: %v", err)
		}
	}
	return result, nil
}
