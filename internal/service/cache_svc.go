package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
)

const (
	// AnalysisCacheTTL bounds how long a deep-analysis result is reused
	// before a fresh run hits the collaborator again.
	AnalysisCacheTTL = 15 * time.Minute
	// AuthorCacheTTL covers per-author aggregates, which are cheap to
	// recompute but read often.
	AuthorCacheTTL = 5 * time.Minute
)

// CacheService provides a Redis cache-aside layer for analysis results and
// author aggregates. The feed store stays authoritative; losing Redis only
// costs extra collaborator calls.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client and every
// operation becomes a no-op.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetAnalysis retrieves a cached analysis result. Returns nil if not cached
// or cache is disabled.
func (c *CacheService) GetAnalysis(ctx context.Context, postID string) (*model.DeepAnalysisResult, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, analysisKey(postID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result model.DeepAnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetAnalysis stores an analysis result in cache.
func (c *CacheService) SetAnalysis(ctx context.Context, postID string, result model.DeepAnalysisResult) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, analysisKey(postID), b, AnalysisCacheTTL).Err()
}

// InvalidateAnalysis removes a post's analysis from cache (forced re-verify).
func (c *CacheService) InvalidateAnalysis(ctx context.Context, postID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, analysisKey(postID)).Err()
}

// GetAuthor retrieves cached author aggregates. Returns nil if not cached.
func (c *CacheService) GetAuthor(ctx context.Context, author string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, authorKey(author)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetAuthor stores author aggregates in cache.
func (c *CacheService) SetAuthor(ctx context.Context, author string, data any) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, authorKey(author), b, AuthorCacheTTL).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func analysisKey(postID string) string {
	return fmt.Sprintf("analysis:%s", postID)
}

func authorKey(author string) string {
	return fmt.Sprintf("author:%s", author)
}
