package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"meowdrop/backend/models"
)

// CacheKeyPrefix prefixes every local cache key.
const CacheKeyPrefix = "task_completions_"

// Cache is a string key-value store local to this process' host.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// CacheEntry is the JSON value stored under CacheKey.
type CacheEntry struct {
	Completions []bool `json:"completions"`
	// Timestamp is the save instant in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

var errMalformedEntry = errors.New("malformed cache entry")

// CacheKey returns the cache key of a project.
func CacheKey(projectID string) string {
	return CacheKeyPrefix + projectID
}

// LocalSource keeps completion in a Cache, one entry per project. An entry
// saved on another reference day is treated as absent.
type LocalSource struct {
	cache  Cache
	logger *zap.Logger
}

func NewLocalSource(cache Cache, logger *zap.Logger) *LocalSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalSource{cache: cache, logger: logger}
}

func (s *LocalSource) Load(ctx context.Context, p *models.Project, day DateKey) ([]bool, bool, error) {
	key := CacheKey(p.ID)
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	entry, err := decodeEntry(raw)
	if err != nil {
		s.logger.Debug("ignoring cache entry", zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}

	if ReferenceDate(time.UnixMilli(entry.Timestamp)) != day {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Debug("stale cache entry not deleted", zap.String("key", key), zap.Error(err))
		}
		return nil, false, nil
	}
	return entry.Completions, true, nil
}

func (s *LocalSource) Save(ctx context.Context, w Write) error {
	b, err := json.Marshal(CacheEntry{
		Completions: w.Completions,
		Timestamp:   w.At.UnixMilli(),
	})
	if err != nil {
		return err
	}
	return s.cache.Put(ctx, CacheKey(w.ProjectID), string(b))
}

func decodeEntry(raw string) (CacheEntry, error) {
	var entry CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return CacheEntry{}, fmt.Errorf("%w: %v", errMalformedEntry, err)
	}
	if entry.Completions == nil || entry.Timestamp <= 0 {
		return CacheEntry{}, errMalformedEntry
	}
	return entry, nil
}
