package progress

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meowdrop/backend/models"
	"meowdrop/backend/store"
)

type mapCache struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
}

func newMapCache() *mapCache {
	return &mapCache{values: make(map[string]string)}
}

func (c *mapCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *mapCache) Put(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "task_completions_abc", CacheKey("abc"))
}

func TestLocalSourceSaveFormat(t *testing.T) {
	cache := newMapCache()
	src := NewLocalSource(cache, nil)

	err := src.Save(context.Background(), Write{
		ProjectID:   "p1",
		Day:         "2025-03-10",
		Completions: []bool{true, false},
		At:          day1,
	})
	require.NoError(t, err)

	assert.JSONEq(t,
		fmt.Sprintf(`{"completions":[true,false],"timestamp":%d}`, day1.UnixMilli()),
		cache.values["task_completions_p1"])
}

func TestLocalSourceLoadSameDay(t *testing.T) {
	cache := newMapCache()
	// 23:30 in the reference zone, same day as day1.
	saved := time.Date(2025, 3, 10, 16, 30, 0, 0, time.UTC)
	cache.values["task_completions_p"] = fmt.Sprintf(`{"completions":[false,true],"timestamp":%d}`, saved.UnixMilli())
	src := NewLocalSource(cache, nil)

	done, ok, err := src.Load(context.Background(), newProject("p", "a", "b"), "2025-03-10")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []bool{false, true}, done)
}

func TestLocalSourceExpiresPriorDay(t *testing.T) {
	cache := newMapCache()
	// 23:59 the previous day in the reference zone.
	saved := time.Date(2025, 3, 9, 16, 59, 0, 0, time.UTC)
	cache.values["task_completions_p"] = fmt.Sprintf(`{"completions":[true,true],"timestamp":%d}`, saved.UnixMilli())
	tr := newTestTracker(t, NewLocalSource(cache, nil), &fakeClock{now: day1})

	got := tr.Completions(context.Background(), newProject("p", "a", "b"))
	assert.Equal(t, []bool{false, false}, got)
	assert.NotContains(t, cache.values, "task_completions_p", "stale entry is pruned")
}

func TestLocalSourceMalformedEntries(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":          "{{{",
		"wrong shape":       `[true,false]`,
		"missing timestamp": `{"completions":[true]}`,
		"null completions":  `{"completions":null,"timestamp":1741575600000}`,
		"wrong types":       `{"completions":"yes","timestamp":"now"}`,
	} {
		t.Run(name, func(t *testing.T) {
			cache := newMapCache()
			cache.values["task_completions_p"] = raw
			src := NewLocalSource(cache, nil)

			done, ok, err := src.Load(context.Background(), newProject("p", "a"), "2025-03-10")
			assert.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, done)
		})
	}
}

func TestLocalSourceReadError(t *testing.T) {
	cache := newMapCache()
	cache.getErr = errors.New("locked")
	src := NewLocalSource(cache, nil)

	_, _, err := src.Load(context.Background(), newProject("p"), "2025-03-10")
	assert.Error(t, err)
}

func TestLocalSourceWithSQLiteCache(t *testing.T) {
	cache, err := store.NewCompletionCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	clock := &fakeClock{now: day1}
	tr := NewTracker(NewLocalSource(cache, nil), Options{Clock: clock.Now})
	ctx := context.Background()
	p := &models.Project{ID: "p", Tasks: []string{"a", "b", "c"}}

	_, err = tr.Toggle(ctx, p, 1)
	require.NoError(t, err)
	tr.Close()

	// A fresh tracker reads the persisted entry back.
	tr = newTestTracker(t, NewLocalSource(cache, nil), clock)
	assert.Equal(t, []bool{false, true, false}, tr.Completions(ctx, p))

	clock.Set(day1.Add(24 * time.Hour))
	assert.Equal(t, []bool{false, false, false}, tr.Completions(ctx, p))
}
