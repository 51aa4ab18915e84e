package embcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadv/vito-mcp/internal/logger"
)

type fakeStore struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	sets    int
	lastTTL time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (f *fakeStore) MGet(_ context.Context, keys ...string) *redis.SliceCmd {
	if f.getErr != nil {
		return redis.NewSliceResult(nil, f.getErr)
	}
	vals := make([]interface{}, len(keys))
	for i, k := range keys {
		if v, ok := f.data[k]; ok {
			vals[i] = string(v)
		}
	}
	return redis.NewSliceResult(vals, nil)
}

func (f *fakeStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.sets++
	f.lastTTL = ttl
	f.data[key] = value.([]byte)
	return redis.NewStatusResult("OK", nil)
}

type countingProvider struct {
	calls   int
	byText  map[string][]float32
	callErr error
}

func (p *countingProvider) Create(_ context.Context, texts ...string) ([][]float32, error) {
	p.calls++
	if p.callErr != nil {
		return nil, p.callErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = p.byText[t]
	}
	return out, nil
}

func TestCacheMissThenHit(t *testing.T) {
	store := newFakeStore()
	inner := &countingProvider{byText: map[string][]float32{"hello": {0.1, 0.2}}}
	cached := New(inner, store, time.Hour, nil, logger.NewNop())

	vecs, err := cached.Create(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.1, 0.2}}, vecs)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, 1, store.sets)
	assert.Equal(t, time.Hour, store.lastTTL)

	vecs, err = cached.Create(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.1, 0.2}}, vecs)
	assert.Equal(t, 1, inner.calls, "second call should be served from cache")
}

func TestCachePartialHitBatchesMisses(t *testing.T) {
	store := newFakeStore()
	inner := &countingProvider{byText: map[string][]float32{
		"a": {1, 0},
		"b": {0, 1},
		"c": {1, 1},
	}}
	cached := New(inner, store, 0, nil, logger.NewNop())

	_, err := cached.Create(context.Background(), "b")
	require.NoError(t, err)
	require.Equal(t, 1, inner.calls)

	vecs, err := cached.Create(context.Background(), "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}, {0, 1}, {1, 1}}, vecs)
	// One more batch for the two misses, not one call per text.
	assert.Equal(t, 2, inner.calls)
}

func TestCacheReadFailureDegradesToMiss(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("redis down")
	inner := &countingProvider{byText: map[string][]float32{"hello": {0.1}}}
	cached := New(inner, store, 0, nil, logger.NewNop())

	vecs, err := cached.Create(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.1}}, vecs)
	assert.Equal(t, 1, inner.calls)
}

func TestCacheWriteFailureIsNotFatal(t *testing.T) {
	store := newFakeStore()
	store.setErr = errors.New("redis down")
	inner := &countingProvider{byText: map[string][]float32{"hello": {0.1}}}
	cached := New(inner, store, 0, nil, logger.NewNop())

	_, err := cached.Create(context.Background(), "hello")
	assert.NoError(t, err)
}

func TestCachePropagatesInnerError(t *testing.T) {
	inner := &countingProvider{callErr: errors.New("inference down")}
	cached := New(inner, newFakeStore(), 0, nil, logger.NewNop())

	_, err := cached.Create(context.Background(), "hello")
	assert.ErrorContains(t, err, "inference down")
}

func TestVectorCodecRoundTrip(t *testing.T) {
	in := []float32{0.25, -1.5, 3.125}
	out, err := bytesToVector(vectorToBytes(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = bytesToVector([]byte{1, 2, 3})
	assert.Error(t, err)
	_, err = bytesToVector(nil)
	assert.Error(t, err)
}
