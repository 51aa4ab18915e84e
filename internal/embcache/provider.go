package embcache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/hadv/vito-mcp/internal/embedding"
)

// store is the consumer interface of the cache, satisfied by
// *redis.Client.
type store interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedProvider caches embeddings in Redis in front of an inner
// embedding.Provider. Keys are SHA-256 of the input text; values are the
// raw little-endian float32 bytes of the vector.
//
// Cache failures degrade to misses: a broken Redis never fails an
// embedding call, it only removes the saving.
type CachedProvider struct {
	inner      embedding.Provider
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     Logger
}

var _ embedding.Provider = (*CachedProvider)(nil)

// New creates the caching decorator. cacheTotal is a counter vec with
// label "result" ("hit"/"miss"); nil disables counting.
func New(inner embedding.Provider, s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger Logger) *CachedProvider {
	return &CachedProvider{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Create returns embeddings for the texts in input order, serving from
// cache where possible and embedding only the misses through the inner
// provider in one batch.
func (c *CachedProvider) Create(ctx context.Context, texts ...string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("embcache: no texts provided")
	}

	keys := make([]string, len(texts))
	for i, t := range texts {
		keys[i] = cacheKey(t)
	}

	out := make([][]float32, len(texts))
	missIdx := c.lookup(ctx, keys, out)

	if c.cacheTotal != nil {
		hits := len(texts) - len(missIdx)
		c.cacheTotal.WithLabelValues("hit").Add(float64(hits))
		c.cacheTotal.WithLabelValues("miss").Add(float64(len(missIdx)))
	}

	if len(missIdx) == 0 {
		return out, nil
	}

	missTexts := make([]string, len(missIdx))
	for i, idx := range missIdx {
		missTexts[i] = texts[idx]
	}

	vectors, err := c.inner.Create(ctx, missTexts...)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missTexts) {
		return nil, fmt.Errorf("embcache: inner provider returned %d vectors for %d texts", len(vectors), len(missTexts))
	}

	for i, idx := range missIdx {
		out[idx] = vectors[i]
		if err := c.store.Set(ctx, keys[idx], vectorToBytes(vectors[i]), c.ttl).Err(); err != nil {
			c.logger.Warn("Failed to cache embedding", err, map[string]interface{}{
				"key": keys[idx],
			})
		}
	}

	return out, nil
}

// lookup fills out with cached vectors and returns the indexes of the
// texts that still need embedding.
func (c *CachedProvider) lookup(ctx context.Context, keys []string, out [][]float32) []int {
	all := func() []int {
		miss := make([]int, len(keys))
		for i := range keys {
			miss[i] = i
		}
		return miss
	}

	values, err := c.store.MGet(ctx, keys...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("Failed to read embedding cache", err)
		return all()
	}
	if len(values) != len(keys) {
		return all()
	}

	var miss []int
	for i, v := range values {
		raw, ok := v.(string)
		if !ok || raw == "" {
			miss = append(miss, i)
			continue
		}
		vec, err := bytesToVector([]byte(raw))
		if err != nil {
			c.logger.Warn("Failed to parse cached embedding", err, map[string]interface{}{
				"key": keys[i],
			})
			miss = append(miss, i)
			continue
		}
		out[i] = vec
	}
	return miss
}

func cacheKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return keyPrefix + hex.EncodeToString(h[:])
}

func vectorToBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToVector(data []byte) ([]float32, error) {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, fmt.Errorf("embcache: invalid cached data: len=%d", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
