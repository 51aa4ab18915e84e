package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadv/vito-mcp/internal/logger"
)

type recordingStore struct {
	mu      sync.Mutex
	err     error
	texts   []string
	domains []string
	metas   []map[string]any
}

func (s *recordingStore) StoreDomainKnowledge(_ context.Context, text, domain string, metadata map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.texts = append(s.texts, text)
	s.domains = append(s.domains, domain)
	s.metas = append(s.metas, metadata)
	return "id", nil
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestChunkText(t *testing.T) {
	chunks := ChunkText("one two three four five", 2)
	assert.Equal(t, []string{"one two", "three four", "five"}, chunks)

	assert.Empty(t, ChunkText("", 100))
	assert.Empty(t, ChunkText("   \n\t ", 100))

	// Whitespace runs collapse.
	assert.Equal(t, []string{"a b"}, ChunkText("a\n\n  b", 10))
}

func TestDirSourceWalksSupportedFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.txt":        "alpha",
		"sub/b.md":     "bravo",
		"ignored.json": "{}",
		"c.TXT":        "charlie",
	})

	src, err := NewDirSource(dir)
	require.NoError(t, err)

	var paths []string
	require.NoError(t, src.Walk(context.Background(), func(f File) error {
		paths = append(paths, filepath.Base(f.Path))
		return nil
	}))

	assert.ElementsMatch(t, []string{"a.txt", "b.md", "c.TXT"}, paths)
}

func TestNewDirSourceRejectsMissingDir(t *testing.T) {
	_, err := NewDirSource(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestIngesterStoresChunksWithMetadata(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"doc.txt": strings.Repeat("word ", 5),
	})
	src, err := NewDirSource(dir)
	require.NoError(t, err)

	store := &recordingStore{}
	cfg := &Config{Domain: "docs", ChunkWords: 2, Workers: 2}
	ing := NewIngester(store, cfg, logger.NewNop())

	stats, err := ing.Run(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Files)
	assert.Equal(t, 3, stats.Chunks)
	require.Len(t, store.texts, 3)
	assert.Equal(t, "docs", store.domains[0])

	for _, meta := range store.metas {
		assert.Contains(t, meta["path"], "doc.txt")
		assert.Contains(t, meta, "chunk")
	}
}

func TestIngesterPropagatesStoreErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{"doc.txt": "some words here"})
	src, err := NewDirSource(dir)
	require.NoError(t, err)

	store := &recordingStore{err: errors.New("backend down")}
	ing := NewIngester(store, &Config{Domain: "docs", ChunkWords: 10, Workers: 1}, logger.NewNop())

	_, err = ing.Run(context.Background(), src)
	assert.ErrorContains(t, err, "backend down")
}

func TestIngesterSkipsEmptyFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{"empty.txt": "  \n "})
	src, err := NewDirSource(dir)
	require.NoError(t, err)

	store := &recordingStore{}
	ing := NewIngester(store, &Config{Domain: "docs", ChunkWords: 10, Workers: 1}, logger.NewNop())

	stats, err := ing.Run(context.Background(), src)
	require.NoError(t, err)
	assert.Zero(t, stats.Files)
	assert.Zero(t, stats.Chunks)
}

func TestSupportedExtension(t *testing.T) {
	assert.True(t, supportedExtension("a.txt"))
	assert.True(t, supportedExtension("b.MD"))
	assert.True(t, supportedExtension("c.pdf"))
	assert.False(t, supportedExtension("d.json"))
	assert.False(t, supportedExtension("noext"))
}
