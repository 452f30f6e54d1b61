package embedding

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/archestra-labs/memcore/internal/logger"
)

const cacheFileName = "embeddings.json"

// fileCache is a best-effort, single-owner JSON file mapping a composite
// hash key to an aligned vector. Cache failures never propagate to the
// caller: a miss or a write error just means the caller recomputes,
// exactly as spec.md §4.1 requires.
type fileCache struct {
	mu   sync.Mutex
	path string
	data map[string][]float32
}

func newFileCache(dir string) *fileCache {
	c := &fileCache{
		path: filepath.Join(dir, cacheFileName),
		data: make(map[string][]float32),
	}
	c.load()
	return c
}

func (c *fileCache) load() {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return
	}
	var data map[string][]float32
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Warn("embedding cache corrupt, starting empty", "path", c.path, "error", err)
		return
	}
	c.data = data
}

func (c *fileCache) get(key string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

// put stores the vector and best-effort persists the whole cache to disk.
// A write failure is logged, not returned: cache durability is a nicety,
// not a correctness requirement.
func (c *fileCache) put(key string, vec []float32) {
	c.mu.Lock()
	c.data[key] = vec
	raw, err := json.Marshal(c.data)
	dir := filepath.Dir(c.path)
	c.mu.Unlock()

	if err != nil {
		logger.Warn("embedding cache marshal failed", "error", err)
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Warn("embedding cache dir create failed", "error", err)
		return
	}
	if err := os.WriteFile(c.path, raw, 0644); err != nil {
		logger.Warn("embedding cache write failed", "error", err)
	}
}

// cacheKey hashes (provider, model, normalized text) per spec.md §3.
func cacheKey(provider, model, text string) string {
	h := sha256.New()
	h.Write([]byte(provider))
	h.Write([]byte{0})
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
