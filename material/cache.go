package material

import "sync"

// TextureCache de-duplicates texture loads by path. Spec section 5 assumes
// a single loader goroutine at a time; the mutex turns any violation of
// that assumption into a detectable race rather than silent corruption
// (spec section 5, "texture cache is single-loader-at-a-time").
type TextureCache struct {
	mu      sync.Mutex
	entries map[string]*Texture
}

func NewTextureCache() *TextureCache {
	return &TextureCache{entries: make(map[string]*Texture)}
}

func (c *TextureCache) Get(path string) (*Texture, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.entries[path]
	return t, ok
}

// GetOrLoad returns the cached texture for path, loading and caching it via
// loader on first access. A failed load is cached as an invalid sentinel
// texture so repeated lookups for a known-missing path don't re-attempt the
// load (spec section 7, "missing texture: cache stores IsValid()==false
// entry").
func (c *TextureCache) GetOrLoad(path string, loader func() (*Texture, error)) (*Texture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.entries[path]; ok {
		return t, nil
	}

	t, err := loader()
	if err != nil {
		c.entries[path] = &Texture{}
		return c.entries[path], err
	}

	c.entries[path] = t
	return t, nil
}
