package web

type cacheEntry struct {
	hash uint64
	data []byte
	used bool
}

// cache is a fixed size ring of encoded frames, mirrored by
// every client, so repeated frames are sent as a slot index.
type cache struct {
	entries []cacheEntry
	idx     int
}

func newCache(size int) *cache {
	if size < 1 {
		size = 1
	}
	return &cache{entries: make([]cacheEntry, size)}
}

// store returns the slot holding hash, storing data in the
// next slot if it is not cached. hit reports whether the
// data was already cached.
func (c *cache) store(hash uint64, data []byte) (slot int, hit bool) {
	if i := c.index(hash); i != -1 {
		return i, true
	}

	slot = c.idx
	c.entries[slot] = cacheEntry{hash: hash, data: data, used: true}
	c.idx = (c.idx + 1) % len(c.entries)
	return slot, false
}

func (c *cache) index(hash uint64) int {
	for i, e := range c.entries {
		if e.used && e.hash == hash {
			return i
		}
	}

	return -1
}
