package fieldrules

import (
	"sync"
	"sync/atomic"
)

// tagCache keeps parsed tags, copy on write so reads never lock.
type tagCache struct {
	lock sync.Mutex
	m    atomic.Value // map[string][]cTag
}

func newTagCache() *tagCache {
	tc := new(tagCache)
	tc.m.Store(make(map[string][]cTag))
	return tc
}

func (tc *tagCache) Get(key string) (c []cTag, found bool) {
	c, found = tc.m.Load().(map[string][]cTag)[key]
	return
}

func (tc *tagCache) Set(key string, value []cTag) {
	m := tc.m.Load().(map[string][]cTag)
	nm := make(map[string][]cTag, len(m)+1)
	for k, v := range m {
		nm[k] = v
	}

	nm[key] = value
	tc.m.Store(nm)
}

// Reset drops every cached tag.
func (tc *tagCache) Reset() {
	tc.lock.Lock()
	tc.m.Store(make(map[string][]cTag))
	tc.lock.Unlock()
}
