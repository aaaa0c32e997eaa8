package hname

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/dboslee/lru"
)

const memoShards = 16

// Memo caches hnames per name. Hash is cheap and pure, so the cache only saves
// repeated digests for hot names; every result equals Hash(name).
type Memo struct {
	shards []*memoShard
}

type memoShard struct {
	mu    sync.Mutex
	cache *lru.Cache[string, HName]
}

// NewMemo creates a memo holding roughly capacity names across its shards.
// A non-positive capacity disables caching.
func NewMemo(capacity int) *Memo {
	if capacity <= 0 {
		return &Memo{}
	}

	perShard := (capacity + memoShards - 1) / memoShards
	shards := make([]*memoShard, memoShards)
	for i := range shards {
		shards[i] = &memoShard{cache: lru.New[string, HName](lru.WithCapacity(perShard))}
	}
	return &Memo{shards: shards}
}

// Hash returns the hname of name, computing it on a miss.
func (m *Memo) Hash(name string) HName {
	if len(m.shards) == 0 {
		return Hash(name)
	}

	s := m.shards[xxhash.Sum64String(name)%memoShards]
	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.cache.Get(name); ok {
		return h
	}
	h := Hash(name)
	s.cache.Set(name, h)
	return h
}

// Len returns the number of cached names.
func (m *Memo) Len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.Lock()
		n += s.cache.Len()
		s.mu.Unlock()
	}
	return n
}
