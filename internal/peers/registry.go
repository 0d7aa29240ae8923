// Package peers tracks the currently connected consensus peers.
package peers

import (
	"sort"
	"sync"
)

// Registry is the in-process set of connected peer addresses. All methods
// are safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	peers map[string]struct{}
}

// NewRegistry builds a registry seeded with the given peer addresses.
func NewRegistry(seed []string) *Registry {
	r := &Registry{peers: make(map[string]struct{}, len(seed))}
	for _, addr := range seed {
		if addr != "" {
			r.peers[addr] = struct{}{}
		}
	}
	return r
}

// Add records a connected peer.
func (r *Registry) Add(addr string) {
	if addr == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.peers[addr] = struct{}{}
}

// Remove forgets a disconnected peer.
func (r *Registry) Remove(addr string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.peers, addr)
}

// Consensus returns a sorted snapshot of the connected peer addresses.
func (r *Registry) Consensus() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.peers))
	for addr := range r.peers {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}
