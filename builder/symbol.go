package builder

import (
	"go/token"
	"sync"
)

// VectorInfo records which handler claimed a vector symbol. Every vector
// admits at most one trampoline program-wide.
type VectorInfo struct {
	Handler     string // qualified name of the user handler
	LinkName    string // symbol of the generated trampoline
	IsInterrupt bool
	Bound       bool
	Pos         token.Pos
}

type SymbolInfoStore struct {
	info map[string]*VectorInfo
	mu   sync.Mutex
}

func NewSymbolInfoStore() *SymbolInfoStore {
	return &SymbolInfoStore{
		info: map[string]*VectorInfo{},
	}
}

func (s *SymbolInfoStore) GetSymbolInfo(symbol string) *VectorInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.info[symbol]
	if !ok {
		info = &VectorInfo{}
		s.info[symbol] = info
	}
	return info
}
