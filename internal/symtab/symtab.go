// Package symtab implements the scoped symbol table for the front end:
// a global scope plus at most one subroutine scope, with sequential storage
// offsets for variables declared in the active scope.
package symtab

import (
	"errors"
	"fmt"
	"io"

	"ampl/internal/hashtab"
)

const loadFactor = 0.75

var (
	// ErrRedeclared is returned when a name already exists in the active scope.
	ErrRedeclared = errors.New("symtab: name already declared in this scope")

	// ErrScopeOpen is returned by OpenScope when a subroutine scope is
	// already active; nesting is capped at one level.
	ErrScopeOpen = errors.New("symtab: subroutine scope already open")

	// ErrGlobalScope is returned by CloseScope at global scope.
	ErrGlobalScope = errors.New("symtab: no open subroutine scope")
)

// SymbolTable tracks identifier properties across the two scope levels.
// Instances are independent; none of the state is package-global.
type SymbolTable struct {
	active *hashtab.Table[string, *Properties]
	saved  *hashtab.Table[string, *Properties]

	// offset is the next storage slot for a variable declared in the
	// active scope; savedOffset preserves the enclosing scope's counter
	// while a subroutine scope is open.
	offset      int
	savedOffset int
}

// New returns a symbol table holding only the global scope.
func New() (*SymbolTable, error) {
	t, err := newScopeTable()
	if err != nil {
		return nil, err
	}
	return &SymbolTable{active: t, offset: 1}, nil
}

func newScopeTable() (*hashtab.Table[string, *Properties], error) {
	return hashtab.New[string, *Properties](loadFactor, shiftHash, stringEq)
}

// Declare binds id in the active scope. Variables receive the next
// sequential offset (starting at 1, in declaration order); callables never
// receive offsets. On failure no offset state changes.
func (s *SymbolTable) Declare(id string, prop *Properties) error {
	if prop == nil {
		return errors.New("symtab: nil properties")
	}
	if err := s.active.Insert(id, prop); err != nil {
		if errors.Is(err, hashtab.ErrExists) {
			return fmt.Errorf("%w: %s", ErrRedeclared, id)
		}
		return err
	}
	if prop.Type.IsVariable() {
		prop.Offset = s.offset
		s.offset++
	}
	return nil
}

// OpenScope starts the single permitted subroutine scope. The subroutine's
// own name is bound in the enclosing scope first, so the routine is callable
// from that scope and from its own body.
func (s *SymbolTable) OpenScope(id string, prop *Properties) error {
	if s.saved != nil {
		return ErrScopeOpen
	}
	if err := s.Declare(id, prop); err != nil {
		return err
	}
	fresh, err := newScopeTable()
	if err != nil {
		return err
	}
	s.saved, s.savedOffset = s.active, s.offset
	s.active, s.offset = fresh, 1
	return nil
}

// CloseScope releases the active subroutine scope and reactivates the
// enclosing one, restoring its offset counter.
func (s *SymbolTable) CloseScope() error {
	if s.saved == nil {
		return ErrGlobalScope
	}
	if err := s.active.Free(releaseKey, releaseProp); err != nil {
		return err
	}
	s.active, s.saved = s.saved, nil
	s.offset, s.savedOffset = s.savedOffset, 0
	return nil
}

// Lookup resolves id in the active scope, falling back to the enclosing
// scope for callables only: variables of the enclosing scope are invisible
// inside a subroutine.
func (s *SymbolTable) Lookup(id string) (*Properties, bool) {
	if p, ok := s.active.Search(id); ok {
		return p, true
	}
	if s.saved != nil {
		if p, ok := s.saved.Search(id); ok && p.Type.IsCallable() {
			return p, true
		}
	}
	return nil, false
}

// FrameWidth returns one past the highest variable offset assigned in the
// active scope: the number of storage slots its frame must reserve.
func (s *SymbolTable) FrameWidth() int {
	return s.offset
}

// Release tears down the active table. The instance must not be used
// afterwards.
func (s *SymbolTable) Release() error {
	return s.active.Free(releaseKey, releaseProp)
}

// Dump writes the active scope's bucket layout to w.
func (s *SymbolTable) Dump(w io.Writer) {
	s.active.Dump(w, formatEntry)
}

func formatEntry(id string, p *Properties) string {
	if p.Type.IsCallable() {
		return fmt.Sprintf("%s@_[%s]", id, p.Type)
	}
	return fmt.Sprintf("%s@%d[%s]", id, p.Offset, p.Type)
}

// The hash table owns its entries once inserted; in Go their memory is
// reclaimed by the collector, so the release hooks only serve to mark the
// scope's table dead.
func releaseKey(string)       {}
func releaseProp(*Properties) {}

// shiftHash is a five-bit rotating string hash reduced by the table size.
func shiftHash(key string, size uint) uint {
	var h uint32
	for i := 0; i < len(key); i++ {
		h = (h << 5) | (h >> 27)
		h += uint32(key[i])
	}
	return uint(h) % size
}

func stringEq(a, b string) bool { return a == b }
