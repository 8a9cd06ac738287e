// Package scope implements the lexically nested symbol table used while
// walking the Micro-ML AST to generate type equations: a chain of frames
// mapping identifier name to a one-shot mutable type-symbol cell.
package scope

import (
	"fmt"

	"github.com/gavinvogt/type-inference-survey/types"
)

// TypeSymbol is a single-writer cell that starts empty and is later
// filled with a fresh type variable (or, for the prelude, a fixed type)
// before equations are generated. Re-assignment after the type has been
// set is forbidden.
type TypeSymbol struct {
	typ types.Type
	set bool
}

// NewTypeSymbol returns an empty type symbol.
func NewTypeSymbol() *TypeSymbol {
	return &TypeSymbol{}
}

// Set assigns the symbol's type. Panics if already set, since a type
// symbol is a one-shot cell by design (§9 of the design notes).
func (s *TypeSymbol) Set(t types.Type) {
	if s.set {
		panic("scope: type symbol already set")
	}
	s.typ = t
	s.set = true
}

// Type returns the symbol's type. Panics if the symbol has not been set
// yet; callers are expected to generate equations (and thus fill every
// symbol) before ever reading one.
func (s *TypeSymbol) Type() types.Type {
	if !s.set {
		panic("scope: accessing type symbol with no type")
	}
	return s.typ
}

// Scope is a chain of (parent, table) frames, mapping identifier name to
// its TypeSymbol. Every name has exactly one owner: the innermost frame
// that declared it.
type Scope struct {
	parent  *Scope
	symbols map[string]*TypeSymbol
}

// New creates a root scope with no parent.
func New() *Scope {
	return &Scope{symbols: make(map[string]*TypeSymbol)}
}

// NewChild creates a scope nested inside this one.
func (s *Scope) NewChild() *Scope {
	return &Scope{parent: s, symbols: make(map[string]*TypeSymbol)}
}

// Create inserts id into the current frame only, with a fresh empty type
// symbol. Fails if id already exists in this frame (shadowing a parent's
// binding is fine; redeclaring in the same frame is not).
func (s *Scope) Create(id string) (*TypeSymbol, error) {
	if _, exists := s.symbols[id]; exists {
		return nil, fmt.Errorf("scope: identifier %q already exists in scope", id)
	}
	sym := NewTypeSymbol()
	s.symbols[id] = sym
	return sym, nil
}

// Bind inserts id into the current frame pointing at the given symbol,
// rather than minting a fresh one. Used when the caller's AST node
// already owns the symbol (Let's bound variable, Fn's parameters) and
// the scope only needs the name association. Fails if id already
// exists in this frame.
func (s *Scope) Bind(id string, sym *TypeSymbol) error {
	if _, exists := s.symbols[id]; exists {
		return fmt.Errorf("scope: identifier %q already exists in scope", id)
	}
	s.symbols[id] = sym
	return nil
}

// Rebind replaces id's entry in the current frame with sym, overwriting
// whatever was there. Unlike Bind/Create it never fails on a pre-existing
// id: it exists for the one case where that is exactly the point — the
// inference driver mints a definition's symbol before solving (so
// typeeqs has something to equate against), then republishes the
// definition's name against its solved type for later definitions to
// look up.
func (s *Scope) Rebind(id string, sym *TypeSymbol) {
	s.symbols[id] = sym
}

// Lookup searches the current frame, then its parents, for id.
func (s *Scope) Lookup(id string) (*TypeSymbol, error) {
	if sym, ok := s.symbols[id]; ok {
		return sym, nil
	}
	if s.parent != nil {
		return s.parent.Lookup(id)
	}
	return nil, fmt.Errorf("scope: identifier %q not found", id)
}
