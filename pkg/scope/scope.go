// Package scope tracks how each identifier spelling is classified while a
// C translation unit is parsed: as a typedef name, an enumeration
// constant, or an ordinary identifier.
package scope

import "fmt"

// SymbolKind classifies an identifier spelling.
type SymbolKind int

const (
	// Identifier is an ordinary identifier. Unbound names classify as
	// Identifier.
	Identifier SymbolKind = iota
	// TypedefName is a name introduced by a typedef declaration.
	TypedefName
	// EnumConstant is an enumeration constant.
	EnumConstant
)

var kindNames = map[SymbolKind]string{
	Identifier:   "identifier",
	TypedefName:  "typedef name",
	EnumConstant: "enumeration constant",
}

func (k SymbolKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Scope is one frame of bindings. Names are kept in declaration order so
// that merging a frame is deterministic.
type Scope struct {
	parent *Scope
	kinds  map[string]SymbolKind
	order  []string
}

func newScope(parent *Scope) *Scope {
	return &Scope{parent: parent, kinds: make(map[string]SymbolKind)}
}

// Parent returns the enclosing frame, or nil for the file scope or a
// detached frame.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Lookup finds name in this frame only.
func (s *Scope) Lookup(name string) (SymbolKind, bool) {
	k, ok := s.kinds[name]
	return k, ok
}

// Names returns the names bound in this frame in declaration order.
func (s *Scope) Names() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of bindings in this frame.
func (s *Scope) Len() int {
	return len(s.order)
}

func (s *Scope) bind(name string, kind SymbolKind) error {
	if existing, ok := s.kinds[name]; ok {
		if existing != kind {
			return &ConflictError{Name: name, Existing: existing, Requested: kind}
		}
		return nil
	}
	s.kinds[name] = kind
	s.order = append(s.order, name)
	return nil
}

// ConflictError reports a redeclaration of a name with a different
// classification within the same frame.
type ConflictError struct {
	Name      string
	Existing  SymbolKind
	Requested SymbolKind
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%q redeclared as %s, previously declared as %s in the same scope",
		e.Name, e.Requested, e.Existing)
}

// Stack is the chain of frames visible at the current parse position. The
// bottom frame is the file scope and is never popped.
type Stack struct {
	frames []*Scope
	pushes int
	pops   int
}

// NewStack returns a stack holding only the file scope.
func NewStack() *Stack {
	return &Stack{frames: []*Scope{newScope(nil)}}
}

// Push enters a new empty frame and returns it.
func (st *Stack) Push() *Scope {
	s := newScope(st.Top())
	st.frames = append(st.frames, s)
	st.pushes++
	return s
}

// PushFrame re-enters a frame captured earlier by Push and Pop, such as the
// parameter frame of a function declarator entered again for its body.
func (st *Stack) PushFrame(s *Scope) {
	s.parent = st.Top()
	st.frames = append(st.frames, s)
	st.pushes++
}

// Pop leaves the innermost frame and returns it, detached. Popping the
// file scope is a programming error and panics.
func (st *Stack) Pop() *Scope {
	if len(st.frames) <= 1 {
		panic("scope: pop of file scope")
	}
	top := st.frames[len(st.frames)-1]
	st.frames = st.frames[:len(st.frames)-1]
	top.parent = nil
	st.pops++
	return top
}

// Depth returns the number of frames, counting the file scope.
func (st *Stack) Depth() int {
	return len(st.frames)
}

// Top returns the innermost frame.
func (st *Stack) Top() *Scope {
	return st.frames[len(st.frames)-1]
}

// File returns the file scope.
func (st *Stack) File() *Scope {
	return st.frames[0]
}

// Lookup returns the nearest binding of name.
func (st *Stack) Lookup(name string) (SymbolKind, bool) {
	for i := len(st.frames) - 1; i >= 0; i-- {
		if k, ok := st.frames[i].kinds[name]; ok {
			return k, true
		}
	}
	return Identifier, false
}

// Classify returns the nearest binding of name, or Identifier when the
// name is unbound.
func (st *Stack) Classify(name string) SymbolKind {
	k, _ := st.Lookup(name)
	return k
}

// IsTypedefName reports whether name currently denotes a type.
func (st *Stack) IsTypedefName(name string) bool {
	return st.Classify(name) == TypedefName
}

// Declare binds name in the innermost frame, shadowing outer bindings.
// Redeclaring with the same kind is a no-op; with a different kind it
// returns a *ConflictError.
func (st *Stack) Declare(name string, kind SymbolKind) error {
	return st.Top().bind(name, kind)
}

// Merge declares every binding of a detached frame into the innermost
// frame, in the detached frame's declaration order.
func (st *Stack) Merge(s *Scope) error {
	for _, name := range s.order {
		if err := st.Declare(name, s.kinds[name]); err != nil {
			return err
		}
	}
	return nil
}

// Pushes returns how many frames have been pushed.
func (st *Stack) Pushes() int {
	return st.pushes
}

// Pops returns how many frames have been popped.
func (st *Stack) Pops() int {
	return st.pops
}
