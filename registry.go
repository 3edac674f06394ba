package pyzc

import "github.com/bits-and-blooms/bitset"

// ClassField is one entry in a class's ordered field table (spec.md
// Sec 3.2).
type ClassField struct {
	Name string
	Type T
}

// MethodSignature is a class method's entry in the per-class method table.
type MethodSignature struct {
	Sig        *FuncSignature
	Decorator  MethodDecorator
	Allocates  bool
}

// ClassInfo is the per-class metadata spec.md Sec 3.2 requires: an ordered
// field table, a method table, an optional base, and the stable __init__
// parameter order used at instantiation sites (spec.md Sec 4.10).
type ClassInfo struct {
	Name          string
	Base          string // "" when there is no base class
	Fields        []ClassField
	Methods       map[string]*MethodSignature
	InitParamOrder []string
}

// ClassRegistry implements spec.md Sec 4.2's class registry operations.
// Inheritance is modelled as struct composition: FlattenedFields and
// FindMethod walk the base chain rather than the target language
// expressing any virtual dispatch (spec.md Sec 9).
type ClassRegistry struct {
	classes map[string]*ClassInfo
}

func NewClassRegistry() *ClassRegistry {
	return &ClassRegistry{classes: map[string]*ClassInfo{}}
}

// RegisterClass records a class declaration. Re-registering a name
// overwrites the previous entry -- the pre-pass runs exactly once per
// class declaration encountered in source order.
func (r *ClassRegistry) RegisterClass(name, base string, fields []ClassField, methods map[string]*MethodSignature) {
	r.classes[name] = &ClassInfo{
		Name:    name,
		Base:    base,
		Fields:  fields,
		Methods: methods,
	}
}

func (r *ClassRegistry) Lookup(name string) (*ClassInfo, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// FindMethod resolves a method name up the base chain, the way a child
// struct's un-overridden methods are regenerated from the parent in
// flattened-inheritance emission (spec.md Sec 9).
func (r *ClassRegistry) FindMethod(class, name string) (*MethodSignature, string, bool) {
	for cur := class; cur != ""; {
		c, ok := r.classes[cur]
		if !ok {
			return nil, "", false
		}
		if m, ok := c.Methods[name]; ok {
			return m, cur, true
		}
		cur = c.Base
	}
	return nil, "", false
}

func (r *ClassRegistry) HasMethod(class, name string) bool {
	_, _, ok := r.FindMethod(class, name)
	return ok
}

// GetField resolves a field's type up the base chain (spec.md Sec 4.2).
func (r *ClassRegistry) GetField(class, name string) (T, bool) {
	for cur := class; cur != ""; {
		c, ok := r.classes[cur]
		if !ok {
			return nil, false
		}
		for _, f := range c.Fields {
			if f.Name == name {
				return f.Type, true
			}
		}
		cur = c.Base
	}
	return nil, false
}

// FlattenedFields returns the full field list a child struct must
// duplicate from its base chain, base-most first, the way spec.md Sec 4.2
// describes struct-composition inheritance.
func (r *ClassRegistry) FlattenedFields(class string) []ClassField {
	var chain []string
	for cur := class; cur != ""; {
		c, ok := r.classes[cur]
		if !ok {
			break
		}
		chain = append([]string{cur}, chain...)
		cur = c.Base
	}
	var out []ClassField
	seen := map[string]bool{}
	for _, name := range chain {
		for _, f := range r.classes[name].Fields {
			if !seen[f.Name] {
				seen[f.Name] = true
				out = append(out, f)
			}
		}
	}
	return out
}

// FuncSignature is spec.md Sec 3.3's function signature record.
type FuncSignature struct {
	Name             string
	ParamNames       []string
	TotalParams      int
	RequiredParams   int
	NeedsAllocator   bool
	IsAsync          bool
	IsVararg         bool
	IsKwarg          bool
	ReturnType       T
}

// SignatureTable is keyed by name, or "Class.method" for methods (spec.md
// Sec 3.3), and is populated during the AST pre-pass alongside allocator
// need (spec.md Sec 4.3).
type SignatureTable struct {
	sigs map[string]*FuncSignature
}

func NewSignatureTable() *SignatureTable {
	return &SignatureTable{sigs: map[string]*FuncSignature{}}
}

func (t *SignatureTable) Register(sig *FuncSignature) { t.sigs[sig.Name] = sig }

func (t *SignatureTable) Lookup(name string) (*FuncSignature, bool) {
	s, ok := t.sigs[name]
	return s, ok
}

// ImportBinding is one entry of the import registry (spec.md Sec 3.4):
// `(module, function)` mapped to how the emitter must call into the
// runtime library or target-native equivalent.
type ImportBinding struct {
	Module           string
	Function         string
	RuntimeName      string
	ArgConversions   []string // conversion hint per positional argument, e.g. "toFloat"
	ReturnConversion string
	NeedsAllocator   bool
	ReturnsError     bool
}

// ImportRegistry is the closed table backing the Module Dispatch Registry
// (spec.md component E / Sec 3.4). See dispatch_registry.go for the
// concrete bindings it is seeded with.
type ImportRegistry struct {
	bindings map[string]map[string]*ImportBinding
}

func NewImportRegistry() *ImportRegistry {
	return &ImportRegistry{bindings: map[string]map[string]*ImportBinding{}}
}

func (r *ImportRegistry) Register(b *ImportBinding) {
	if r.bindings[b.Module] == nil {
		r.bindings[b.Module] = map[string]*ImportBinding{}
	}
	r.bindings[b.Module][b.Function] = b
}

func (r *ImportRegistry) Lookup(module, function string) (*ImportBinding, bool) {
	fns, ok := r.bindings[module]
	if !ok {
		return nil, false
	}
	b, ok := fns[function]
	return b, ok
}

// VarClass enumerates the special-codegen classifications spec.md Sec 4.2
// tracks per function scope.
type VarClass int

const (
	VarArraylist VarClass = iota
	VarArraySlice
	VarClosure
	VarLambda
	VarAsyncFunction
	VarVarargFunction
	VarKwargFunction
	VarImportedModule
	VarFromImportNeedsAllocator
	VarNestedClassName
	varClassCount
)

// ScopeClassification tracks, for a single function scope, which variable
// names fall into each VarClass. Names are interned to a dense per-scope
// slot index so each classification set can be a bitset.BitSet rather than
// a map[string]struct{} -- spec.md Sec 4.2 only requires "separate hash
// sets"; a bitset is a sufficient concrete representation once names are
// slot-numbered, and it is how bits-and-blooms/bitset earns a place in this
// module (see DESIGN.md).
type ScopeClassification struct {
	slots map[string]uint
	names []string
	sets  [varClassCount]*bitset.BitSet
}

func NewScopeClassification() *ScopeClassification {
	sc := &ScopeClassification{slots: map[string]uint{}}
	for i := range sc.sets {
		sc.sets[i] = bitset.New(64)
	}
	return sc
}

func (sc *ScopeClassification) slot(name string) uint {
	if i, ok := sc.slots[name]; ok {
		return i
	}
	i := uint(len(sc.names))
	sc.slots[name] = i
	sc.names = append(sc.names, name)
	return i
}

func (sc *ScopeClassification) Mark(name string, class VarClass) {
	sc.sets[class].Set(sc.slot(name))
}

func (sc *ScopeClassification) Is(name string, class VarClass) bool {
	i, ok := sc.slots[name]
	if !ok {
		return false
	}
	return sc.sets[class].Test(i)
}

// Registries bundles the four tables component B maintains, matching
// spec.md Sec 5's "mutated only during the initial pre-pass and during
// emission of the function that owns them" resource rule: each function's
// ScopeClassification is looked up by name and owned exclusively by that
// function's emission.
type Registries struct {
	Classes    *ClassRegistry
	Funcs      *SignatureTable
	Imports    *ImportRegistry
	FuncScopes map[string]*ScopeClassification
}

func NewRegistries() *Registries {
	return &Registries{
		Classes:    NewClassRegistry(),
		Funcs:      NewSignatureTable(),
		Imports:    NewImportRegistry(),
		FuncScopes: map[string]*ScopeClassification{},
	}
}

func (r *Registries) ScopeFor(funcName string) *ScopeClassification {
	sc, ok := r.FuncScopes[funcName]
	if !ok {
		sc = NewScopeClassification()
		r.FuncScopes[funcName] = sc
	}
	return sc
}
