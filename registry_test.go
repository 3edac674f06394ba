package pyzc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassRegistryFlattenedFieldsWalksBaseChain(t *testing.T) {
	r := NewClassRegistry()
	r.RegisterClass("Animal", "", []ClassField{{Name: "name", Type: NewTString(StringRuntime)}}, map[string]*MethodSignature{})
	r.RegisterClass("Dog", "Animal", []ClassField{{Name: "breed", Type: NewTString(StringRuntime)}}, map[string]*MethodSignature{})

	fields := r.FlattenedFields("Dog")
	require.Len(t, fields, 2)
	assert.Equal(t, "name", fields[0].Name)
	assert.Equal(t, "breed", fields[1].Name)
}

func TestClassRegistryFindMethodWalksBaseChain(t *testing.T) {
	r := NewClassRegistry()
	r.RegisterClass("Animal", "", nil, map[string]*MethodSignature{
		"speak": {Sig: &FuncSignature{Name: "Animal.speak"}},
	})
	r.RegisterClass("Dog", "Animal", nil, map[string]*MethodSignature{})

	m, owner, ok := r.FindMethod("Dog", "speak")
	require.True(t, ok)
	assert.Equal(t, "Animal", owner)
	assert.Equal(t, "Animal.speak", m.Sig.Name)
}

func TestClassRegistryFindMethodMissing(t *testing.T) {
	r := NewClassRegistry()
	r.RegisterClass("Dog", "", nil, map[string]*MethodSignature{})
	assert.False(t, r.HasMethod("Dog", "speak"))
	assert.False(t, r.HasMethod("Cat", "speak"))
}

func TestGetFieldWalksBaseChain(t *testing.T) {
	r := NewClassRegistry()
	r.RegisterClass("Animal", "", []ClassField{{Name: "name", Type: TInt}}, nil)
	r.RegisterClass("Dog", "Animal", nil, nil)

	typ, ok := r.GetField("Dog", "name")
	require.True(t, ok)
	assert.Equal(t, TInt, typ)

	_, ok = r.GetField("Dog", "nonexistent")
	assert.False(t, ok)
}

func TestImportRegistryLookup(t *testing.T) {
	r := NewImportRegistry()
	r.Register(&ImportBinding{Module: "math", Function: "sqrt", RuntimeName: "@sqrt"})

	b, ok := r.Lookup("math", "sqrt")
	require.True(t, ok)
	assert.Equal(t, "@sqrt", b.RuntimeName)

	_, ok = r.Lookup("math", "unknown")
	assert.False(t, ok)
	_, ok = r.Lookup("unknown", "sqrt")
	assert.False(t, ok)
}

func TestScopeClassificationMarkAndIs(t *testing.T) {
	sc := NewScopeClassification()
	sc.Mark("items", VarArraylist)
	sc.Mark("cb", VarClosure)

	assert.True(t, sc.Is("items", VarArraylist))
	assert.False(t, sc.Is("items", VarClosure))
	assert.True(t, sc.Is("cb", VarClosure))
	assert.False(t, sc.Is("unseen", VarArraylist))
}

func TestRegistriesScopeForCreatesOncePerFunction(t *testing.T) {
	r := NewRegistries()
	a := r.ScopeFor("foo")
	a.Mark("x", VarLambda)
	b := r.ScopeFor("foo")
	assert.True(t, b.Is("x", VarLambda))

	c := r.ScopeFor("bar")
	assert.False(t, c.Is("x", VarLambda))
}
