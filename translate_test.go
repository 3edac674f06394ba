package pyzc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateEmitsPlainFunction(t *testing.T) {
	prog := &Program{
		Functions: []*FunctionDef{
			{
				Name: "add_one",
				Params: []Param{{Name: "x"}},
				Body: []Stmt{
					&Return{Value: NewBinOp(Range{}, OpAdd, nameExpr("x"), NewConstant(Range{}, ConstInt))},
				},
			},
		},
	}
	res, err := Translate(prog, NewConfig(), nil)
	require.NoError(t, err)
	assert.Contains(t, res.ZigSource, "pub fn add_one(x) !void {")
	assert.False(t, res.AllocNeed.NeedsAllocator("add_one"))
}

func TestTranslateThreadsAllocatorWhenFunctionBuildsAList(t *testing.T) {
	prog := &Program{
		Functions: []*FunctionDef{
			{
				Name: "make_list",
				Body: []Stmt{
					&Return{Value: &ListExpr{Elts: []Expr{NewConstant(Range{}, ConstInt)}}},
				},
			},
		},
	}
	res, err := Translate(prog, NewConfig(), nil)
	require.NoError(t, err)
	assert.True(t, res.AllocNeed.NeedsAllocator("make_list"))
	assert.True(t, strings.Contains(res.ZigSource, "allocator: std.mem.Allocator"))
}

func TestTranslateEmitsClassAsStruct(t *testing.T) {
	prog := &Program{
		Classes: []*ClassDef{
			{
				Name: "Point",
				Body: []Stmt{
					&Assign{Targets: []Expr{nameExpr("x")}, Value: NewConstant(Range{}, ConstInt)},
					&Assign{Targets: []Expr{nameExpr("y")}, Value: NewConstant(Range{}, ConstInt)},
				},
			},
		},
	}
	res, err := Translate(prog, NewConfig(), nil)
	require.NoError(t, err)
	assert.Contains(t, res.ZigSource, "pub const Point = struct {")
	assert.Contains(t, res.ZigSource, "x:")
	assert.Contains(t, res.ZigSource, "y:")
}

func TestTranslateRejectsNonConstantTupleSubscript(t *testing.T) {
	prog := &Program{
		Functions: []*FunctionDef{
			{
				Name: "bad",
				Body: []Stmt{
					&Return{Value: &Subscript{
						Value: &TupleExpr{Elts: []Expr{NewConstant(Range{}, ConstInt)}},
						Slice: SubscriptSlice{Index: nameExpr("i")},
					}},
				},
			},
		},
	}
	_, err := Translate(prog, NewConfig(), nil)
	require.Error(t, err)
	assert.True(t, isTranslationError(err))
}
