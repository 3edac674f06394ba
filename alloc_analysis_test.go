package pyzc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func nameExpr(v string) *Name { return NewName(Range{}, v) }

func callStmt(fn string) Stmt {
	return &Return{baseNode: baseNode{}, Value: NewCall(Range{}, nameExpr(fn), nil, nil)}
}

func TestAnalyzeAllocatorNeedDirectTrigger(t *testing.T) {
	funcs := map[string][]Stmt{
		"make_list": {&Return{Value: &ListExpr{}}},
		"pure_math": {&Return{Value: NewBinOp(Range{}, OpAdd, nameExpr("a"), nameExpr("b"))}},
	}
	res := AnalyzeAllocatorNeed(funcs)
	assert.True(t, res.NeedsAllocator("make_list"))
	assert.False(t, res.NeedsAllocator("pure_math"))
}

func TestAnalyzeAllocatorNeedPropagatesTransitively(t *testing.T) {
	funcs := map[string][]Stmt{
		"make_list": {&Return{Value: &ListExpr{}}},
		"wraps_it":  {callStmt("make_list")},
		"unrelated": {&Return{Value: NewConstant(Range{}, ConstInt)}},
	}
	res := AnalyzeAllocatorNeed(funcs)
	assert.True(t, res.NeedsAllocator("wraps_it"))
	assert.False(t, res.NeedsAllocator("unrelated"))
}

func TestAnalyzeAllocatorNeedHandlesRecursionWithoutInfiniteLoop(t *testing.T) {
	funcs := map[string][]Stmt{
		"recurse": {callStmt("recurse")},
	}
	res := AnalyzeAllocatorNeed(funcs)
	assert.False(t, res.NeedsAllocator("recurse"))
}

func TestAnalyzeAllocatorNeedMutualRecursionConvergesWhenOneAllocates(t *testing.T) {
	funcs := map[string][]Stmt{
		"a": {callStmt("b")},
		"b": {&Return{Value: &DictExpr{}}, callStmt("a")},
	}
	res := AnalyzeAllocatorNeed(funcs)
	assert.True(t, res.NeedsAllocator("a"))
	assert.True(t, res.NeedsAllocator("b"))
}
