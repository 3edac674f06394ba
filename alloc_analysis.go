package pyzc

// AllocNeedResult records, for every user-defined function, whether code
// emitted for that function will need to thread an allocator argument
// (spec.md Sec 4.3).
type AllocNeedResult struct {
	Needs map[string]bool
}

// directAllocTrigger reports whether a statement directly requires an
// allocator regardless of what it calls: constructing a List, Dict, Set
// or comprehension, or calling str(). Class instantiation and string
// concatenation are not detected here.
func directAllocTrigger(body []Stmt) bool {
	triggers := false
	for _, s := range body {
		Inspect(s, func(n Node) bool {
			switch n.(type) {
			case *ListExpr, *DictExpr, *SetExpr, *Comp:
				triggers = true
			}
			if call, ok := n.(*Call); ok {
				if name, ok := call.Func.(*Name); ok && name.Value == "str" {
					// Every str() call counts as a direct trigger, whatever
					// its argument: a conservative superset of the calls
					// that actually heap-allocate.
					triggers = true
				}
			}
			return true
		})
		if triggers {
			return true
		}
	}
	return false
}

// AnalyzeAllocatorNeed computes the allocator-need set over every
// function in funcs by least-fixed-point iteration over the call graph
// (spec.md Sec 4.3): a function needs an allocator if it directly
// allocates, or if it calls (directly or transitively) a function that
// does. Recursive cycles are handled by assuming the current candidate
// answer for the callee and re-iterating until the set stops growing --
// the same fixed-point discipline query_analysis.go's call-graph pass
// in the teacher repo uses for its own closure computations, adapted
// here from "does this rule apply" to "does this function allocate".
func AnalyzeAllocatorNeed(funcs map[string][]Stmt) *AllocNeedResult {
	needs := map[string]bool{}
	calls := map[string]map[string]bool{}

	for name, body := range funcs {
		needs[name] = directAllocTrigger(body)
		calls[name] = CollectCalledNames(body)
	}

	for changed := true; changed; {
		changed = false
		for name := range funcs {
			if needs[name] {
				continue
			}
			for callee := range calls[name] {
				if needs[callee] {
					needs[name] = true
					changed = true
					break
				}
			}
		}
	}

	return &AllocNeedResult{Needs: needs}
}

// NeedsAllocator reports whether fn was determined to need an allocator. Unknown
// names (builtins, runtime calls) default to false -- the dispatch
// registry is the authority on whether a *runtime* call needs one.
func (r *AllocNeedResult) NeedsAllocator(fn string) bool {
	return r.Needs[fn]
}
