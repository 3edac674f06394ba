package pyzc

import "github.com/pyzc/pyzc/pkg/runtimeapi"

// NewStdlibDispatchRegistry returns the closed Module Dispatch Registry
// (spec.md Sec 3.4/4, component E): the fixed table of
// `(stdlib_module, function)` pairs this compiler recognizes and knows
// how to lower to a runtime-library call. The table is closed: Lookup
// reports false for any pair not listed here, grounded on the teacher's
// closed grammar-production tables. A call through an unlisted pair is
// not rejected; emitCall emits it as an ordinary method call on the
// receiver.
func NewStdlibDispatchRegistry() *ImportRegistry {
	r := NewImportRegistry()

	r.Register(&ImportBinding{
		Module: "math", Function: "sqrt",
		RuntimeName: "@sqrt", ArgConversions: []string{"toFloat"}, ReturnConversion: "float",
	})
	r.Register(&ImportBinding{
		Module: "math", Function: "floor",
		RuntimeName: "@floor", ArgConversions: []string{"toFloat"}, ReturnConversion: "float",
	})
	r.Register(&ImportBinding{
		Module: "math", Function: "pow",
		RuntimeName: runtimeapi.BigIntPow, ArgConversions: []string{"toFloat", "toFloat"}, ReturnConversion: "float", ReturnsError: true,
	})

	r.Register(&ImportBinding{
		Module: "numpy", Function: "array",
		RuntimeName: runtimeapi.ArrayExtractArray, ArgConversions: []string{"toList"}, ReturnConversion: "numpy_array", NeedsAllocator: true, ReturnsError: true,
	})
	r.Register(&ImportBinding{
		Module: "numpy", Function: "matmul",
		RuntimeName: runtimeapi.ArrayMatmul, ArgConversions: []string{"identity", "identity"}, ReturnConversion: "numpy_array", NeedsAllocator: true, ReturnsError: true,
	})
	r.Register(&ImportBinding{
		Module: "numpy", Function: "transpose",
		RuntimeName: runtimeapi.ArrayTranspose, ArgConversions: []string{"identity"}, ReturnConversion: "numpy_array", NeedsAllocator: true, ReturnsError: true,
	})

	r.Register(&ImportBinding{
		Module: "unittest", Function: "assertEqual",
		RuntimeName: runtimeapi.UnittestAssertEqual, ArgConversions: []string{"identity", "identity"}, ReturnConversion: "none",
	})
	r.Register(&ImportBinding{
		Module: "unittest", Function: "assertTrue",
		RuntimeName: runtimeapi.UnittestAssertTrue, ArgConversions: []string{"toBool"}, ReturnConversion: "none",
	})
	r.Register(&ImportBinding{
		Module: "unittest", Function: "assertFalse",
		RuntimeName: runtimeapi.UnittestAssertFalse, ArgConversions: []string{"toBool"}, ReturnConversion: "none",
	})
	r.Register(&ImportBinding{
		Module: "unittest", Function: "assertRaises",
		RuntimeName: runtimeapi.UnittestAssertRaises, ArgConversions: []string{"identity"}, ReturnConversion: "none",
	})

	r.Register(&ImportBinding{
		Module: "pathlib", Function: "Path",
		RuntimeName: "Path.init", ArgConversions: []string{"toStringRuntime"}, ReturnConversion: "path", NeedsAllocator: true,
	})

	return r
}
