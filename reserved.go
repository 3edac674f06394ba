package pyzc

// zigReservedWords is the fixed keyword set the emitter must never emit
// as a bare identifier (spec.md Sec 4's reserved-word escaping rule).
// Pyza programs are free to use any of these as variable/function/class
// names; the emitter escapes a collision by appending an underscore,
// mirroring the teacher's own per-target reserved-word tables in
// gen_go.go/gen_javascript.go (each target keeps its own closed keyword
// set rather than sharing one).
var zigReservedWords = map[string]bool{
	"align": true, "allowzero": true, "and": true, "anyframe": true, "anytype": true,
	"asm": true, "async": true, "await": true, "break": true, "callconv": true,
	"catch": true, "comptime": true, "const": true, "continue": true, "defer": true,
	"else": true, "enum": true, "errdefer": true, "error": true, "export": true,
	"extern": true, "fn": true, "for": true, "if": true, "inline": true,
	"noalias": true, "noinline": true, "nosuspend": true, "opaque": true, "or": true,
	"orelse": true, "packed": true, "pub": true, "resume": true, "return": true,
	"linksection": true, "struct": true, "suspend": true, "switch": true, "test": true,
	"threadlocal": true, "try": true, "union": true, "unreachable": true, "usingnamespace": true,
	"var": true, "volatile": true, "while": true,
	"true": true, "false": true, "null": true, "undefined": true,
}

// EscapeIdent returns name unchanged unless it collides with a Zig
// keyword, in which case it is suffixed with an underscore -- Zig's own
// `@"..."` quoting would also work, but a suffix keeps generated
// identifiers greppable and matches how the teacher's gen_go.go escapes
// Go keyword collisions.
func EscapeIdent(name string) string {
	if zigReservedWords[name] {
		return name + "_"
	}
	return name
}
