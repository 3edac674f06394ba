package pyzc

import "github.com/sirupsen/logrus"

// Program is the parsed input this package translates: a flat module
// body of top-level class and function definitions (spec.md Sec 1 --
// the parser is an external collaborator that hands this structure
// over already split by top-level statement kind).
type Program struct {
	Classes   []*ClassDef
	Functions []*FunctionDef
}

// Result is what Translate returns on success: the generated Zig
// source text plus the registries built along the way, kept around so
// a caller (tests, the CLI's `emit` subcommand) can inspect allocator
// decisions without re-running the pre-pass.
type Result struct {
	ZigSource string
	Registries *Registries
	AllocNeed  *AllocNeedResult
}

// Translate runs the full pipeline spec.md Sec 4/5 describes: build the
// symbol/registry tables from the program's class and function
// declarations, run the allocator-need fixed point over the call graph,
// then walk the AST emitting Zig source. It is this module's single
// entry point, replacing the teacher's own grammar-load-and-run `api.go`.
func Translate(p *Program, cfg *Config, log *logrus.Logger) (*Result, error) {
	if log == nil {
		log = logrus.New()
	}
	regs := NewRegistries()
	regs.Imports = NewStdlibDispatchRegistry()

	for _, c := range p.Classes {
		fields, methods := classMembers(c)
		regs.Classes.RegisterClass(c.Name, firstBase(c.Bases), fields, methods)
	}
	for _, f := range p.Functions {
		regs.Funcs.Register(&FuncSignature{
			Name:       f.Name,
			ParamNames: paramNames(f.Params),
			IsAsync:    f.IsAsync,
		})
	}

	funcBodies := map[string][]Stmt{}
	for _, f := range p.Functions {
		funcBodies[f.Name] = f.Body
	}
	alloc := AnalyzeAllocatorNeed(funcBodies)
	for name, sig := range regs.Funcs.sigs {
		sig.NeedsAllocator = alloc.NeedsAllocator(name)
	}

	if cfg.GetBool("emit.trace_allocator_need") {
		for name, needs := range alloc.Needs {
			log.WithFields(logrus.Fields{"function": name, "needs_allocator": needs}).
				Debug("allocator-need fixed point resolved")
		}
	}

	e := NewEmitter(regs, alloc, cfg)
	if err := e.EmitProgram(p.Classes, p.Functions); err != nil {
		return nil, err
	}

	return &Result{ZigSource: e.Output(), Registries: regs, AllocNeed: alloc}, nil
}

func firstBase(bases []string) string {
	if len(bases) == 0 {
		return ""
	}
	return bases[0]
}

func paramNames(params []Param) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Name
	}
	return out
}

// classMembers splits a ClassDef's body into its ordered field table and
// method table (spec.md Sec 3.2). Field declarations are recognized as
// bare `Assign` statements directly inside the class body (typed-field
// style); assignments inside `__init__` to `self.x` are not tracked here
// since Zig struct layout is decided from the class-body declarations.
func classMembers(c *ClassDef) ([]ClassField, map[string]*MethodSignature) {
	var fields []ClassField
	methods := map[string]*MethodSignature{}
	for _, s := range c.Body {
		switch v := s.(type) {
		case *FunctionDef:
			decorator := MethodPlain
			for _, d := range v.Decorators {
				if name, ok := d.(*Name); ok {
					switch name.Value {
					case "property":
						decorator = MethodProperty
					case "staticmethod":
						decorator = MethodStatic
					case "classmethod":
						decorator = MethodClass
					}
				}
			}
			methods[v.Name] = &MethodSignature{
				Sig: &FuncSignature{
					Name:       c.Name + "." + v.Name,
					ParamNames: paramNames(v.Params),
				},
				Decorator: decorator,
			}
		case *Assign:
			for _, t := range v.Targets {
				if name, ok := t.(*Name); ok {
					fields = append(fields, ClassField{Name: name.Value, Type: TUnknown})
				}
			}
		}
	}
	return fields, methods
}
