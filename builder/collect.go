package builder

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"

	"omibyte.io/veneer/handler"
)

// ParsedDecl pairs a handler declaration with the source that produced
// it, so later stages can resolve imports and report positions.
type ParsedDecl struct {
	Decl *handler.Declaration
	Pkg  *packages.Package
	File *ast.File
	Func *ast.FuncDecl
}

// kind pragmas select which contract a declaration is parsed under.
var kindPragmas = map[string]bool{
	handler.PragmaEntry:     true,
	handler.PragmaPreInit:   true,
	handler.PragmaException: true,
	handler.PragmaInterrupt: true,
}

// param pragmas name the parameter they apply to as their first
// argument. The name is stripped before the attribute reaches the
// declaration model.
var paramPragmas = map[string]bool{
	handler.PragmaInit:  true,
	handler.PragmaIRQn:  true,
	handler.PragmaFrame: true,
	handler.PragmaCfg:   true,
}

// CollectDeclarations scans every ordered package for annotated
// functions and parses each into a handler declaration. Declarations
// come back in package dependency order, source order within a package.
func (p *Program) CollectDeclarations() ([]*ParsedDecl, error) {
	var decls []*ParsedDecl
	var errs error

	for _, pkg := range p.OrderedPackages {
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				fd, ok := decl.(*ast.FuncDecl)
				if ok && hasKindPragma(fd) {
					parsed, err := p.parseFuncDecl(pkg, file, fd)
					if err != nil {
						errs = errors.Join(errs, err)
						continue
					}
					decls = append(decls, parsed)
				}
			}
		}
	}

	return decls, errs
}

func hasKindPragma(fd *ast.FuncDecl) bool {
	if fd.Doc == nil {
		return false
	}
	for _, comment := range fd.Doc.List {
		name, _ := splitPragma(comment)
		if kindPragmas[name] {
			return true
		}
	}
	return false
}

// splitPragma splits a pragma comment into its name and argument
// tokens. Ordinary doc text returns an empty name.
func splitPragma(comment *ast.Comment) (string, []string) {
	text := comment.Text
	if !strings.HasPrefix(text, "//") || strings.HasPrefix(text, "// ") {
		return "", nil
	}
	parts := strings.Fields(text[2:])
	if len(parts) == 0 {
		return "", nil
	}
	name := parts[0]
	if strings.HasPrefix(name, "veneer:") || strings.HasPrefix(name, "go:") || strings.HasPrefix(name, "nolint") {
		return name, parts[1:]
	}
	return "", nil
}

func (p *Program) parseFuncDecl(pkg *packages.Package, file *ast.File, fd *ast.FuncDecl) (*ParsedDecl, error) {
	fn := &handler.Fn{
		Name:     fd.Name.Name,
		Receiver: fd.Recv != nil,
		Generic:  fd.Type.TypeParams != nil,
		Pos:      fd.Pos(),
	}

	// Build the parameter list first so param pragmas can be attached by
	// name.
	paramIndex := map[string]int{}
	if fd.Type.Params != nil {
		for _, field := range fd.Type.Params.List {
			T := field.Type
			if _, ok := T.(*ast.Ellipsis); ok {
				fn.Variadic = true
			}
			if len(field.Names) == 0 {
				fn.Params = append(fn.Params, handler.FnParam{
					Type: p.typeRef(T),
					Pos:  field.Pos(),
				})
				continue
			}
			for _, name := range field.Names {
				paramIndex[name.Name] = len(fn.Params)
				fn.Params = append(fn.Params, handler.FnParam{
					Name: name.Name,
					Type: p.typeRef(T),
					Pos:  name.Pos(),
				})
			}
		}
	}

	if fd.Type.Results != nil && len(fd.Type.Results.List) > 0 {
		fn.Return = handler.ReturnOther
	}

	// Sort the doc comments into the kind pragma, function attributes,
	// parameter attributes, and plain documentation.
	var kind handler.Pragma
	var noReturn bool
	for _, comment := range fd.Doc.List {
		name, args := splitPragma(comment)
		attr := handler.Pragma{Name: name, Args: args, Pos: comment.Pos()}

		switch {
		case name == "":
			fn.Doc = append(fn.Doc, docText(comment))
		case kindPragmas[name]:
			if kind.Name != "" {
				return nil, fmt.Errorf("%w: %s and %s on `%s`\n%s",
					ErrConflictingPragmas, kind.Name, name, fn.Name, handler.Excerpt(p.FileSet, comment.Pos()))
			}
			kind = attr
		case name == handler.PragmaNoReturn:
			noReturn = true
		case paramPragmas[name] || name == "veneer:static":
			if len(args) == 0 {
				return nil, fmt.Errorf("%w: %s must name a parameter\n%s",
					ErrUnknownParameter, name, handler.Excerpt(p.FileSet, comment.Pos()))
			}
			i, ok := paramIndex[args[0]]
			if !ok {
				return nil, fmt.Errorf("%w: `%s` has no parameter `%s`\n%s",
					ErrUnknownParameter, fn.Name, args[0], handler.Excerpt(p.FileSet, comment.Pos()))
			}
			if name == "veneer:static" {
				fn.Params[i].Type.Static = true
				continue
			}
			attr.Args = args[1:]
			fn.Params[i].Attrs = append(fn.Params[i].Attrs, attr)
		default:
			fn.Attrs = append(fn.Attrs, attr)
		}
	}

	if noReturn && fn.Return == handler.ReturnVoid {
		fn.Return = handler.ReturnNever
	}

	// The exception frame is read-only as far as the contract is
	// concerned; a pointer parameter in the frame role models a shared
	// reference to the stacked registers.
	for i := range fn.Params {
		for _, attr := range fn.Params[i].Attrs {
			if attr.Name == handler.PragmaFrame && fn.Params[i].Type.Ref == handler.RefMut {
				fn.Params[i].Type.Ref = handler.RefShared
			}
		}
	}

	var d *handler.Declaration
	var err error
	switch kind.Name {
	case handler.PragmaEntry:
		d, err = handler.ParseEntry(kind, fn)
	case handler.PragmaPreInit:
		d, err = handler.ParsePreInit(kind, fn)
	case handler.PragmaException:
		d, err = handler.ParseException(kind, fn)
	case handler.PragmaInterrupt:
		d, err = handler.ParseInterrupt(kind, fn)
	}
	if err != nil {
		var diag *handler.Diagnostic
		if errors.As(err, &diag) && diag.Pos.IsValid() {
			return nil, fmt.Errorf("%w\n%s", err, handler.Excerpt(p.FileSet, diag.Pos))
		}
		return nil, err
	}

	return &ParsedDecl{Decl: d, Pkg: pkg, File: file, Func: fd}, nil
}

func (p *Program) typeRef(expr ast.Expr) handler.TypeRef {
	ref := handler.RefNone
	if star, ok := expr.(*ast.StarExpr); ok {
		ref = handler.RefMut
		expr = star.X
	}
	return handler.TypeRef{
		Ref:  ref,
		Name: p.exprString(expr),
	}
}

func (p *Program) exprString(expr ast.Expr) string {
	var buf bytes.Buffer
	printer.Fprint(&buf, p.FileSet, expr)
	return buf.String()
}

func docText(comment *ast.Comment) string {
	return strings.TrimPrefix(strings.TrimPrefix(comment.Text, "//"), " ")
}

// Position renders a token position against the program fileset.
func (p *Program) Position(pos token.Pos) string {
	return p.FileSet.Position(pos).String()
}
