package builder

import (
	"context"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/tools/go/packages"

	"omibyte.io/veneer/handler"
	"omibyte.io/veneer/targets"
)

// GeneratedFileName is the per-package output of a generation pass.
const GeneratedFileName = "zz_generated_veneer.go"

type genFile struct {
	pkg     *packages.Package
	imports []string
	blocks  []string
}

// Generate runs one generation pass: load the packages, parse every
// handler declaration, validate the contracts, and write one generated
// file per package that declares handlers.
func Generate(ctx context.Context, options Options) error {
	tags := slices.Clone(options.BuildTags)

	var target targets.TargetInfo
	haveTarget := false
	if len(options.Chip) > 0 {
		t, err := targets.All().FindByChip(options.Chip)
		if err != nil {
			t, err = targets.All().FindBySeries(options.Chip)
		}
		if err != nil {
			return errors.Join(ErrUnknownChip, errors.New(options.Chip))
		}
		target = t
		haveTarget = true
		for _, tag := range t.BuildTags() {
			if !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
		}
	}

	env := options.Environment
	if env == nil {
		env = Environment().List()
	}

	prog := NewProgram(&ProgramConfig{
		Tags:         tags,
		PackagePaths: options.Packages,
		Environment:  env,
	})
	if err := prog.Parse(ctx); err != nil {
		return err
	}

	decls, err := prog.CollectDeclarations()
	if err != nil {
		return err
	}

	files, genErr := generateDeclarations(prog, decls, target, haveTarget, options, tags)
	if genErr != nil {
		return genErr
	}

	for _, file := range files {
		out, asmErr := assembleFile(file, tags)
		if asmErr != nil {
			return asmErr
		}
		if writeErr := writeGenerated(file.pkg, options.Output, out); writeErr != nil {
			return writeErr
		}
	}

	return nil
}

func generateDeclarations(prog *Program, decls []*ParsedDecl, target targets.TargetInfo, haveTarget bool, options Options, tags []string) ([]*genFile, error) {
	policy := handler.Policy{RequireUnsafe: options.RequireUnsafe}
	alloc := &handler.SlotAllocator{}
	emitOpts := handler.EmitOptions{
		BareMetal: options.BareMetal,
		Tags:      tags,
	}

	var files []*genFile
	perPkg := map[*packages.Package]*genFile{}
	entrySeen := false
	var errs error

	for _, pd := range decls {
		if err := handler.ValidatePolicy(pd.Decl, policy); err != nil {
			errs = errors.Join(errs, declError(prog, pd, err))
			continue
		}

		// Slots are numbered in declaration order whether or not the
		// declaration survives the guard evaluation, so numbering does
		// not shift between configurations.
		low := handler.Lower(pd.Decl, alloc)
		gen, err := handler.Emit(pd.Decl, low, emitOpts)
		if err != nil {
			errs = errors.Join(errs, declError(prog, pd, err))
			continue
		}
		if gen.Skip {
			continue
		}

		vector := pd.Decl.Vector()
		info := prog.Symbols.GetSymbolInfo(vector)
		if info.Bound {
			errs = errors.Join(errs, fmt.Errorf("%w: `%s` is already handled by %s (%s)",
				ErrVectorAlreadyBound, vector, info.Handler, prog.Position(info.Pos)))
			continue
		}
		info.Bound = true
		info.Handler = pd.Pkg.PkgPath + "." + pd.Decl.Fn.Name
		info.LinkName = gen.Name
		info.IsInterrupt = pd.Decl.Kind == handler.KindInterrupt
		info.Pos = pd.Decl.Fn.Pos

		if info.IsInterrupt && haveTarget && !target.HasInterrupt(vector) {
			errs = errors.Join(errs, fmt.Errorf("%w: `%s` does not exist on %s (%s)",
				ErrUnknownInterrupt, vector, target.Series, prog.Position(pd.Decl.Fn.Pos)))
			continue
		}
		if pd.Decl.Kind == handler.KindEntry {
			entrySeen = true
		}

		file, ok := perPkg[pd.Pkg]
		if !ok {
			file = &genFile{pkg: pd.Pkg}
			perPkg[pd.Pkg] = file
			files = append(files, file)
		}
		file.blocks = append(file.blocks, gen.Code)
		for _, path := range declImports(pd, gen) {
			if !slices.Contains(file.imports, path) {
				file.imports = append(file.imports, path)
			}
		}
	}

	if errs != nil {
		return nil, errs
	}
	if !entrySeen {
		return nil, ErrNoEntry
	}
	return files, nil
}

func declError(prog *Program, pd *ParsedDecl, err error) error {
	var diag *handler.Diagnostic
	if errors.As(err, &diag) && diag.Pos.IsValid() {
		return fmt.Errorf("%w\n%s", err, handler.Excerpt(prog.FileSet, diag.Pos))
	}
	return fmt.Errorf("%w (%s)", err, prog.Position(pd.Decl.Fn.Pos))
}

// declImports resolves the packages the emitted trampoline references:
// the runtime package the emitter asked for, plus whatever the slot
// types, initializers, frame type, and interrupt path name out of the
// declaring file's imports.
func declImports(pd *ParsedDecl, gen handler.GenFunc) []string {
	imports := slices.Clone(gen.Imports)

	local := map[string]string{}
	for _, spec := range pd.File.Imports {
		path := strings.Trim(spec.Path.Value, `"`)
		name := path
		if i := strings.LastIndex(path, "/"); i >= 0 {
			name = path[i+1:]
		}
		if spec.Name != nil {
			name = spec.Name.Name
		}
		local[name] = path
	}

	add := func(qualifier string) {
		if path, ok := local[qualifier]; ok && !slices.Contains(imports, path) {
			imports = append(imports, path)
		}
	}

	for _, param := range pd.Decl.Params {
		for _, qualifier := range qualifiers(param.Type.Name) {
			add(qualifier)
		}
		for _, qualifier := range qualifiers(param.Init) {
			add(qualifier)
		}
	}
	if len(pd.Decl.Interrupt) > 2 {
		add(pd.Decl.Interrupt[0])
	}

	return imports
}

// qualifiers extracts the identifiers that qualify a selector in the
// expression text, e.g. "machine" in "machine.LED".
func qualifiers(expr string) []string {
	var out []string
	var ident []byte
	prevDot := false
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || len(ident) > 0 && c >= '0' && c <= '9':
			ident = append(ident, c)
		case c == '.':
			if len(ident) > 0 && !prevDot {
				out = append(out, string(ident))
			}
			ident = ident[:0]
			prevDot = true
			continue
		default:
			ident = ident[:0]
		}
		if c != '.' {
			prevDot = false
		}
	}
	return out
}

func assembleFile(file *genFile, tags []string) ([]byte, error) {
	var b strings.Builder
	b.WriteString("// Code generated by veneerc. DO NOT EDIT.\n\n")
	if len(tags) > 0 {
		fmt.Fprintf(&b, "//go:build %s\n\n", strings.Join(tags, " && "))
	}
	fmt.Fprintf(&b, "package %s\n\n", file.pkg.Name)

	imports := slices.Clone(file.imports)
	sort.Strings(imports)
	switch len(imports) {
	case 0:
	case 1:
		fmt.Fprintf(&b, "import %q\n\n", imports[0])
	default:
		b.WriteString("import (\n")
		for _, path := range imports {
			fmt.Fprintf(&b, "\t%q\n", path)
		}
		b.WriteString(")\n\n")
	}

	b.WriteString(strings.Join(file.blocks, "\n"))

	out, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, errors.Join(ErrParserError, err)
	}
	return out, nil
}

func writeGenerated(pkg *packages.Package, output string, contents []byte) error {
	name := GeneratedFileName
	dir := output
	if len(dir) == 0 {
		files := pkg.GoFiles
		if len(files) == 0 {
			files = pkg.CompiledGoFiles
		}
		if len(files) == 0 {
			return fmt.Errorf("%w: package %s has no source directory", ErrParserError, pkg.PkgPath)
		}
		dir = filepath.Dir(files[0])
	} else {
		name = pkg.Name + "_" + GeneratedFileName
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), contents, 0644)
}
