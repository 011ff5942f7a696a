package builder

import (
	"context"
	"errors"
	"go/token"
	"hash/fnv"
	"strings"

	"golang.org/x/tools/go/packages"
	"gonum.org/v1/gonum/graph/multi"
	"gonum.org/v1/gonum/graph/topo"
)

type ProgramConfig struct {
	Tags         []string
	PackagePaths []string
	Environment  []string
}

type Program struct {
	Packages        map[string]*packages.Package
	OrderedPackages []*packages.Package
	FileSet         *token.FileSet
	Symbols         *SymbolInfoStore
	Config          *ProgramConfig

	packageNodes map[*packages.Package]*packageNode
}

type packageNode struct {
	pkg *packages.Package
	id  int64
}

func (p *packageNode) ID() int64 {
	return p.id
}

func NewProgram(config *ProgramConfig) *Program {
	return &Program{
		Packages:        map[string]*packages.Package{},
		OrderedPackages: []*packages.Package{},
		FileSet:         token.NewFileSet(),
		Symbols:         NewSymbolInfoStore(),
		Config:          config,
		packageNodes:    map[*packages.Package]*packageNode{},
	}
}

func (p *Program) makeNode(pkg *packages.Package) *packageNode {
	// Look up an existing node for this package.
	if node, ok := p.packageNodes[pkg]; ok {
		return node
	}

	// Make a new node for this package.
	hasher := fnv.New64()
	hasher.Write([]byte(pkg.PkgPath))
	node := &packageNode{
		pkg: pkg,
		id:  int64(hasher.Sum64()),
	}
	p.packageNodes[pkg] = node
	return node
}

func (p *Program) Parse(ctx context.Context) error {
	// Create the parser configuration.
	parserConfig := packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedImports | packages.NeedDeps |
			packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo | packages.NeedModule |
			packages.NeedCompiledGoFiles,
		Context: ctx,
		Env:     p.Config.Environment,
		BuildFlags: []string{
			"-tags=" + strings.Join(p.Config.Tags, ","),
		},
		Fset:  p.FileSet,
		Tests: false,
	}

	// Parse the packages.
	pkgs, err := packages.Load(&parserConfig, p.Config.PackagePaths...)
	if err != nil {
		return errors.Join(ErrParserError, err)
	}

	// Add all parsed packages (including their imported packages).
	for _, pkg := range pkgs {
		if pkgErr := p.AddPackage(pkg); pkgErr != nil {
			err = errors.Join(err, pkgErr)
		}
	}

	// Return early with error.
	if err != nil {
		return err
	}

	// Compute dependency order. Trampolines are generated in this order
	// so storage slot numbering is stable across runs.
	return p.computePackageOrder()
}

func (p *Program) computePackageOrder() error {
	// Create a directed graph that will be used to sort the packages topologically in order of dependency.
	graph := multi.NewDirectedGraph()
	for _, pkg := range p.Packages {
		pkgNode := p.makeNode(pkg)
		if graph.Node(pkgNode.ID()) == nil {
			graph.AddNode(pkgNode)
		}
		for _, imported := range pkg.Imports {
			if _, ok := p.Packages[imported.PkgPath]; !ok {
				continue
			}
			importedPkgNode := p.makeNode(imported)
			graph.SetLine(graph.NewLine(importedPkgNode, pkgNode))
		}
	}

	sorted, sortErr := topo.Sort(graph)
	if sortErr != nil {
		return sortErr
	}

	p.OrderedPackages = make([]*packages.Package, len(sorted))
	for i, node := range sorted {
		p.OrderedPackages[i] = node.(*packageNode).pkg
	}

	return nil
}

func (p *Program) AddPackage(pkg *packages.Package) (err error) {
	if _, ok := p.Packages[pkg.PkgPath]; ok {
		// Do not process this package again.
		return nil
	}

	defer func() {
		// Update package mappings.
		p.Packages[pkg.PkgPath] = pkg
	}()

	// Fail early by returning errors (if any).
	if len(pkg.Errors) > 0 {
		for _, pkgErr := range pkg.Errors {
			err = errors.Join(err, pkgErr)
		}
		return errors.Join(ErrParserError, err)
	}

	// Only packages that belong to a module can declare handlers; the
	// standard library is never scanned.
	for _, imported := range pkg.Imports {
		if imported.Module == nil {
			continue
		}
		if pkgErr := p.AddPackage(imported); pkgErr != nil {
			err = errors.Join(err, pkgErr)
		}
	}

	return err
}
