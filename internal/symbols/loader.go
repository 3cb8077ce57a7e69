package symbols

import (
	"fmt"
	"go/ast"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"git.home.luguber.info/inful/moddoc/internal/model"
)

// Loader extracts a symbol tree from a Go module on disk using
// golang.org/x/tools/go/packages. Packages become namespaces (import path
// segments joined with dots), named types become type symbols, and
// package-level functions whose first parameter is a module-local named type
// are grouped into static companion types so ingestion can attach them to the
// extended type as extension methods.
type Loader struct {
	// Dir is the module root; it must contain go.mod.
	Dir string
}

// LoadResult pairs the symbol tree with the doc-comment text harvested from
// the syntax trees, keyed by canonical doc ID.
type LoadResult struct {
	Module *Module
	Docs   map[string]string
}

// Load reads the module. Any load failure is returned to the caller, which
// treats it as fatal for this module only.
func (l Loader) Load() (*LoadResult, error) {
	if _, err := os.Stat(filepath.Join(l.Dir, "go.mod")); err != nil {
		return nil, fmt.Errorf("module root %s: %w", l.Dir, err)
	}

	// Neutralize workspace and flag interference, keep the rest of the env.
	env := append(os.Environ(), "GOWORK=off", "GOFLAGS=")
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax |
			packages.NeedTypesInfo | packages.NeedModule | packages.NeedImports | packages.NeedDeps,
		Dir: l.Dir,
		Env: env,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found under %s", l.Dir)
	}
	for _, p := range pkgs {
		for _, e := range p.Errors {
			return nil, fmt.Errorf("package %s: %s", p.PkgPath, e.Msg)
		}
	}

	modPath := ""
	if pkgs[0].Module != nil {
		modPath = pkgs[0].Module.Path
	}
	modName := modPath
	if i := strings.LastIndex(modName, "/"); i >= 0 {
		modName = modName[i+1:]
	}

	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })

	b := &loadBuilder{
		modPath: modPath,
		mod:     &Module{Name: modName, Path: l.Dir},
		docs:    make(map[string]string),
		named:   make(map[*Type]*types.Named),
	}
	for _, p := range pkgs {
		b.addPackage(p)
	}
	b.linkInterfaces()

	return &LoadResult{Module: b.mod, Docs: b.docs}, nil
}

type loadBuilder struct {
	modPath string
	mod     *Module
	docs    map[string]string
	// named tracks the checker type behind each symbol for the interface
	// satisfaction pass.
	named map[*Type]*types.Named
}

// namespaceName converts an import path within the module to a dotted
// namespace rooted at the module name.
func (b *loadBuilder) namespaceName(pkgPath string) string {
	if pkgPath == b.modPath {
		return b.mod.Name
	}
	rel := strings.TrimPrefix(pkgPath, b.modPath+"/")
	return b.mod.Name + "." + strings.ReplaceAll(rel, "/", ".")
}

func (b *loadBuilder) addPackage(p *packages.Package) {
	if p.Types == nil {
		return
	}
	nsName := b.namespaceName(p.PkgPath)
	ns := &Namespace{Name: nsName}
	scope := p.Types.Scope()
	qual := types.RelativeTo(p.Types)

	// scope.Names is sorted, giving deterministic lexical order across runs.
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}
		t := b.buildType(ns, named, tn, scope, qual)
		ns.Types = append(ns.Types, t)
		b.named[t] = named
	}

	b.addCompanions(ns, scope, qual)
	b.harvestDocs(p, ns)

	if len(ns.Types) > 0 {
		b.mod.Namespaces = append(b.mod.Namespaces, ns)
	}
}

func (b *loadBuilder) buildType(ns *Namespace, named *types.Named, tn *types.TypeName, scope *types.Scope, qual types.Qualifier) *Type {
	t := &Type{
		Name:          tn.Name(),
		Namespace:     ns.Name,
		FQN:           ns.Name + "." + tn.Name(),
		Accessibility: accessOf(tn.Exported()),
	}
	for i := 0; i < named.TypeParams().Len(); i++ {
		t.TypeParams = append(t.TypeParams, TypeParam{Name: named.TypeParams().At(i).Obj().Name()})
	}

	switch u := named.Underlying().(type) {
	case *types.Struct:
		t.Kind = model.KindStruct
		b.addFields(t, u, qual)
	case *types.Interface:
		t.Kind = model.KindInterface
	case *types.Signature:
		t.Kind = model.KindDelegate
	case *types.Basic:
		if hasTypedConsts(scope, named) {
			t.Kind = model.KindEnum
		} else {
			t.Kind = model.KindStruct
		}
	default:
		t.Kind = model.KindStruct
	}

	if base := baseOf(named); base != nil {
		t.BaseType = b.refFor(base)
	}

	// Interface methods live on the interface type itself.
	if iface, ok := named.Underlying().(*types.Interface); ok {
		for i := 0; i < iface.NumExplicitMethods(); i++ {
			t.Members = append(t.Members, b.buildFunc(t, iface.ExplicitMethod(i), model.KindMethod, qual))
		}
		return t
	}
	for i := 0; i < named.NumMethods(); i++ {
		t.Members = append(t.Members, b.buildFunc(t, named.Method(i), model.KindMethod, qual))
	}
	return t
}

func (b *loadBuilder) addFields(t *Type, st *types.Struct, qual types.Qualifier) {
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Embedded() {
			continue
		}
		t.Members = append(t.Members, &Member{
			Name:          f.Name(),
			Kind:          model.KindField,
			Accessibility: accessOf(f.Exported()),
			Signature:     f.Name() + " " + types.TypeString(f.Type(), qual),
			Return:        b.refFor(f.Type()),
			DocID:         "F:" + t.FQN + "." + f.Name(),
		})
	}
}

func (b *loadBuilder) buildFunc(t *Type, fn *types.Func, kind model.MemberKind, qual types.Qualifier) *Member {
	sig := fn.Type().(*types.Signature)
	m := &Member{
		Name:          fn.Name(),
		Kind:          kind,
		Accessibility: accessOf(fn.Exported()),
		Signature:     types.ObjectString(fn, qual),
		DocID:         "M:" + t.FQN + "." + fn.Name(),
	}
	for i := 0; i < sig.Params().Len(); i++ {
		p := sig.Params().At(i)
		m.Params = append(m.Params, Param{Name: p.Name(), Type: b.refFor(p.Type())})
	}
	if sig.Results().Len() > 0 {
		m.Return = b.refFor(sig.Results().At(0).Type())
	}
	return m
}

// addCompanions groups package-level functions into static companion types.
// NewXxx constructors for a local type become constructors on a companion of
// that type; other functions whose first parameter is a local named type land
// on a "<Type>Extensions" companion; the rest go into a "Functions" holder.
func (b *loadBuilder) addCompanions(ns *Namespace, scope *types.Scope, qual types.Qualifier) {
	companions := make(map[string]*Type)
	companion := func(name string) *Type {
		if c, ok := companions[name]; ok {
			return c
		}
		c := &Type{
			Name:          name,
			Namespace:     ns.Name,
			FQN:           ns.Name + "." + name,
			Kind:          model.KindClass,
			Accessibility: model.AccessPublic,
			Static:        true,
		}
		companions[name] = c
		return c
	}

	for _, name := range scope.Names() {
		fn, ok := scope.Lookup(name).(*types.Func)
		if !ok {
			continue
		}
		sig := fn.Type().(*types.Signature)
		holder := "Functions"
		kind := model.KindMethod
		if target := localNamedParam(sig, scope); target != "" {
			holder = target + "Extensions"
		} else if target := constructedLocalType(fn.Name(), sig, scope); target != "" {
			holder = target + "Extensions"
			kind = model.KindConstructor
		}
		c := companion(holder)
		m := b.buildFunc(c, fn, kind, qual)
		c.Members = append(c.Members, m)
	}

	names := make([]string, 0, len(companions))
	for n := range companions {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		ns.Types = append(ns.Types, companions[n])
	}
}

// localNamedParam returns the name of the first parameter's type when it is a
// named type declared in the same package scope.
func localNamedParam(sig *types.Signature, scope *types.Scope) string {
	if sig.Params().Len() == 0 {
		return ""
	}
	t := sig.Params().At(0).Type()
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return ""
	}
	name := named.Obj().Name()
	if scope.Lookup(name) == named.Obj() {
		return name
	}
	return ""
}

// constructedLocalType recognizes NewXxx constructors returning a local type.
func constructedLocalType(fnName string, sig *types.Signature, scope *types.Scope) string {
	if !strings.HasPrefix(fnName, "New") || sig.Results().Len() == 0 {
		return ""
	}
	t := sig.Results().At(0).Type()
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return ""
	}
	if scope.Lookup(named.Obj().Name()) == named.Obj() {
		return named.Obj().Name()
	}
	return ""
}

// refFor maps a checker type onto a TypeRef. Pointers, slices, arrays, and
// maps are unwrapped to their element type so references land on the named
// type users look up.
func (b *loadBuilder) refFor(t types.Type) *TypeRef {
	switch u := t.(type) {
	case *types.Pointer:
		return b.refFor(u.Elem())
	case *types.Slice:
		return b.refFor(u.Elem())
	case *types.Array:
		return b.refFor(u.Elem())
	case *types.Map:
		return b.refFor(u.Elem())
	}
	named, ok := t.(*types.Named)
	if !ok {
		name := types.TypeString(t, nil)
		return &TypeRef{Name: name, FQN: name}
	}
	obj := named.Obj()
	ref := &TypeRef{Name: obj.Name()}
	if obj.Pkg() == nil {
		// Universe types (error et al.) stay builtin, never external.
		ref.FQN = obj.Name()
		return ref
	}
	pkgPath := obj.Pkg().Path()
	if b.modPath != "" && (pkgPath == b.modPath || strings.HasPrefix(pkgPath, b.modPath+"/")) {
		ref.Namespace = b.namespaceName(pkgPath)
	} else {
		ref.Namespace = strings.ReplaceAll(pkgPath, "/", ".")
		ref.External = true
	}
	ref.FQN = ref.Namespace + "." + ref.Name
	switch named.Underlying().(type) {
	case *types.Interface:
		ref.Kind = model.KindInterface
	case *types.Signature:
		ref.Kind = model.KindDelegate
	default:
		ref.Kind = model.KindStruct
	}
	return ref
}

// linkInterfaces fills Implements for every concrete type against the
// interfaces declared in the module.
func (b *loadBuilder) linkInterfaces() {
	type ifaceEntry struct {
		sym   *Type
		iface *types.Interface
	}
	var ifaces []ifaceEntry
	for sym, named := range b.named {
		if i, ok := named.Underlying().(*types.Interface); ok && i.NumMethods() > 0 {
			ifaces = append(ifaces, ifaceEntry{sym, i})
		}
	}
	sort.Slice(ifaces, func(i, j int) bool { return ifaces[i].sym.FQN < ifaces[j].sym.FQN })

	for _, ns := range b.mod.Namespaces {
		for _, t := range ns.Types {
			named, ok := b.named[t]
			if !ok || t.Kind == model.KindInterface {
				continue
			}
			for _, ie := range ifaces {
				if ie.sym == t {
					continue
				}
				if types.Implements(named, ie.iface) || types.Implements(types.NewPointer(named), ie.iface) {
					t.Implements = append(t.Implements, ie.sym.Ref())
				}
			}
		}
	}
}

// harvestDocs walks the syntax trees collecting doc comments under the same
// canonical IDs the symbol builders assigned.
func (b *loadBuilder) harvestDocs(p *packages.Package, ns *Namespace) {
	localType := func(name string) bool {
		for _, t := range ns.Types {
			if t.Name == name && !t.Static {
				return true
			}
		}
		return false
	}
	for _, f := range p.Syntax {
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					doc := ts.Doc
					if doc == nil {
						doc = d.Doc
					}
					if doc != nil {
						b.docs["T:"+ns.Name+"."+ts.Name.Name] = strings.TrimSpace(doc.Text())
					}
					if st, ok := ts.Type.(*ast.StructType); ok {
						for _, fld := range st.Fields.List {
							if fld.Doc == nil {
								continue
							}
							for _, n := range fld.Names {
								b.docs["F:"+ns.Name+"."+ts.Name.Name+"."+n.Name] = strings.TrimSpace(fld.Doc.Text())
							}
						}
					}
				}
			case *ast.FuncDecl:
				if d.Doc == nil {
					continue
				}
				text := strings.TrimSpace(d.Doc.Text())
				if d.Recv != nil && len(d.Recv.List) > 0 {
					if name := recvTypeName(d.Recv.List[0].Type); name != "" {
						b.docs["M:"+ns.Name+"."+name+"."+d.Name.Name] = text
					}
					continue
				}
				// Package-level function: key under its companion holder.
				holder := "Functions"
				if len(d.Type.Params.List) > 0 {
					if name := recvTypeName(d.Type.Params.List[0].Type); name != "" && localType(name) {
						holder = name + "Extensions"
					}
				}
				if holder == "Functions" && strings.HasPrefix(d.Name.Name, "New") && d.Type.Results != nil && len(d.Type.Results.List) > 0 {
					if name := recvTypeName(d.Type.Results.List[0].Type); name != "" && localType(name) {
						holder = name + "Extensions"
					}
				}
				b.docs["M:"+ns.Name+"."+holder+"."+d.Name.Name] = text
			}
		}
	}
}

func recvTypeName(e ast.Expr) string {
	switch t := e.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return recvTypeName(t.X)
	case *ast.IndexExpr:
		return recvTypeName(t.X)
	case *ast.IndexListExpr:
		return recvTypeName(t.X)
	}
	return ""
}

func accessOf(exported bool) model.Accessibility {
	if exported {
		return model.AccessPublic
	}
	return model.AccessPrivate
}

func hasTypedConsts(scope *types.Scope, named *types.Named) bool {
	for _, name := range scope.Names() {
		if c, ok := scope.Lookup(name).(*types.Const); ok && types.Identical(c.Type(), named) {
			return true
		}
	}
	return false
}

// baseOf returns the first embedded struct or interface, which documentation
// treats as the base type.
func baseOf(named *types.Named) types.Type {
	switch u := named.Underlying().(type) {
	case *types.Struct:
		for i := 0; i < u.NumFields(); i++ {
			if u.Field(i).Embedded() {
				return u.Field(i).Type()
			}
		}
	case *types.Interface:
		for i := 0; i < u.NumEmbeddeds(); i++ {
			return u.EmbeddedType(i)
		}
	}
	return nil
}
