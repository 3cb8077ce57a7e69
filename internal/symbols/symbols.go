// Package symbols defines the compiled-module symbol tree consumed by
// ingestion. The tree is plain data: loaders produce it (see Loader for the
// go/packages-backed implementation) and tests construct it directly.
package symbols

import (
	"git.home.luguber.info/inful/moddoc/internal/model"
)

// Module is the root symbol of one compiled module.
type Module struct {
	// Name identifies the module in reports and output (assembly name).
	Name string
	// Path is the filesystem location the module was loaded from, when known.
	Path string
	// Namespaces in declaration order.
	Namespaces []*Namespace
}

// Namespace groups the type and free-function symbols declared under one
// dotted namespace name.
type Namespace struct {
	Name  string
	Types []*Type
}

// TypeRef identifies a type mentioned by a parameter, return, or base slot.
// External references are resolved to graph nodes by the ingestion resolver.
type TypeRef struct {
	Name      string
	Namespace string
	FQN       string
	Kind      model.TypeKind
	// External marks a type defined outside the module under ingestion.
	External bool
	// Unresolved marks conflicting reference metadata; ingestion degrades the
	// node to the error kind rather than failing.
	Unresolved bool
}

// Type is one declared type symbol.
type Type struct {
	Name          string
	Namespace     string
	FQN           string
	Kind          model.TypeKind
	Accessibility model.Accessibility
	BaseType      *TypeRef
	TypeParams    []TypeParam
	Members       []*Member
	// Implements lists interfaces the type satisfies; their members are
	// documented on the interface and surfaced here as related APIs.
	Implements []*TypeRef
	// Static marks a member-holder type with no instance state. Static types
	// following the extension-companion naming convention have their methods
	// attached to the extended type.
	Static bool
	// AssociatedNamespace optionally names the namespace whose types this
	// companion extends, when different from the companion's own namespace.
	AssociatedNamespace string
}

// TypeParam is a generic type parameter symbol.
type TypeParam struct {
	Name string
}

// Param is one member parameter symbol.
type Param struct {
	Name string
	Type *TypeRef
}

// Member is one declared member symbol.
type Member struct {
	Name          string
	Kind          model.MemberKind
	Accessibility model.Accessibility
	Signature     string
	Params        []Param
	Return        *TypeRef
	// DocID is the canonical comment key; empty means derive via DocID().
	DocID string
}

// Ref returns a reference to the type itself, for base/implements slots.
func (t *Type) Ref() *TypeRef {
	return &TypeRef{Name: t.Name, Namespace: t.Namespace, FQN: t.FQN, Kind: t.Kind}
}
