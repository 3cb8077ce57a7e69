// Package model defines the documentation entity graph produced by ingestion:
// an assembly root holding namespaces, which hold types, which hold members.
// The graph carries no behavior beyond identity, containment, and deterministic
// enumeration; pipeline stages mutate text fields in place.
package model

// TypeKind classifies a documented type.
type TypeKind string

const (
	KindClass     TypeKind = "class"
	KindInterface TypeKind = "interface"
	KindStruct    TypeKind = "struct"
	KindEnum      TypeKind = "enum"
	KindDelegate  TypeKind = "delegate"
	// KindError marks a type whose reference metadata could not be resolved.
	// Surfaced in output rather than treated as fatal.
	KindError TypeKind = "error"
)

// MemberKind classifies a documented member.
type MemberKind string

const (
	KindConstructor MemberKind = "constructor"
	KindMethod      MemberKind = "method"
	KindProperty    MemberKind = "property"
	KindField       MemberKind = "field"
	KindEvent       MemberKind = "event"
)

// Accessibility enumerates member visibility levels.
type Accessibility string

const (
	AccessPublic    Accessibility = "public"
	AccessProtected Accessibility = "protected"
	AccessInternal  Accessibility = "internal"
	AccessPrivate   Accessibility = "private"
)

// AccessSet is the set of accessibility levels included in a build.
type AccessSet map[Accessibility]bool

// Contains reports whether the set includes the given level. A nil set
// includes public only.
func (s AccessSet) Contains(a Accessibility) bool {
	if s == nil {
		return a == AccessPublic
	}
	return s[a]
}

// DocText holds structured comment sections attached to a type or member.
type DocText struct {
	Summary    string
	Remarks    string
	Examples   []string
	Exceptions []ExceptionDoc
	SeeAlso    []string
}

// ExceptionDoc documents one error condition a member can surface.
type ExceptionDoc struct {
	Type        string
	Description string
}

// TypeParam describes a generic type parameter.
type TypeParam struct {
	Name        string
	Description string
}

// Parameter describes one member parameter. TypeRef is populated when the
// parameter type resolved to a graph node (external references included).
type Parameter struct {
	Name        string
	Type        string
	TypeRef     *TypeNode
	Description string
}

// ReturnValue describes a member return.
type ReturnValue struct {
	Type        string
	TypeRef     *TypeNode
	Description string
}

// Member is a documented constructor, method, property, field, or event.
type Member struct {
	Name              string
	Kind              MemberKind
	Accessibility     Accessibility
	Signature         string
	Parameters        []Parameter
	Returns           *ReturnValue
	IsExtensionMethod bool
	Docs              DocText
}

// TypeNode is a documented type. External references (types defined outside
// the ingested module) carry IsExternalReference and are never owned by
// pipeline stages that mutate source-owned entities.
type TypeNode struct {
	Name       string
	FullName   string
	Kind       TypeKind
	BaseType   *TypeNode
	TypeParams []TypeParam
	Members    []*Member

	IsExternalReference bool
	// IncludedAccess records the accessibility filter in effect when the
	// node was built.
	IncludedAccess AccessSet

	Docs        DocText
	RelatedAPIs []string
}

// Namespace groups the types sharing one namespace name.
type Namespace struct {
	Name        string
	DisplayName string
	Types       []*TypeNode

	Usage       []string
	Examples    []string
	RelatedAPIs []string
}

// Type returns the contained type with the given name, or nil.
func (ns *Namespace) Type(name string) *TypeNode {
	for _, t := range ns.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// AddType appends t if no type with the same name exists and reports whether
// it was added. Types are unique by name within a namespace.
func (ns *Namespace) AddType(t *TypeNode) bool {
	if ns.Type(t.Name) != nil {
		return false
	}
	ns.Types = append(ns.Types, t)
	return true
}

// Assembly is the root of one ingestion run's documentation graph.
type Assembly struct {
	Name       string
	Namespaces []*Namespace
}

// Namespace returns the namespace with the given name, or nil.
func (a *Assembly) Namespace(name string) *Namespace {
	for _, ns := range a.Namespaces {
		if ns.Name == name {
			return ns
		}
	}
	return nil
}

// EnsureNamespace returns the namespace with the given name, creating and
// appending it first if absent. Namespace names are unique within an assembly;
// insertion order is the deterministic document order used by the pipeline.
func (a *Assembly) EnsureNamespace(name string) *Namespace {
	if ns := a.Namespace(name); ns != nil {
		return ns
	}
	ns := &Namespace{Name: name, DisplayName: name}
	a.Namespaces = append(a.Namespaces, ns)
	return ns
}

// Visitor receives graph entities during a document-order walk. Any callback
// may be nil.
type Visitor struct {
	Namespace func(*Namespace)
	Type      func(*Namespace, *TypeNode)
	Member    func(*Namespace, *TypeNode, *Member)
}

// Walk visits the graph in namespace → type → member document order. The
// order is the insertion order established at ingestion time and is stable
// across runs against unchanged input.
func (a *Assembly) Walk(v Visitor) {
	for _, ns := range a.Namespaces {
		if v.Namespace != nil {
			v.Namespace(ns)
		}
		for _, t := range ns.Types {
			if v.Type != nil {
				v.Type(ns, t)
			}
			for _, m := range t.Members {
				if v.Member != nil {
					v.Member(ns, t, m)
				}
			}
		}
	}
}

// Stats summarizes graph size for reports and metrics.
type Stats struct {
	Namespaces    int
	Types         int
	ExternalTypes int
	Members       int
}

// Stats computes graph size counters.
func (a *Assembly) Stats() Stats {
	var s Stats
	a.Walk(Visitor{
		Namespace: func(*Namespace) { s.Namespaces++ },
		Type: func(_ *Namespace, t *TypeNode) {
			s.Types++
			if t.IsExternalReference {
				s.ExternalTypes++
			}
		},
		Member: func(_ *Namespace, _ *TypeNode, _ *Member) { s.Members++ },
	})
	return s
}
