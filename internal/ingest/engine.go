// Package ingest walks a module's symbol tree and produces the documentation
// entity graph. It applies the accessibility filter, attaches structured
// comments, discovers extension methods on companion types, and resolves
// external type references through a run-scoped deduplicating resolver.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/moddoc/internal/comments"
	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/errors"
	"git.home.luguber.info/inful/moddoc/internal/logfields"
	"git.home.luguber.info/inful/moddoc/internal/metrics"
	"git.home.luguber.info/inful/moddoc/internal/model"
	"git.home.luguber.info/inful/moddoc/internal/symbols"
)

// extensionSuffix is the companion-type naming convention: a static type
// "GadgetExtensions" extends "Gadget" in the same (or explicitly associated)
// namespace.
const extensionSuffix = "Extensions"

// globalDisplayName labels the empty namespace when it is included.
const globalDisplayName = "(global)"

// Options control one ingestion run.
type Options struct {
	Included              model.AccessSet
	CreateExternalRefs    bool
	IgnoreGlobalNamespace bool
	// Recorder receives resolver cache metrics. Nil means no-op.
	Recorder metrics.Recorder
}

// OptionsFrom derives ingestion options from a validated project config.
func OptionsFrom(p config.Project) Options {
	return Options{
		Included:              p.AccessSet(),
		CreateExternalRefs:    p.CreateExternalRefs,
		IgnoreGlobalNamespace: p.IgnoreGlobalNamespace,
	}
}

// Ingest builds the documentation graph for one module. The type-reference
// cache lives only for this call. Cancellation is honored between namespace
// and type boundaries, never mid-type.
func Ingest(ctx context.Context, mod *symbols.Module, source comments.Source, opts Options) (*model.Assembly, error) {
	if mod == nil {
		return nil, errors.IngestionFailed("", fmt.Errorf("nil module"))
	}
	if source == nil {
		source = comments.Empty{}
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}

	run := &ingestRun{
		assembly: &model.Assembly{Name: mod.Name},
		source:   source,
		opts:     opts,
		nodes:    make(map[string]*model.TypeNode),
		symIndex: make(map[string]*symbols.Type),
	}
	run.resolver = newResolver(run.assembly, opts.Recorder)

	// Pass 1: create nodes for included, non-companion types in declaration
	// order so the document order is fixed before references are filled.
	type pending struct {
		ns   *model.Namespace
		sym  *symbols.Type
		node *model.TypeNode
	}
	var work []pending
	var extensions []*symbols.Type

	for _, ns := range mod.Namespaces {
		for _, t := range ns.Types {
			run.symIndex[t.FQN] = t
		}
	}

	for _, ns := range mod.Namespaces {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ns.Name == "" && opts.IgnoreGlobalNamespace {
			continue
		}
		var nsNode *model.Namespace
		for _, t := range ns.Types {
			if !opts.Included.Contains(t.Accessibility) {
				continue
			}
			if target := run.extensionTarget(t); target != nil {
				extensions = append(extensions, t)
				continue
			}
			if nsNode == nil {
				nsNode = run.assembly.EnsureNamespace(ns.Name)
				if ns.Name == "" {
					nsNode.DisplayName = globalDisplayName
				}
			}
			node := &model.TypeNode{
				Name:           t.Name,
				FullName:       t.FQN,
				Kind:           t.Kind,
				IncludedAccess: opts.Included,
			}
			nsNode.AddType(node)
			run.nodes[t.FQN] = node
			work = append(work, pending{ns: nsNode, sym: t, node: node})
		}
	}

	// Pass 2: fill contents now that every owned node exists, so internal
	// cross-references bind to built nodes regardless of declaration order.
	for _, w := range work {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		run.fillType(w.sym, w.node)
	}

	// Pass 3: attach extension members to their extended types.
	for _, ext := range extensions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		run.attachExtensions(ext)
	}

	return run.assembly, nil
}

type ingestRun struct {
	assembly *model.Assembly
	resolver *Resolver
	source   comments.Source
	opts     Options
	nodes    map[string]*model.TypeNode
	symIndex map[string]*symbols.Type
}

// extensionTarget returns the symbol a companion type extends, or nil when
// the type is not a companion (wrong name, not static, or no extended type in
// scope after filtering).
func (r *ingestRun) extensionTarget(t *symbols.Type) *symbols.Type {
	if !t.Static || !strings.HasSuffix(t.Name, extensionSuffix) || t.Name == extensionSuffix {
		return nil
	}
	base := strings.TrimSuffix(t.Name, extensionSuffix)
	ns := t.Namespace
	if t.AssociatedNamespace != "" {
		ns = t.AssociatedNamespace
	}
	fqn := base
	if ns != "" {
		fqn = ns + "." + base
	}
	target, ok := r.symIndex[fqn]
	if !ok || !r.opts.Included.Contains(target.Accessibility) {
		return nil
	}
	return target
}

func (r *ingestRun) fillType(t *symbols.Type, node *model.TypeNode) {
	if t.BaseType != nil {
		node.BaseType = r.reference(t.BaseType)
	}

	doc, _ := r.source.Lookup(symbols.TypeDocID(t))
	r.attachTypeDocs(t, node, doc)

	// Members a declared interface already documents are cross-linked, not
	// duplicated on the implementer.
	skip := make(map[string]bool)
	for _, impl := range t.Implements {
		node.RelatedAPIs = appendUnique(node.RelatedAPIs, impl.FQN)
		if ifaceSym, ok := r.symIndex[impl.FQN]; ok && r.nodes[impl.FQN] != nil {
			for _, im := range ifaceSym.Members {
				skip[im.Name] = true
			}
		}
	}

	for _, m := range t.Members {
		if !r.opts.Included.Contains(m.Accessibility) {
			continue
		}
		if skip[m.Name] && m.Kind == model.KindMethod {
			continue
		}
		node.Members = append(node.Members, r.buildMember(t, m))
	}

	for _, tp := range t.TypeParams {
		p := model.TypeParam{Name: tp.Name}
		if doc != nil {
			p.Description = doc.TypeParams[tp.Name]
		}
		node.TypeParams = append(node.TypeParams, p)
	}
}

func (r *ingestRun) buildMember(t *symbols.Type, m *symbols.Member) *model.Member {
	member := &model.Member{
		Name:          m.Name,
		Kind:          m.Kind,
		Accessibility: m.Accessibility,
		Signature:     m.Signature,
	}

	doc, _ := r.source.Lookup(symbols.MemberDocID(t, m))
	if doc != nil {
		r.attachMemberDocs(t, m, member, doc)
	}

	for _, p := range m.Params {
		param := model.Parameter{Name: p.Name}
		if p.Type != nil {
			param.Type = p.Type.Name
			param.TypeRef = r.reference(p.Type)
		}
		if doc != nil {
			param.Description = doc.Params[p.Name]
		}
		member.Parameters = append(member.Parameters, param)
	}
	if m.Return != nil {
		ret := &model.ReturnValue{Type: m.Return.Name, TypeRef: r.reference(m.Return)}
		if doc != nil {
			ret.Description = doc.Returns
		}
		member.Returns = ret
	}
	return member
}

// reference binds a symbol reference to a graph node: module-local types bind
// to their owned node (nil when excluded by the filter), external types go
// through the resolver when external-reference creation is enabled.
func (r *ingestRun) reference(ref *symbols.TypeRef) *model.TypeNode {
	if ref == nil {
		return nil
	}
	if !ref.External {
		return r.nodes[ref.FQN]
	}
	if !r.opts.CreateExternalRefs {
		return nil
	}
	return r.resolver.Resolve(ref)
}

func (r *ingestRun) attachTypeDocs(t *symbols.Type, node *model.TypeNode, doc *comments.Doc) {
	if doc == nil {
		return
	}
	docs, err := toDocText(doc)
	if err != nil {
		slog.Warn("Malformed comment text, leaving type undocumented",
			logfields.Type(t.FQN), logfields.Error(err))
		return
	}
	node.Docs = docs
	node.RelatedAPIs = append(node.RelatedAPIs, doc.SeeAlso...)
}

func (r *ingestRun) attachMemberDocs(t *symbols.Type, m *symbols.Member, member *model.Member, doc *comments.Doc) {
	docs, err := toDocText(doc)
	if err != nil {
		slog.Warn("Malformed comment text, leaving member undocumented",
			logfields.Type(t.FQN), logfields.Member(m.Name), logfields.Error(err))
		return
	}
	member.Docs = docs
}

// toDocText converts a comment entry, validating markup. A malformed section
// fails the whole entry so callers can keep the member text unset.
func toDocText(doc *comments.Doc) (model.DocText, error) {
	for _, s := range append([]string{doc.Summary, doc.Remarks}, doc.Examples...) {
		if err := comments.ValidateMarkup(s); err != nil {
			return model.DocText{}, err
		}
	}
	out := model.DocText{
		Summary:  doc.Summary,
		Remarks:  doc.Remarks,
		Examples: doc.Examples,
		SeeAlso:  doc.SeeAlso,
	}
	for _, ex := range doc.Exceptions {
		out.Exceptions = append(out.Exceptions, model.ExceptionDoc{Type: ex.Type, Description: ex.Description})
	}
	return out, nil
}

// attachExtensions moves a companion type's members onto the extended type.
// Methods arrive flagged as extension methods; NewXxx factories arrive as
// constructors.
func (r *ingestRun) attachExtensions(ext *symbols.Type) {
	target := r.extensionTarget(ext)
	if target == nil {
		return
	}
	node := r.nodes[target.FQN]
	if node == nil {
		return
	}
	for _, m := range ext.Members {
		if !r.opts.Included.Contains(m.Accessibility) {
			continue
		}
		member := r.buildMember(ext, m)
		member.IsExtensionMethod = m.Kind == model.KindMethod
		node.Members = append(node.Members, member)
	}
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
