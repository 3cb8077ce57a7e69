// Package pipeline composes and executes the enrich → transform → render
// stages over a documentation graph. Stage implementations are pluggable;
// registration is deduplicated by (capability, concrete type) so wiring the
// same implementation twice yields exactly one active instance.
package pipeline

import (
	"context"
	"log/slog"
	"reflect"
	"sync"

	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/errors"
	"git.home.luguber.info/inful/moddoc/internal/logfields"
	"git.home.luguber.info/inful/moddoc/internal/model"
)

// Entity is one graph node handed to enrichers and transformers. Namespace is
// always set; Type is set for type and member entities; Member only for
// member entities.
type Entity struct {
	Namespace *model.Namespace
	Type      *model.TypeNode
	Member    *model.Member
}

// Name returns the most specific identifier for the entity, for logs.
func (e Entity) Name() string {
	switch {
	case e.Member != nil:
		return e.Type.FullName + "." + e.Member.Name
	case e.Type != nil:
		return e.Type.FullName
	default:
		return e.Namespace.Name
	}
}

// Owned reports whether the entity belongs to the ingested module. External
// reference nodes are read-only for mutating stages.
func (e Entity) Owned() bool {
	return e.Type == nil || !e.Type.IsExternalReference
}

// Enricher adds content to an entity (conceptual overrides, placeholders).
type Enricher interface {
	Enrich(ctx context.Context, e Entity, cfg config.Project) error
}

// Transformer rewrites an entity's existing text (markup normalization).
type Transformer interface {
	Transform(ctx context.Context, e Entity, cfg config.Project) error
}

// Renderer serializes the finalized graph below the output root. Renderers
// run after all enrichment and transformation, own disjoint output locations,
// and must treat the graph as read-only.
type Renderer interface {
	Name() string
	Render(ctx context.Context, a *model.Assembly, outputRoot string, cfg config.Project) error
}

type capability string

const (
	capEnrich    capability = "enrich"
	capTransform capability = "transform"
	capRender    capability = "render"
)

type registrationKey struct {
	cap  capability
	impl reflect.Type
}

// Pipeline holds the registered stage implementations.
type Pipeline struct {
	mu           sync.Mutex
	seen         map[registrationKey]bool
	enrichers    []Enricher
	transformers []Transformer
	renderers    []Renderer
}

// New returns an empty pipeline.
func New() *Pipeline {
	return &Pipeline{seen: make(map[registrationKey]bool)}
}

func (p *Pipeline) register(c capability, impl any) bool {
	key := registrationKey{cap: c, impl: reflect.TypeOf(impl)}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.seen[key] {
		return false
	}
	p.seen[key] = true
	return true
}

// RegisterEnricher adds an enricher; re-registering the same concrete type is
// a no-op. Reports whether the instance became active.
func (p *Pipeline) RegisterEnricher(e Enricher) bool {
	if !p.register(capEnrich, e) {
		return false
	}
	p.enrichers = append(p.enrichers, e)
	return true
}

// RegisterTransformer adds a transformer with the same dedup semantics.
func (p *Pipeline) RegisterTransformer(t Transformer) bool {
	if !p.register(capTransform, t) {
		return false
	}
	p.transformers = append(p.transformers, t)
	return true
}

// RegisterRenderer adds a renderer with the same dedup semantics.
func (p *Pipeline) RegisterRenderer(r Renderer) bool {
	if !p.register(capRender, r) {
		return false
	}
	p.renderers = append(p.renderers, r)
	return true
}

// Enrichers returns the count of active enrichers.
func (p *Pipeline) Enrichers() int { return len(p.enrichers) }

// Transformers returns the count of active transformers.
func (p *Pipeline) Transformers() int { return len(p.transformers) }

// Renderers returns the count of active renderers.
func (p *Pipeline) Renderers() int { return len(p.renderers) }

// Result collects per-unit outcomes of one pipeline run. Stage warnings are
// localized failures that did not stop the run; RendererErrors maps renderer
// name to its failure, other renderers having completed independently.
type Result struct {
	Warnings       []error
	RendererErrors map[string]error
}

// OK reports whether every renderer completed.
func (r *Result) OK() bool { return len(r.RendererErrors) == 0 }

// Run executes the pipeline: every entity in namespace → type → member
// document order passes through all enrichers then all transformers; once the
// graph is finalized, every renderer runs against it concurrently. A failing
// enricher or transformer is logged and skipped for that entity; a failing
// renderer is reported without stopping the others. Cancellation is honored
// between type boundaries.
func (p *Pipeline) Run(ctx context.Context, a *model.Assembly, cfg config.Project) (*Result, error) {
	res := &Result{RendererErrors: make(map[string]error)}

	for _, ns := range a.Namespaces {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		p.processEntity(ctx, Entity{Namespace: ns}, cfg, res)
		for _, t := range ns.Types {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			e := Entity{Namespace: ns, Type: t}
			p.processEntity(ctx, e, cfg, res)
			for _, m := range t.Members {
				p.processEntity(ctx, Entity{Namespace: ns, Type: t, Member: m}, cfg, res)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	p.render(ctx, a, cfg, res)
	return res, nil
}

func (p *Pipeline) processEntity(ctx context.Context, e Entity, cfg config.Project, res *Result) {
	for _, en := range p.enrichers {
		if err := en.Enrich(ctx, e, cfg); err != nil {
			werr := errors.TransformFailed(e.Name(), err)
			slog.Warn("Enricher failed for entity", slog.String("entity", e.Name()), logfields.Error(err))
			res.Warnings = append(res.Warnings, werr)
		}
	}
	for _, tr := range p.transformers {
		if err := tr.Transform(ctx, e, cfg); err != nil {
			werr := errors.TransformFailed(e.Name(), err)
			slog.Warn("Transformer failed for entity, original text kept",
				slog.String("entity", e.Name()), logfields.Error(err))
			res.Warnings = append(res.Warnings, werr)
		}
	}
}

// render runs all renderers over the read-only graph. Each renderer owns a
// disjoint output location, so they run concurrently; failures are collected
// per renderer.
func (p *Pipeline) render(ctx context.Context, a *model.Assembly, cfg config.Project, res *Result) {
	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, r := range p.renderers {
		wg.Add(1)
		go func(r Renderer) {
			defer wg.Done()
			if err := r.Render(ctx, a, cfg.OutputRoot, cfg); err != nil {
				slog.Error("Renderer failed", logfields.Renderer(r.Name()), logfields.Error(err))
				mu.Lock()
				res.RendererErrors[r.Name()] = errors.RenderFailed(r.Name(), err)
				mu.Unlock()
				return
			}
			slog.Debug("Renderer completed", logfields.Renderer(r.Name()))
		}(r)
	}
	wg.Wait()
}
