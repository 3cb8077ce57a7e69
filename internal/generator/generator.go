// Package generator orchestrates a full run: load symbols, load comments,
// ingest, then execute the pipeline, per configured module. Batch semantics
// are per-unit: one failing module never aborts the others.
package generator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/moddoc/internal/comments"
	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/enrich"
	"git.home.luguber.info/inful/moddoc/internal/errors"
	"git.home.luguber.info/inful/moddoc/internal/ingest"
	"git.home.luguber.info/inful/moddoc/internal/logfields"
	"git.home.luguber.info/inful/moddoc/internal/metrics"
	"git.home.luguber.info/inful/moddoc/internal/model"
	"git.home.luguber.info/inful/moddoc/internal/pipeline"
	"git.home.luguber.info/inful/moddoc/internal/render"
	"git.home.luguber.info/inful/moddoc/internal/report"
	"git.home.luguber.info/inful/moddoc/internal/state"
	"git.home.luguber.info/inful/moddoc/internal/symbols"
	"git.home.luguber.info/inful/moddoc/internal/transform"
)

// Generator runs the ingest → enrich → transform → render flow.
type Generator struct {
	cfg      config.Project
	pipeline *pipeline.Pipeline
	recorder metrics.Recorder
	store    state.Store
}

// Option customizes a Generator.
type Option func(*Generator)

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) { g.recorder = r }
}

// WithStore injects a run history store.
func WithStore(s state.Store) Option {
	return func(g *Generator) { g.store = s }
}

// WithPipeline replaces the default pipeline composition.
func WithPipeline(p *pipeline.Pipeline) Option {
	return func(g *Generator) { g.pipeline = p }
}

// New builds a Generator with the default stage composition. The config must
// already be validated.
func New(cfg config.Project, opts ...Option) *Generator {
	g := &Generator{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		store:    mustNoopStore(),
	}
	for _, o := range opts {
		o(g)
	}
	if g.pipeline == nil {
		g.pipeline = DefaultPipeline()
	}
	return g
}

func mustNoopStore() state.Store {
	s, _ := state.Open("")
	return s
}

// DefaultPipeline wires the built-in enrichers, transformers, and renderers.
func DefaultPipeline() *pipeline.Pipeline {
	p := pipeline.New()
	p.RegisterEnricher(&enrich.Conceptual{})
	p.RegisterEnricher(enrich.Placeholder{})
	p.RegisterTransformer(transform.NewMarkup())
	p.RegisterRenderer(render.Markdown{})
	p.RegisterRenderer(render.Manifest{})
	p.RegisterRenderer(render.Navigation{})
	return p
}

// Run processes every configured module and persists the run report. The
// returned error is reserved for infrastructure failures; module-level
// failures live in the report.
func (g *Generator) Run(ctx context.Context) (*report.RunReport, error) {
	r := &report.RunReport{RunID: uuid.NewString(), Started: time.Now()}
	slog.Info("Generation run starting", logfields.RunID(r.RunID),
		slog.Int("modules", len(g.cfg.Modules)))

	for _, in := range g.cfg.Modules {
		if ctx.Err() != nil {
			r.Canceled = true
			break
		}
		mr := g.runModule(ctx, in, r)
		r.Modules = append(r.Modules, mr)
	}

	r.Finished = time.Now()
	g.recorder.ObserveRunDuration(r.Finished.Sub(r.Started))
	if err := g.store.Append(ctx, r); err != nil {
		slog.Warn("Failed to persist run report", logfields.Error(err))
	}
	slog.Info("Generation run finished", logfields.RunID(r.RunID),
		slog.String("outcome", string(r.Outcome())))
	return r, nil
}

func (g *Generator) runModule(ctx context.Context, in config.ModuleInput, r *report.RunReport) report.ModuleResult {
	mr := report.ModuleResult{Module: in.Path}

	fatal := func(err error) report.ModuleResult {
		if ctx.Err() != nil {
			r.Canceled = true
		}
		mr.Error = err.Error()
		slog.Error("Module failed", logfields.Module(in.Path), logfields.Error(err))
		return mr
	}

	var loaded *symbols.LoadResult
	err := g.stage(ctx, r, "load_symbols", func(context.Context) error {
		var err error
		loaded, err = symbols.Loader{Dir: in.Path}.Load()
		if err != nil {
			return errors.IngestionFailed(in.Path, err)
		}
		return nil
	})
	if err != nil {
		return fatal(err)
	}

	source := comments.Source(comments.FromRawText(loaded.Docs))
	if in.Comments != "" {
		err := g.stage(ctx, r, "load_comments", func(context.Context) error {
			sidecar, err := comments.LoadFile(in.Comments)
			if err != nil {
				return err
			}
			source = comments.Multi(sidecar, source)
			return nil
		})
		if err != nil {
			return fatal(err)
		}
	}

	var asm *model.Assembly
	err = g.stage(ctx, r, "ingest", func(ctx context.Context) error {
		opts := ingest.OptionsFrom(g.cfg)
		opts.Recorder = g.recorder
		var err error
		asm, err = ingest.Ingest(ctx, loaded.Module, source, opts)
		return err
	})
	if err != nil {
		return fatal(err)
	}
	stats := asm.Stats()
	mr.SetStats(stats)
	g.recorder.ObserveGraphSize(stats.Namespaces, stats.Types, stats.Members)

	err = g.stage(ctx, r, "pipeline", func(ctx context.Context) error {
		res, err := g.pipeline.Run(ctx, asm, g.cfg)
		for _, w := range res.Warnings {
			mr.Warnings = append(mr.Warnings, w.Error())
		}
		for name, rerr := range res.RendererErrors {
			if mr.RendererErrors == nil {
				mr.RendererErrors = make(map[string]string)
			}
			mr.RendererErrors[name] = rerr.Error()
			g.recorder.IncRendererResult(name, false)
		}
		return err
	})
	if err != nil {
		return fatal(err)
	}
	return mr
}

// stage runs one named unit of work, recording its duration and outcome the
// same way for timing reports and metrics.
func (g *Generator) stage(ctx context.Context, r *report.RunReport, name string, fn func(context.Context) error) error {
	t0 := time.Now()
	err := fn(ctx)
	d := time.Since(t0)
	r.RecordStage(name, d)
	g.recorder.ObserveStageDuration(name, d)
	switch {
	case err == nil:
		g.recorder.IncStageResult(name, metrics.ResultSuccess)
	case ctx.Err() != nil:
		g.recorder.IncStageResult(name, metrics.ResultCanceled)
	default:
		g.recorder.IncStageResult(name, metrics.ResultFatal)
	}
	if err == nil {
		slog.Debug("Stage completed", logfields.Stage(name),
			logfields.DurationMS(float64(d.Milliseconds())))
	}
	return err
}
