package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/generator"
	"git.home.luguber.info/inful/moddoc/internal/logfields"
	"git.home.luguber.info/inful/moddoc/internal/metrics"
	"git.home.luguber.info/inful/moddoc/internal/nav"
	"git.home.luguber.info/inful/moddoc/internal/report"
	"git.home.luguber.info/inful/moddoc/internal/state"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"moddoc.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Generate struct {
		MetricsListen string `help:"Expose Prometheus metrics on this address while running (e.g. :9090)"`
	} `cmd:"" help:"Extract documentation from the configured modules and render output"`

	Watch struct{} `cmd:"" help:"Rebuild documentation whenever module sources change"`

	MergeNav struct {
		Base     string `arg:"" help:"Navigation document to merge into"`
		Incoming string `arg:"" help:"Navigation document to merge from"`
	} `cmd:"" help:"Merge one site navigation document into another"`

	History struct {
		Limit int `short:"n" help:"Number of runs to show" default:"10"`
	} `cmd:"" help:"Show recent generation runs from the state database"`
}

func main() {
	// A local .env may carry MODDOC_* overrides; absence is fine.
	_ = godotenv.Load()

	kctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch kctx.Command() {
	case "generate":
		err = runGenerate(ctx)
	case "watch":
		err = runWatch(ctx)
	case "merge-nav <base> <incoming>":
		err = runMergeNav()
	case "history":
		err = runHistory(ctx)
	default:
		err = fmt.Errorf("unknown command %q", kctx.Command())
	}
	if err != nil {
		slog.Error("Command failed", logfields.Error(err))
		os.Exit(1)
	}
}

func buildGenerator(ctx context.Context, recorder metrics.Recorder) (*generator.Generator, state.Store, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, nil, err
	}
	store, err := state.Open(cfg.StateDB)
	if err != nil {
		return nil, nil, err
	}
	g := generator.New(cfg,
		generator.WithRecorder(recorder),
		generator.WithStore(store),
	)
	return g, store, nil
}

func runGenerate(ctx context.Context) error {
	recorder := metrics.Recorder(metrics.NoopRecorder{})
	if addr := CLI.Generate.MetricsListen; addr != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil {
				slog.Warn("Metrics listener stopped", logfields.Error(err))
			}
		}()
	}

	g, store, err := buildGenerator(ctx, recorder)
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := g.Run(ctx)
	if err != nil {
		return err
	}
	printReport(r)
	if r.Outcome() == report.OutcomeFailed {
		return fmt.Errorf("all modules failed")
	}
	return nil
}

func runWatch(ctx context.Context) error {
	g, store, err := buildGenerator(ctx, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := g.Run(ctx); err != nil {
		return err
	}
	if err := g.Watch(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func runMergeNav() error {
	base, err := nav.LoadConfig(CLI.MergeNav.Base)
	if err != nil {
		return err
	}
	incoming, err := nav.LoadConfig(CLI.MergeNav.Incoming)
	if err != nil {
		return err
	}
	base.Navigation.Merge(&incoming.Navigation)
	return nav.SaveConfig(CLI.MergeNav.Base, base)
}

func runHistory(ctx context.Context) error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	store, err := state.Open(cfg.StateDB)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(ctx, CLI.History.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%s  %-8s  %d module(s)  %s\n",
			r.RunID, r.Outcome(), len(r.Modules), state.Timestamp(r.Started))
	}
	return nil
}

func printReport(r *report.RunReport) {
	fmt.Printf("run %s: %s\n", r.RunID, r.Outcome())
	for _, m := range r.Modules {
		if m.Failed() {
			fmt.Printf("  %s: FAILED: %s\n", m.Module, m.Error)
			continue
		}
		fmt.Printf("  %s: %d namespaces, %d types (%d external), %d members",
			m.Module, m.Namespaces, m.Types, m.ExternalTypes, m.Members)
		if len(m.Warnings) > 0 {
			fmt.Printf(", %d warning(s)", len(m.Warnings))
		}
		fmt.Println()
		for name, rerr := range m.RendererErrors {
			fmt.Printf("    renderer %s failed: %s\n", name, rerr)
		}
	}
}
