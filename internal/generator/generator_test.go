package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/nav"
	"git.home.luguber.info/inful/moddoc/internal/report"
	"git.home.luguber.info/inful/moddoc/internal/state"
)

func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func fixtureModule(t *testing.T) string {
	return writeModule(t, map[string]string{
		"go.mod": "module example.com/demo\n\ngo 1.21\n",
		"demo.go": `// Package demo is a generator fixture.
package demo

// Gadget frobs things.
type Gadget struct {
	// Size is the gadget size.
	Size int
}

// Frob does the frobbing.
func (g *Gadget) Frob(n int) error { return nil }
`,
	})
}

func TestRun_EndToEnd(t *testing.T) {
	out := t.TempDir()
	cfg := config.Default()
	cfg.OutputRoot = out
	cfg.Modules = []config.ModuleInput{{Path: fixtureModule(t)}}

	r, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, report.OutcomeSuccess, r.Outcome())
	require.Len(t, r.Modules, 1)
	mr := r.Modules[0]
	assert.False(t, mr.Failed())
	assert.Equal(t, 1, mr.Namespaces)
	assert.GreaterOrEqual(t, mr.Types, 1)

	data, err := os.ReadFile(filepath.Join(out, "demo.md"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Gadget frobs things.")
	assert.Contains(t, content, "Frob does the frobbing.")

	_, err = os.Stat(filepath.Join(out, "manifest.yaml"))
	require.NoError(t, err)

	site, err := nav.LoadConfig(filepath.Join(out, "docs.json"))
	require.NoError(t, err)
	assert.Equal(t, "demo", site.Name)
	require.Len(t, site.Navigation.Pages, 1)

	assert.Contains(t, r.StageDurations, "load_symbols")
	assert.Contains(t, r.StageDurations, "ingest")
	assert.Contains(t, r.StageDurations, "pipeline")
}

func TestRun_SidecarOverridesSourceComments(t *testing.T) {
	mod := fixtureModule(t)
	sidecar := filepath.Join(t.TempDir(), "comments.yaml")
	require.NoError(t, os.WriteFile(sidecar,
		[]byte("\"T:demo.Gadget\":\n  summary: Curated gadget docs.\n"), 0o644))

	out := t.TempDir()
	cfg := config.Default()
	cfg.OutputRoot = out
	cfg.Modules = []config.ModuleInput{{Path: mod, Comments: sidecar}}

	r, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	require.False(t, r.Modules[0].Failed())

	data, err := os.ReadFile(filepath.Join(out, "demo.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Curated gadget docs.")
	assert.NotContains(t, string(data), "Gadget frobs things.")
}

func TestRun_FailingModuleDoesNotAbortBatch(t *testing.T) {
	broken := writeModule(t, map[string]string{
		"go.mod": "module example.com/broken\n\ngo 1.21\n",
		"bad.go": "package broken\n\nfunc oops() { return 1 }\n",
	})

	out := t.TempDir()
	cfg := config.Default()
	cfg.OutputRoot = out
	cfg.Modules = []config.ModuleInput{
		{Path: broken},
		{Path: fixtureModule(t)},
	}

	r, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, r.Modules, 2)
	assert.True(t, r.Modules[0].Failed())
	assert.False(t, r.Modules[1].Failed())
	assert.Equal(t, report.OutcomePartial, r.Outcome())
}

func TestRun_PersistsHistory(t *testing.T) {
	store, err := state.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	cfg := config.Default()
	cfg.OutputRoot = t.TempDir()
	cfg.Modules = []config.ModuleInput{{Path: fixtureModule(t)}}

	r, err := New(cfg, WithStore(store)).Run(context.Background())
	require.NoError(t, err)

	runs, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, r.RunID, runs[0].RunID)
}

func TestRun_CanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.Default()
	cfg.OutputRoot = t.TempDir()
	cfg.Modules = []config.ModuleInput{{Path: fixtureModule(t)}}

	r, err := New(cfg).Run(ctx)
	require.NoError(t, err)
	assert.True(t, r.Canceled)
	assert.Empty(t, r.Modules)
	assert.Equal(t, report.OutcomeCanceled, r.Outcome())
}

func TestRelevant(t *testing.T) {
	write := func(name string) fsnotify.Event {
		return fsnotify.Event{Name: name, Op: fsnotify.Write}
	}
	assert.True(t, relevant(write("pkg/thing.go")))
	assert.True(t, relevant(write("comments.yaml")))
	assert.True(t, relevant(write("README.md")))
	assert.True(t, relevant(write("go.mod")))
	assert.False(t, relevant(write("binary.o")))
	assert.False(t, relevant(write(".hidden.go")))
	assert.False(t, relevant(fsnotify.Event{Name: "thing.go", Op: fsnotify.Chmod}))
}
