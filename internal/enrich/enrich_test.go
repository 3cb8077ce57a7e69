package enrich

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/model"
	"git.home.luguber.info/inful/moddoc/internal/pipeline"
)

func writeContent(t *testing.T, root, name, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name+".md"), []byte(text), 0o644))
}

func TestConceptual_FillsEmptyTypeSummary(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "Widgets.Gadget", "A gadget overview.\n\nLonger discussion.")

	cfg := config.Default()
	cfg.ConceptualContent = root
	ns := &model.Namespace{Name: "Widgets"}
	ty := &model.TypeNode{Name: "Gadget", FullName: "Widgets.Gadget"}

	c := &Conceptual{}
	require.NoError(t, c.Enrich(context.Background(), pipeline.Entity{Namespace: ns, Type: ty}, cfg))

	assert.Equal(t, "A gadget overview.", ty.Docs.Summary)
	assert.Equal(t, "Longer discussion.", ty.Docs.Remarks)
}

func TestConceptual_ExistingSummaryKept(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "Widgets.Gadget", "Extra intro.\n\nExtra detail.")

	cfg := config.Default()
	cfg.ConceptualContent = root
	ns := &model.Namespace{Name: "Widgets"}
	ty := &model.TypeNode{
		Name: "Gadget", FullName: "Widgets.Gadget",
		Docs: model.DocText{Summary: "From source.", Remarks: "Existing remarks."},
	}

	c := &Conceptual{}
	require.NoError(t, c.Enrich(context.Background(), pipeline.Entity{Namespace: ns, Type: ty}, cfg))

	assert.Equal(t, "From source.", ty.Docs.Summary)
	assert.Equal(t, "Existing remarks.\n\nExtra intro.\n\nExtra detail.", ty.Docs.Remarks)
}

func TestConceptual_NamespaceContentBecomesUsage(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "Widgets", "How to use the Widgets namespace.")

	cfg := config.Default()
	cfg.ConceptualContent = root
	ns := &model.Namespace{Name: "Widgets"}

	c := &Conceptual{}
	require.NoError(t, c.Enrich(context.Background(), pipeline.Entity{Namespace: ns}, cfg))

	require.Len(t, ns.Usage, 1)
	assert.Equal(t, "How to use the Widgets namespace.", ns.Usage[0])
}

func TestConceptual_SkipsExternalAndMemberEntities(t *testing.T) {
	cfg := config.Default()
	cfg.ConceptualContent = t.TempDir()
	ns := &model.Namespace{Name: "Core"}
	ext := &model.TypeNode{Name: "Container", FullName: "Core.Container", IsExternalReference: true}

	c := &Conceptual{}
	require.NoError(t, c.Enrich(context.Background(), pipeline.Entity{Namespace: ns, Type: ext}, cfg))
	assert.Empty(t, ext.Docs.Summary)

	owned := &model.TypeNode{Name: "Own", FullName: "Core.Own"}
	m := &model.Member{Name: "Frob"}
	require.NoError(t, c.Enrich(context.Background(), pipeline.Entity{Namespace: ns, Type: owned, Member: m}, cfg))
	assert.Empty(t, m.Docs.Summary)
}

func TestConceptual_NoContentConfigured(t *testing.T) {
	ns := &model.Namespace{Name: "Widgets"}
	c := &Conceptual{}
	require.NoError(t, c.Enrich(context.Background(), pipeline.Entity{Namespace: ns}, config.Default()))
	assert.Empty(t, ns.Usage)
}

func TestPlaceholder_FillsOnlyWhenEnabled(t *testing.T) {
	ns := &model.Namespace{Name: "Widgets"}
	ty := &model.TypeNode{Name: "Gadget", FullName: "Widgets.Gadget"}
	m := &model.Member{Name: "Frob"}

	cfg := config.Default()
	require.NoError(t, Placeholder{}.Enrich(context.Background(), pipeline.Entity{Namespace: ns, Type: ty}, cfg))
	assert.Empty(t, ty.Docs.Summary, "disabled by default")

	cfg.ShowPlaceholders = true
	require.NoError(t, Placeholder{}.Enrich(context.Background(), pipeline.Entity{Namespace: ns, Type: ty}, cfg))
	assert.Contains(t, ty.Docs.Summary, "Widgets.Gadget")

	require.NoError(t, Placeholder{}.Enrich(context.Background(), pipeline.Entity{Namespace: ns, Type: ty, Member: m}, cfg))
	assert.Contains(t, m.Docs.Summary, "Widgets.Gadget.Frob")
}

func TestPlaceholder_NeverOverwrites(t *testing.T) {
	cfg := config.Default()
	cfg.ShowPlaceholders = true
	ty := &model.TypeNode{FullName: "Widgets.Gadget", Docs: model.DocText{Summary: "Real docs."}}

	require.NoError(t, Placeholder{}.Enrich(context.Background(), pipeline.Entity{Namespace: &model.Namespace{}, Type: ty}, cfg))
	assert.Equal(t, "Real docs.", ty.Docs.Summary)
}

func TestEnsureLocal_PlainDirectoryPassesThrough(t *testing.T) {
	dir := t.TempDir()
	got, err := EnsureLocal(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}
