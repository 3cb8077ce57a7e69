package symbols

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/moddoc/internal/model"
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

const demoSource = `// Package demo is a loader fixture.
package demo

// Gadget frobs things.
type Gadget struct {
	// Size is the gadget size.
	Size   int
	hidden string
}

// Frob does the frobbing.
func (g *Gadget) Frob(n int) error { return nil }

func NewGadget(size int) *Gadget { return &Gadget{Size: size} }

// Polish shines a gadget.
func Polish(g *Gadget) {}

type Mode int

const (
	ModeOff Mode = iota
	ModeOn
)

type Frobber interface {
	Frob(n int) error
}
`

func loadDemo(t *testing.T) *LoadResult {
	t.Helper()
	dir := writeModule(t, map[string]string{
		"go.mod":     "module example.com/demo\n\ngo 1.21\n",
		"demo.go":    demoSource,
		"sub/sub.go": "package sub\n\n// Thing is a nested fixture type.\ntype Thing struct{}\n",
	})
	res, err := Loader{Dir: dir}.Load()
	require.NoError(t, err)
	return res
}

func TestLoader_ModuleAndNamespaces(t *testing.T) {
	res := loadDemo(t)

	assert.Equal(t, "demo", res.Module.Name)
	require.Len(t, res.Module.Namespaces, 2)
	assert.Equal(t, "demo", res.Module.Namespaces[0].Name)
	assert.Equal(t, "demo.sub", res.Module.Namespaces[1].Name)
}

func findType(ns *Namespace, name string) *Type {
	for _, t := range ns.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

func TestLoader_TypeKinds(t *testing.T) {
	ns := loadDemo(t).Module.Namespaces[0]

	gadget := findType(ns, "Gadget")
	require.NotNil(t, gadget)
	assert.Equal(t, model.KindStruct, gadget.Kind)
	assert.Equal(t, "demo.Gadget", gadget.FQN)
	assert.Equal(t, model.AccessPublic, gadget.Accessibility)

	assert.Equal(t, model.KindInterface, findType(ns, "Frobber").Kind)
	assert.Equal(t, model.KindEnum, findType(ns, "Mode").Kind, "named basic with typed consts")
}

func TestLoader_FieldsAndMethods(t *testing.T) {
	gadget := findType(loadDemo(t).Module.Namespaces[0], "Gadget")
	require.NotNil(t, gadget)

	byName := map[string]*Member{}
	for _, m := range gadget.Members {
		byName[m.Name] = m
	}

	size := byName["Size"]
	require.NotNil(t, size)
	assert.Equal(t, model.KindField, size.Kind)
	assert.Equal(t, model.AccessPublic, size.Accessibility)

	hidden := byName["hidden"]
	require.NotNil(t, hidden, "unexported symbols load; filtering happens at ingestion")
	assert.Equal(t, model.AccessPrivate, hidden.Accessibility)

	frob := byName["Frob"]
	require.NotNil(t, frob)
	assert.Equal(t, model.KindMethod, frob.Kind)
	require.Len(t, frob.Params, 1)
	assert.Equal(t, "n", frob.Params[0].Name)
	assert.Equal(t, "int", frob.Params[0].Type.FQN)
	require.NotNil(t, frob.Return)
	assert.Equal(t, "error", frob.Return.FQN, "universe types are never external")
	assert.False(t, frob.Return.External)
}

func TestLoader_CompanionSynthesis(t *testing.T) {
	ns := loadDemo(t).Module.Namespaces[0]

	ext := findType(ns, "GadgetExtensions")
	require.NotNil(t, ext)
	assert.True(t, ext.Static)

	byName := map[string]*Member{}
	for _, m := range ext.Members {
		byName[m.Name] = m
	}
	require.Contains(t, byName, "NewGadget")
	assert.Equal(t, model.KindConstructor, byName["NewGadget"].Kind)
	require.Contains(t, byName, "Polish")
	assert.Equal(t, model.KindMethod, byName["Polish"].Kind)
}

func TestLoader_InterfaceSatisfaction(t *testing.T) {
	gadget := findType(loadDemo(t).Module.Namespaces[0], "Gadget")
	require.NotNil(t, gadget)

	var names []string
	for _, i := range gadget.Implements {
		names = append(names, i.FQN)
	}
	assert.Contains(t, names, "demo.Frobber", "pointer receiver methods count")
}

func TestLoader_DocHarvest(t *testing.T) {
	docs := loadDemo(t).Docs

	assert.Equal(t, "Gadget frobs things.", docs["T:demo.Gadget"])
	assert.Equal(t, "Size is the gadget size.", docs["F:demo.Gadget.Size"])
	assert.Equal(t, "Frob does the frobbing.", docs["M:demo.Gadget.Frob"])
	assert.Equal(t, "Polish shines a gadget.", docs["M:demo.GadgetExtensions.Polish"])
	assert.Equal(t, "Thing is a nested fixture type.", docs["T:demo.sub.Thing"])
}

func TestLoader_MissingGoModFails(t *testing.T) {
	_, err := Loader{Dir: t.TempDir()}.Load()
	require.Error(t, err)
}
