package comments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_ParsesSidecar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.yaml")
	content := `
"T:Widgets.Gadget":
  summary: A gadget.
  remarks: Use sparingly.
  seealso:
    - Widgets.Widget
"M:Widgets.Gadget.Frob(Core.Container)":
  summary: Frobs the input.
  params:
    input: the container to frob
  returns: nothing useful
  exceptions:
    - type: ErrFull
      description: when the container is full
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	src, err := LoadFile(path)
	require.NoError(t, err)

	doc, ok := src.Lookup("T:Widgets.Gadget")
	require.True(t, ok)
	assert.Equal(t, "A gadget.", doc.Summary)
	assert.Equal(t, []string{"Widgets.Widget"}, doc.SeeAlso)

	doc, ok = src.Lookup("M:Widgets.Gadget.Frob(Core.Container)")
	require.True(t, ok)
	assert.Equal(t, "the container to frob", doc.Params["input"])
	assert.Equal(t, "nothing useful", doc.Returns)
	require.Len(t, doc.Exceptions, 1)
	assert.Equal(t, "ErrFull", doc.Exceptions[0].Type)
}

func TestLoadFile_MissingFileIsFatal(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadFile_UnparsableYAMLIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadFile_EmptyEntriesSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.yaml")
	content := "\"T:A.Good\":\n  summary: fine\n\"T:A.Empty\":\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	src, err := LoadFile(path)
	require.NoError(t, err)

	_, ok := src.Lookup("T:A.Good")
	assert.True(t, ok)
	_, ok = src.Lookup("T:A.Empty")
	assert.False(t, ok)
}

func TestMulti_FirstSourceWins(t *testing.T) {
	sidecar := MapSource{"T:A.B": {Summary: "curated"}}
	harvested := MapSource{
		"T:A.B": {Summary: "from source"},
		"T:A.C": {Summary: "only harvested"},
	}

	src := Multi(sidecar, nil, harvested)

	doc, ok := src.Lookup("T:A.B")
	require.True(t, ok)
	assert.Equal(t, "curated", doc.Summary)

	doc, ok = src.Lookup("T:A.C")
	require.True(t, ok)
	assert.Equal(t, "only harvested", doc.Summary)

	_, ok = src.Lookup("T:A.D")
	assert.False(t, ok)
}

func TestFromRawText_SplitsSummaryAndRemarks(t *testing.T) {
	src := FromRawText(map[string]string{
		"T:A.B": "First paragraph.\n\nSecond paragraph.\nStill second.",
		"T:A.C": "Only one paragraph.",
	})

	doc, ok := src.Lookup("T:A.B")
	require.True(t, ok)
	assert.Equal(t, "First paragraph.", doc.Summary)
	assert.Equal(t, "Second paragraph.\nStill second.", doc.Remarks)

	doc, ok = src.Lookup("T:A.C")
	require.True(t, ok)
	assert.Equal(t, "Only one paragraph.", doc.Summary)
	assert.Empty(t, doc.Remarks)
}

func TestValidateMarkup(t *testing.T) {
	assert.NoError(t, ValidateMarkup(""))
	assert.NoError(t, ValidateMarkup("plain text with `code` and [a link](https://example.com)"))
	assert.Error(t, ValidateMarkup("broken \xff\xfe bytes"))
}
