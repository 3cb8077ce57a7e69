package nav

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIcon_Shapes(t *testing.T) {
	var i Icon
	require.NoError(t, json.Unmarshal([]byte(`"rocket"`), &i))
	assert.Equal(t, Icon{Name: "rocket"}, i)

	require.NoError(t, json.Unmarshal([]byte(`{"name":"rocket","style":"solid","library":"fa"}`), &i))
	assert.Equal(t, Icon{Name: "rocket", Style: "solid", Library: "fa"}, i)

	require.NoError(t, json.Unmarshal([]byte(`null`), &i))
	assert.Equal(t, Icon{}, i)

	assert.Error(t, json.Unmarshal([]byte(`42`), &i))
}

func TestIcon_WritesMostCompactShape(t *testing.T) {
	out, err := json.Marshal(Icon{Name: "rocket"})
	require.NoError(t, err)
	assert.Equal(t, `"rocket"`, string(out))

	out, err = json.Marshal(Icon{Name: "rocket", Style: "solid"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"rocket","style":"solid"}`, string(out))
}

func TestColor_Shapes(t *testing.T) {
	var c Color
	require.NoError(t, json.Unmarshal([]byte(`"#16A34A"`), &c))
	assert.Equal(t, Color{Light: "#16A34A"}, c)

	require.NoError(t, json.Unmarshal([]byte(`{"light":"#16A34A","dark":"#15803D"}`), &c))
	assert.Equal(t, Color{Light: "#16A34A", Dark: "#15803D"}, c)

	out, err := json.Marshal(Color{Light: "#16A34A"})
	require.NoError(t, err)
	assert.Equal(t, `"#16A34A"`, string(out))
}

func TestStringList_Shapes(t *testing.T) {
	var s StringList
	require.NoError(t, json.Unmarshal([]byte(`"one"`), &s))
	assert.Equal(t, StringList{"one"}, s)

	require.NoError(t, json.Unmarshal([]byte(`["one","two"]`), &s))
	assert.Equal(t, StringList{"one", "two"}, s)

	out, err := json.Marshal(StringList{"one"})
	require.NoError(t, err)
	assert.Equal(t, `"one"`, string(out))

	out, err = json.Marshal(StringList{"one", "two"})
	require.NoError(t, err)
	assert.Equal(t, `["one","two"]`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &s))
}

func TestAPISource_Shapes(t *testing.T) {
	var a APISource
	require.NoError(t, json.Unmarshal([]byte(`"openapi.json"`), &a))
	assert.Equal(t, APISource{Sources: []string{"openapi.json"}}, a)

	require.NoError(t, json.Unmarshal([]byte(`["a.json","b.json"]`), &a))
	assert.Equal(t, APISource{Sources: []string{"a.json", "b.json"}}, a)

	require.NoError(t, json.Unmarshal([]byte(`{"source":"a.json","directory":"api"}`), &a))
	assert.Equal(t, APISource{Sources: []string{"a.json"}, Directory: "api"}, a)

	require.NoError(t, json.Unmarshal([]byte(`{"source":["a.json","b.json"],"directory":"api"}`), &a))
	assert.Equal(t, APISource{Sources: []string{"a.json", "b.json"}, Directory: "api"}, a)
}

func TestServerURL_Shapes(t *testing.T) {
	var s ServerURL
	require.NoError(t, json.Unmarshal([]byte(`"https://api.example.com"`), &s))
	assert.Equal(t, ServerURL{URLs: []string{"https://api.example.com"}}, s)

	require.NoError(t, json.Unmarshal([]byte(`["https://a","https://b"]`), &s))
	assert.Equal(t, ServerURL{URLs: []string{"https://a", "https://b"}}, s)

	// Object form is not part of the contract for server URLs.
	assert.Error(t, json.Unmarshal([]byte(`{"url":"https://a"}`), &s))
}

func TestAction_Shapes(t *testing.T) {
	var a Action
	require.NoError(t, json.Unmarshal([]byte(`"/getting-started"`), &a))
	assert.Equal(t, Action{Href: "/getting-started"}, a)

	require.NoError(t, json.Unmarshal([]byte(`{"type":"button","label":"Start","href":"/getting-started"}`), &a))
	assert.Equal(t, Action{Type: "button", Label: "Start", Href: "/getting-started"}, a)

	out, err := json.Marshal(Action{Href: "/x"})
	require.NoError(t, err)
	assert.Equal(t, `"/x"`, string(out))
}

// roundTrip marshals v, unmarshals into a fresh value, and marshals again;
// both serialized forms must match so Write(Read(x)) == x byte-for-byte.
func roundTrip[T any](t *testing.T, v T) {
	t.Helper()
	first, err := json.Marshal(v)
	require.NoError(t, err)
	var decoded T
	require.NoError(t, json.Unmarshal(first, &decoded))
	second, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRoundTrip_AllFieldShapes(t *testing.T) {
	roundTrip(t, Icon{Name: "rocket"})
	roundTrip(t, Icon{Name: "rocket", Style: "solid", Library: "fa"})
	roundTrip(t, Color{Light: "#fff"})
	roundTrip(t, Color{Light: "#fff", Dark: "#000"})
	roundTrip(t, BackgroundImage{Light: "/bg.png"})
	roundTrip(t, BackgroundImage{Light: "/l.png", Dark: "/d.png"})
	roundTrip(t, StringList{"a"})
	roundTrip(t, StringList{"a", "b"})
	roundTrip(t, APISource{Sources: []string{"spec.json"}})
	roundTrip(t, APISource{Sources: []string{"a", "b"}, Directory: "out"})
	roundTrip(t, ServerURL{URLs: []string{"https://api"}})
	roundTrip(t, ServerURL{URLs: []string{"https://a", "https://b"}})
	roundTrip(t, Action{Href: "/go"})
	roundTrip(t, Action{Type: "button", Label: "Go", Href: "/go"})
}
