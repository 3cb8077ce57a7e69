// Shape-polymorphic field types. Each field may appear in JSON as a bare
// string, an array, or an object; decoding branches on the serialized shape
// and encoding picks the most compact shape that loses nothing.
//
// Object bodies are decoded through plain alias structs so the field-level
// shape dispatcher never re-enters itself while reading an object's internal
// structure.
package nav

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Icon is an icon reference: a bare name, or a name with style and library.
type Icon struct {
	Name    string
	Style   string
	Library string
}

// iconBody mirrors Icon's object shape for plain structural decoding.
type iconBody struct {
	Name    string `json:"name"`
	Style   string `json:"style,omitempty"`
	Library string `json:"library,omitempty"`
}

func (i *Icon) UnmarshalJSON(data []byte) error {
	switch shapeOf(data) {
	case shapeNull:
		*i = Icon{}
		return nil
	case shapeString:
		return json.Unmarshal(data, &i.Name)
	case shapeObject:
		var body iconBody
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*i = Icon{Name: body.Name, Style: body.Style, Library: body.Library}
		return nil
	default:
		return fmt.Errorf("icon: unsupported JSON shape")
	}
}

func (i Icon) MarshalJSON() ([]byte, error) {
	if i.Style == "" && i.Library == "" {
		return json.Marshal(i.Name)
	}
	return json.Marshal(iconBody{Name: i.Name, Style: i.Style, Library: i.Library})
}

// Color is a color value: a bare string, or a light/dark pair. The pair's
// members are plain strings, never nested color objects.
type Color struct {
	Light string
	Dark  string
}

type colorBody struct {
	Light string `json:"light"`
	Dark  string `json:"dark,omitempty"`
}

func (c *Color) UnmarshalJSON(data []byte) error {
	switch shapeOf(data) {
	case shapeNull:
		*c = Color{}
		return nil
	case shapeString:
		return json.Unmarshal(data, &c.Light)
	case shapeObject:
		var body colorBody
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*c = Color{Light: body.Light, Dark: body.Dark}
		return nil
	default:
		return fmt.Errorf("color: unsupported JSON shape")
	}
}

func (c Color) MarshalJSON() ([]byte, error) {
	if c.Dark == "" {
		return json.Marshal(c.Light)
	}
	return json.Marshal(colorBody{Light: c.Light, Dark: c.Dark})
}

// BackgroundImage is a background image source: one URL, or a light/dark pair.
type BackgroundImage struct {
	Light string
	Dark  string
}

type backgroundImageBody struct {
	Light string `json:"light"`
	Dark  string `json:"dark,omitempty"`
}

func (b *BackgroundImage) UnmarshalJSON(data []byte) error {
	switch shapeOf(data) {
	case shapeNull:
		*b = BackgroundImage{}
		return nil
	case shapeString:
		return json.Unmarshal(data, &b.Light)
	case shapeObject:
		var body backgroundImageBody
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*b = BackgroundImage{Light: body.Light, Dark: body.Dark}
		return nil
	default:
		return fmt.Errorf("background image: unsupported JSON shape")
	}
}

func (b BackgroundImage) MarshalJSON() ([]byte, error) {
	if b.Dark == "" {
		return json.Marshal(b.Light)
	}
	return json.Marshal(backgroundImageBody{Light: b.Light, Dark: b.Dark})
}

// StringList accepts a bare string or an array of strings.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	switch shapeOf(data) {
	case shapeNull:
		*s = nil
		return nil
	case shapeString:
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*s = StringList{one}
		return nil
	case shapeArray:
		var many []string
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*s = StringList(many)
		return nil
	default:
		return fmt.Errorf("string list: unsupported JSON shape")
	}
}

func (s StringList) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]string(s))
}

// APISource points at API specification documents: a single location, a list,
// or an object adding a generated-output directory.
type APISource struct {
	Sources   []string
	Directory string
}

type apiSourceBody struct {
	// Source itself accepts string-or-array but is decoded by the plain
	// StringList coder, not by the APISource dispatcher.
	Source    StringList `json:"source"`
	Directory string     `json:"directory,omitempty"`
}

func (a *APISource) UnmarshalJSON(data []byte) error {
	switch shapeOf(data) {
	case shapeNull:
		*a = APISource{}
		return nil
	case shapeString:
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*a = APISource{Sources: []string{one}}
		return nil
	case shapeArray:
		var many []string
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*a = APISource{Sources: many}
		return nil
	case shapeObject:
		var body apiSourceBody
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*a = APISource{Sources: body.Source, Directory: body.Directory}
		return nil
	default:
		return fmt.Errorf("api source: unsupported JSON shape")
	}
}

func (a APISource) MarshalJSON() ([]byte, error) {
	if a.Directory == "" {
		if len(a.Sources) == 1 {
			return json.Marshal(a.Sources[0])
		}
		return json.Marshal(a.Sources)
	}
	return json.Marshal(apiSourceBody{Source: StringList(a.Sources), Directory: a.Directory})
}

// ServerURL is one or more API server base URLs.
type ServerURL struct {
	URLs []string
}

func (s *ServerURL) UnmarshalJSON(data []byte) error {
	switch shapeOf(data) {
	case shapeNull:
		*s = ServerURL{}
		return nil
	case shapeString:
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*s = ServerURL{URLs: []string{one}}
		return nil
	case shapeArray:
		var many []string
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*s = ServerURL{URLs: many}
		return nil
	default:
		return fmt.Errorf("server url: unsupported JSON shape")
	}
}

func (s ServerURL) MarshalJSON() ([]byte, error) {
	if len(s.URLs) == 1 {
		return json.Marshal(s.URLs[0])
	}
	return json.Marshal(s.URLs)
}

// Action is the primary navigation action: a bare target reference, or a
// typed button with a label.
type Action struct {
	Type  string
	Label string
	Href  string
}

type actionBody struct {
	Type  string `json:"type,omitempty"`
	Label string `json:"label,omitempty"`
	Href  string `json:"href"`
}

func (a *Action) UnmarshalJSON(data []byte) error {
	switch shapeOf(data) {
	case shapeNull:
		*a = Action{}
		return nil
	case shapeString:
		return json.Unmarshal(data, &a.Href)
	case shapeObject:
		var body actionBody
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*a = Action{Type: body.Type, Label: body.Label, Href: body.Href}
		return nil
	default:
		return fmt.Errorf("action: unsupported JSON shape")
	}
}

func (a Action) MarshalJSON() ([]byte, error) {
	if a.Type == "" && a.Label == "" {
		return json.Marshal(a.Href)
	}
	return json.Marshal(actionBody{Type: a.Type, Label: a.Label, Href: a.Href})
}

// jsonShape classifies the first significant token of a JSON value.
type jsonShape int

const (
	shapeInvalid jsonShape = iota
	shapeNull
	shapeString
	shapeArray
	shapeObject
)

func shapeOf(data []byte) jsonShape {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return shapeInvalid
	}
	switch trimmed[0] {
	case 'n':
		return shapeNull
	case '"':
		return shapeString
	case '[':
		return shapeArray
	case '{':
		return shapeObject
	default:
		return shapeInvalid
	}
}
