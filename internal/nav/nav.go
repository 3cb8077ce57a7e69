// Package nav models the site navigation document consumed by the external
// documentation host: a recursive group/page tree plus the polymorphic site
// configuration fields, with lossless round-trip (de)serialization and an
// idempotent tree merge for combining multiple ingestion runs.
package nav

import (
	"encoding/json"
	"fmt"
)

// Page is one navigation entry: either a bare page identifier or a nested
// group.
type Page struct {
	ID    string
	Group *Group
}

// IsGroup reports whether the entry is a nested group.
func (p Page) IsGroup() bool { return p.Group != nil }

func (p *Page) UnmarshalJSON(data []byte) error {
	switch shapeOf(data) {
	case shapeString:
		return json.Unmarshal(data, &p.ID)
	case shapeObject:
		// Group carries no custom shape dispatch of its own, so decoding the
		// object body recurses only through nested Page entries.
		g := &Group{}
		if err := json.Unmarshal(data, g); err != nil {
			return err
		}
		p.Group = g
		return nil
	default:
		return fmt.Errorf("page entry: expected string or group object")
	}
}

func (p Page) MarshalJSON() ([]byte, error) {
	if p.Group != nil {
		return json.Marshal(p.Group)
	}
	return json.Marshal(p.ID)
}

// Group is a labeled, ordered collection of page entries. Page order is
// render order.
type Group struct {
	Group string `json:"group"`
	Icon  *Icon  `json:"icon,omitempty"`
	Tag   string `json:"tag,omitempty"`
	Pages []Page `json:"pages,omitempty"`
}

// Tab is a top-level navigation tab.
type Tab struct {
	Tab   string `json:"tab"`
	Icon  *Icon  `json:"icon,omitempty"`
	Href  string `json:"href,omitempty"`
	Pages []Page `json:"pages,omitempty"`
}

// Anchor is a persistent navigation anchor.
type Anchor struct {
	Anchor string `json:"anchor"`
	Icon   *Icon  `json:"icon,omitempty"`
	Href   string `json:"href,omitempty"`
	Pages  []Page `json:"pages,omitempty"`
}

// Dropdown is a navigation dropdown.
type Dropdown struct {
	Dropdown    string `json:"dropdown"`
	Icon        *Icon  `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	Pages       []Page `json:"pages,omitempty"`
}

// Product is a product switcher entry.
type Product struct {
	Product     string `json:"product"`
	Icon        *Icon  `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	Pages       []Page `json:"pages,omitempty"`
}

// Language is a language switcher entry.
type Language struct {
	Language string `json:"language"`
	Pages    []Page `json:"pages,omitempty"`
}

// Version is a version switcher entry.
type Version struct {
	Version string `json:"version"`
	Pages   []Page `json:"pages,omitempty"`
}

// Document is the navigation tree: a page list plus independently optional
// top-level containers.
type Document struct {
	Pages     []Page     `json:"pages,omitempty"`
	Tabs      []Tab      `json:"tabs,omitempty"`
	Anchors   []Anchor   `json:"anchors,omitempty"`
	Dropdowns []Dropdown `json:"dropdowns,omitempty"`
	Products  []Product  `json:"products,omitempty"`
	Languages []Language `json:"languages,omitempty"`
	Versions  []Version  `json:"versions,omitempty"`
}

// Background is the site background configuration.
type Background struct {
	Image      *BackgroundImage `json:"image,omitempty"`
	Decoration string           `json:"decoration,omitempty"`
}

// APIConfig groups the API reference settings.
type APIConfig struct {
	OpenAPI *APISource `json:"openapi,omitempty"`
	Server  *ServerURL `json:"server,omitempty"`
}

// Navbar holds the top navigation bar settings.
type Navbar struct {
	Primary *Action `json:"primary,omitempty"`
}

// Config is the full site configuration document persisted for the
// documentation host.
type Config struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Colors      *Color      `json:"colors,omitempty"`
	Background  *Background `json:"background,omitempty"`
	API         *APIConfig  `json:"api,omitempty"`
	Navbar      *Navbar     `json:"navbar,omitempty"`
	Navigation  Document    `json:"navigation"`
}
