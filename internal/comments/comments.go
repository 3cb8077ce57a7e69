// Package comments supplies structured documentation text keyed by canonical
// doc ID. Sources are either harvested from a module's syntax trees by the
// symbol loader or loaded from a YAML sidecar file.
package comments

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/moddoc/internal/errors"
	"git.home.luguber.info/inful/moddoc/internal/logfields"
)

// Doc holds the structured sections attached to one symbol.
type Doc struct {
	Summary    string            `yaml:"summary,omitempty"`
	Remarks    string            `yaml:"remarks,omitempty"`
	Examples   []string          `yaml:"examples,omitempty"`
	Params     map[string]string `yaml:"params,omitempty"`
	TypeParams map[string]string `yaml:"typeparams,omitempty"`
	Returns    string            `yaml:"returns,omitempty"`
	Exceptions []Exception       `yaml:"exceptions,omitempty"`
	SeeAlso    []string          `yaml:"seealso,omitempty"`
}

// Exception documents one error condition.
type Exception struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// Source resolves a canonical doc ID to its structured comment.
type Source interface {
	Lookup(docID string) (*Doc, bool)
}

// Empty is a Source with no entries, used when the comment sidecar is
// configured as optional and absent.
type Empty struct{}

func (Empty) Lookup(string) (*Doc, bool) { return nil, false }

// MapSource is an in-memory Source.
type MapSource map[string]*Doc

func (m MapSource) Lookup(docID string) (*Doc, bool) {
	d, ok := m[docID]
	return d, ok
}

// Multi layers sources: the first source with an entry for an ID wins, so a
// hand-maintained sidecar can override loader-harvested comments.
func Multi(sources ...Source) Source { return multiSource(sources) }

type multiSource []Source

func (m multiSource) Lookup(docID string) (*Doc, bool) {
	for _, s := range m {
		if s == nil {
			continue
		}
		if d, ok := s.Lookup(docID); ok {
			return d, ok
		}
	}
	return nil, false
}

// FromRawText wraps loader-harvested raw comment text into docs: the first
// paragraph becomes the summary, the remainder the remarks.
func FromRawText(raw map[string]string) MapSource {
	out := make(MapSource, len(raw))
	for id, text := range raw {
		summary, remarks := splitSummary(text)
		out[id] = &Doc{Summary: summary, Remarks: remarks}
	}
	return out
}

func splitSummary(text string) (summary, remarks string) {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "\n\n"); i >= 0 {
		return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+2:])
	}
	return text, ""
}

// LoadFile reads a YAML comment sidecar mapping doc IDs to docs. An
// unreadable or unparsable file is fatal for the module; a malformed markup
// section in one entry drops that entry only and loading continues.
func LoadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.CommentSourceUnreadable(path, err)
	}
	var raw map[string]*Doc
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.CommentSourceUnreadable(path, err)
	}
	out := make(MapSource, len(raw))
	for id, doc := range raw {
		if doc == nil {
			continue
		}
		if err := validateDoc(doc); err != nil {
			slog.Warn("Skipping comment entry with malformed markup",
				slog.String("doc_id", id), logfields.Error(err))
			continue
		}
		out[id] = doc
	}
	return out, nil
}

// validateDoc parses every markup-bearing section so malformed entries are
// caught at load time instead of mid-render.
func validateDoc(d *Doc) error {
	sections := []string{d.Summary, d.Remarks, d.Returns}
	sections = append(sections, d.Examples...)
	for _, s := range sections {
		if err := ValidateMarkup(s); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMarkup checks that text is well-formed markdown.
func ValidateMarkup(text string) error {
	if text == "" {
		return nil
	}
	if !utf8.ValidString(text) {
		return fmt.Errorf("invalid UTF-8 in markup")
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		return fmt.Errorf("parse markup: %w", err)
	}
	return nil
}
