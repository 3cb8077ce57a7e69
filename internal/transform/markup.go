// Package transform holds the built-in pipeline transformers.
package transform

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/model"
	"git.home.luguber.info/inful/moddoc/internal/pipeline"
)

// Markup normalizes embedded markup in an entity's text sections: line
// endings are unified and each section must parse as markdown. A section that
// fails to parse leaves the entity's original text untouched and surfaces as
// a localized transform error.
type Markup struct {
	md goldmark.Markdown
}

// NewMarkup builds the transformer with GitHub-flavored tables enabled, since
// comment authors use tables routinely.
func NewMarkup() *Markup {
	return &Markup{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

func (t *Markup) Transform(_ context.Context, e pipeline.Entity, _ config.Project) error {
	if !e.Owned() {
		return nil
	}
	switch {
	case e.Member != nil:
		return t.normalizeDoc(&e.Member.Docs)
	case e.Type != nil:
		return t.normalizeDoc(&e.Type.Docs)
	default:
		return nil
	}
}

func (t *Markup) normalizeDoc(d *model.DocText) error {
	// Validate every section before touching any of them so a malformed
	// section leaves the whole entity's text as ingested.
	sections := []*string{&d.Summary, &d.Remarks}
	for i := range d.Examples {
		sections = append(sections, &d.Examples[i])
	}
	normalized := make([]string, len(sections))
	for i, s := range sections {
		n, err := t.normalize(*s)
		if err != nil {
			return err
		}
		normalized[i] = n
	}
	for i, s := range sections {
		*s = normalized[i]
	}
	return nil
}

func (t *Markup) normalize(text string) (string, error) {
	if text == "" {
		return "", nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var buf bytes.Buffer
	if err := t.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("parse markup: %w", err)
	}
	return strings.TrimRight(text, "\n"), nil
}
