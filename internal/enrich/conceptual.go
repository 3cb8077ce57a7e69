// Package enrich holds the built-in pipeline enrichers: conceptual content
// overrides and placeholder text.
package enrich

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/pipeline"
)

// Conceptual merges hand-written supplementary content into the graph. For an
// owned type with fully-qualified name N it looks for <root>/N.md; for a
// namespace, <root>/<namespace>.md. The first paragraph fills an empty
// summary, the remainder lands in remarks. The content root may be a local
// directory or a git URL fetched once per run.
type Conceptual struct {
	once sync.Once
	root string
	err  error
}

func (c *Conceptual) resolveRoot(ctx context.Context, cfg config.Project) (string, error) {
	c.once.Do(func() {
		c.root, c.err = EnsureLocal(ctx, cfg.ConceptualContent)
	})
	return c.root, c.err
}

func (c *Conceptual) Enrich(ctx context.Context, e pipeline.Entity, cfg config.Project) error {
	if cfg.ConceptualContent == "" || !e.Owned() || e.Member != nil {
		return nil
	}
	root, err := c.resolveRoot(ctx, cfg)
	if err != nil {
		return err
	}

	name := e.Namespace.Name
	if e.Type != nil {
		name = e.Type.FullName
	}
	if name == "" {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(root, name+".md"))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	summary, rest := splitContent(string(data))
	if e.Type != nil {
		if e.Type.Docs.Summary == "" {
			e.Type.Docs.Summary = summary
		} else if summary != "" {
			rest = joinParagraphs(summary, rest)
		}
		e.Type.Docs.Remarks = joinParagraphs(e.Type.Docs.Remarks, rest)
		return nil
	}
	e.Namespace.Usage = append(e.Namespace.Usage, joinParagraphs(summary, rest))
	return nil
}

func splitContent(text string) (first, rest string) {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "\n\n"); i >= 0 {
		return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+2:])
	}
	return text, ""
}

func joinParagraphs(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "\n\n" + b
	}
}
