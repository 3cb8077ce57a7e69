package enrich

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/pipeline"
)

// Placeholder fills empty summaries with visible placeholder text when the
// show-placeholders option is set, so undocumented members stand out in the
// rendered output instead of silently disappearing.
type Placeholder struct{}

func (Placeholder) Enrich(_ context.Context, e pipeline.Entity, cfg config.Project) error {
	if !cfg.ShowPlaceholders || !e.Owned() {
		return nil
	}
	switch {
	case e.Member != nil:
		if e.Member.Docs.Summary == "" {
			e.Member.Docs.Summary = placeholderText(e.Type.FullName + "." + e.Member.Name)
		}
	case e.Type != nil:
		if e.Type.Docs.Summary == "" {
			e.Type.Docs.Summary = placeholderText(e.Type.FullName)
		}
	}
	return nil
}

func placeholderText(name string) string {
	return fmt.Sprintf("Documentation for `%s` has not been written yet.", name)
}
