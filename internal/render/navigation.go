package render

import (
	"context"
	"path/filepath"

	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/model"
	"git.home.luguber.info/inful/moddoc/internal/nav"
)

// Navigation maintains the site navigation document: it derives a group tree
// from the graph and merges it into the existing document, so repeated runs
// and multi-module batches accumulate without duplication.
type Navigation struct{}

func (Navigation) Name() string { return "navigation" }

func (Navigation) Render(ctx context.Context, a *model.Assembly, outputRoot string, cfg config.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := cfg.Navigation
	if path == "" {
		path = filepath.Join(outputRoot, "docs.json")
	}

	existing, err := nav.LoadConfig(path)
	if err != nil {
		return err
	}
	if existing.Name == "" {
		existing.Name = a.Name
	}
	incoming := BuildNavigation(a, cfg)
	existing.Navigation.Merge(incoming)
	return nav.SaveConfig(path, existing)
}

// BuildNavigation derives the navigation tree for one assembly: a group per
// namespace, with one page per namespace in file mode or per type in folder
// mode. Page order follows graph document order.
func BuildNavigation(a *model.Assembly, cfg config.Project) *nav.Document {
	group := nav.Group{Group: a.Name}
	for _, ns := range a.Namespaces {
		if cfg.NamingMode == config.NamingFolder {
			sub := nav.Group{Group: ns.Name}
			for _, t := range ns.Types {
				sub.Pages = append(sub.Pages, nav.Page{ID: PageID(TypePath(ns.Name, t.Name, cfg, ".md"))})
			}
			group.Pages = append(group.Pages, nav.Page{Group: &sub})
			continue
		}
		group.Pages = append(group.Pages, nav.Page{ID: PageID(NamespacePath(ns.Name, cfg, ".md"))})
	}
	return &nav.Document{Pages: []nav.Page{{Group: &group}}}
}
