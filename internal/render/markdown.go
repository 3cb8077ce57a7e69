package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/model"
)

// titleCaser renders kind and section labels ("class" → "Class").
var titleCaser = cases.Title(language.Und)

// Markdown renders the graph as markdown pages: one file per namespace in
// file mode, one file per type under namespace folders in folder mode.
type Markdown struct{}

func (Markdown) Name() string { return "markdown" }

func (Markdown) Render(ctx context.Context, a *model.Assembly, outputRoot string, cfg config.Project) error {
	for _, ns := range a.Namespaces {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cfg.NamingMode == config.NamingFolder {
			if err := renderNamespaceFolder(ns, outputRoot, cfg); err != nil {
				return err
			}
			continue
		}
		if err := renderNamespaceFile(ns, outputRoot, cfg); err != nil {
			return err
		}
	}
	return nil
}

func renderNamespaceFile(ns *model.Namespace, outputRoot string, cfg config.Project) error {
	var b strings.Builder
	writeFrontmatter(&b, displayName(ns))
	fmt.Fprintf(&b, "# %s\n\n", displayName(ns))
	writeNamespaceProse(&b, ns)
	for _, t := range ns.Types {
		writeType(&b, t, 2)
	}
	path := filepath.Join(outputRoot, NamespacePath(ns.Name, cfg, ".md"))
	return writeFile(path, b.String())
}

func renderNamespaceFolder(ns *model.Namespace, outputRoot string, cfg config.Project) error {
	for _, t := range ns.Types {
		var b strings.Builder
		writeFrontmatter(&b, t.FullName)
		writeType(&b, t, 1)
		path := filepath.Join(outputRoot, TypePath(ns.Name, t.Name, cfg, ".md"))
		if err := writeFile(path, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func displayName(ns *model.Namespace) string {
	if ns.DisplayName != "" {
		return ns.DisplayName
	}
	return ns.Name
}

func writeFrontmatter(b *strings.Builder, title string) {
	fmt.Fprintf(b, "---\ntitle: %q\n---\n\n", title)
}

func writeNamespaceProse(b *strings.Builder, ns *model.Namespace) {
	writeList(b, "Usage", ns.Usage)
	writeList(b, "Examples", ns.Examples)
	writeList(b, "Related APIs", ns.RelatedAPIs)
}

func writeType(b *strings.Builder, t *model.TypeNode, depth int) {
	h := strings.Repeat("#", depth)
	fmt.Fprintf(b, "%s %s %s\n\n", h, titleCaser.String(string(t.Kind)), t.Name)
	if t.IsExternalReference {
		fmt.Fprintf(b, "*External reference*\n\n")
	}
	if t.BaseType != nil {
		fmt.Fprintf(b, "Inherits from `%s`.\n\n", t.BaseType.FullName)
	}
	if len(t.TypeParams) > 0 {
		fmt.Fprintf(b, "%s# Type parameters\n\n", h)
		for _, tp := range t.TypeParams {
			fmt.Fprintf(b, "- `%s` %s\n", tp.Name, tp.Description)
		}
		b.WriteString("\n")
	}
	writeDocText(b, t.Docs)
	for _, m := range t.Members {
		writeMember(b, m, depth+1)
	}
	writeList(b, "Related APIs", t.RelatedAPIs)
}

func writeMember(b *strings.Builder, m *model.Member, depth int) {
	h := strings.Repeat("#", depth)
	label := titleCaser.String(string(m.Kind))
	if m.IsExtensionMethod {
		label = "Extension " + strings.ToLower(label)
	}
	fmt.Fprintf(b, "%s %s %s\n\n", h, label, m.Name)
	if m.Signature != "" {
		fmt.Fprintf(b, "```\n%s\n```\n\n", m.Signature)
	}
	writeDocText(b, m.Docs)
	if len(m.Parameters) > 0 {
		fmt.Fprintf(b, "| Parameter | Type | Description |\n|---|---|---|\n")
		for _, p := range m.Parameters {
			fmt.Fprintf(b, "| `%s` | `%s` | %s |\n", p.Name, p.Type, p.Description)
		}
		b.WriteString("\n")
	}
	if m.Returns != nil && m.Returns.Type != "" {
		fmt.Fprintf(b, "Returns `%s`. %s\n\n", m.Returns.Type, m.Returns.Description)
	}
}

func writeDocText(b *strings.Builder, d model.DocText) {
	if d.Summary != "" {
		fmt.Fprintf(b, "%s\n\n", d.Summary)
	}
	if d.Remarks != "" {
		fmt.Fprintf(b, "%s\n\n", d.Remarks)
	}
	for _, ex := range d.Examples {
		fmt.Fprintf(b, "```\n%s\n```\n\n", ex)
	}
	if len(d.Exceptions) > 0 {
		b.WriteString("Errors:\n\n")
		for _, e := range d.Exceptions {
			fmt.Fprintf(b, "- `%s` %s\n", e.Type, e.Description)
		}
		b.WriteString("\n")
	}
	writeList(b, "See also", d.SeeAlso)
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n\n", heading)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
