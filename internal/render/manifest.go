package render

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/model"
)

// Manifest renders a machine-readable summary of the graph so downstream
// tooling can diff builds without parsing markdown.
type Manifest struct{}

func (Manifest) Name() string { return "manifest" }

type manifestDoc struct {
	Assembly   string              `yaml:"assembly"`
	Namespaces []manifestNamespace `yaml:"namespaces"`
}

type manifestNamespace struct {
	Name  string         `yaml:"name"`
	Types []manifestType `yaml:"types"`
}

type manifestType struct {
	Name     string `yaml:"name"`
	FullName string `yaml:"full_name"`
	Kind     string `yaml:"kind"`
	External bool   `yaml:"external,omitempty"`
	Members  int    `yaml:"members"`
	Page     string `yaml:"page"`
}

func (Manifest) Render(ctx context.Context, a *model.Assembly, outputRoot string, cfg config.Project) error {
	doc := manifestDoc{Assembly: a.Name}
	for _, ns := range a.Namespaces {
		if err := ctx.Err(); err != nil {
			return err
		}
		mns := manifestNamespace{Name: ns.Name}
		for _, t := range ns.Types {
			page := NamespacePath(ns.Name, cfg, ".md")
			if cfg.NamingMode == config.NamingFolder {
				page = TypePath(ns.Name, t.Name, cfg, ".md")
			}
			mns.Types = append(mns.Types, manifestType{
				Name:     t.Name,
				FullName: t.FullName,
				Kind:     string(t.Kind),
				External: t.IsExternalReference,
				Members:  len(t.Members),
				Page:     PageID(page),
			})
		}
		doc.Namespaces = append(doc.Namespaces, mns)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	path := filepath.Join(outputRoot, "manifest.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
