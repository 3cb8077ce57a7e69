// Package config defines the project configuration: where rendered output
// goes, which members are documented, and how namespace names map onto files.
// Validation is fail-fast and runs before any ingestion starts.
package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/moddoc/internal/errors"
	"git.home.luguber.info/inful/moddoc/internal/model"
)

// NamingMode selects how namespace names map to rendered files.
type NamingMode string

const (
	// NamingFile flattens dotted namespace names into one file per namespace
	// using the configured separator.
	NamingFile NamingMode = "file"
	// NamingFolder maps each namespace segment to a folder and emits one file
	// per type.
	NamingFolder NamingMode = "folder"
)

// ModuleInput names one (module, comment sidecar) pair in a batch.
type ModuleInput struct {
	Path string `yaml:"path"`
	// Comments optionally points at a YAML comment sidecar. Empty means the
	// loader-harvested doc comments stand alone.
	Comments string `yaml:"comments,omitempty"`
}

// Project is the full project configuration.
type Project struct {
	OutputRoot            string        `yaml:"output_root"`
	ConceptualContent     string        `yaml:"conceptual_content,omitempty"` // directory or git URL
	NamingMode            NamingMode    `yaml:"naming_mode,omitempty"`
	NamespaceSeparator    string        `yaml:"namespace_separator,omitempty"`
	IncludedMembers       []string      `yaml:"included_members,omitempty"`
	CreateExternalRefs    bool          `yaml:"create_external_references"`
	IgnoreGlobalNamespace bool          `yaml:"ignore_global_namespace"`
	ShowPlaceholders      bool          `yaml:"show_placeholders,omitempty"`
	Modules               []ModuleInput `yaml:"modules,omitempty"`

	// Navigation is the site navigation document maintained across runs.
	Navigation string `yaml:"navigation,omitempty"`
	// StateDB is the optional run-history database path.
	StateDB string `yaml:"state_db,omitempty"`
}

// Default returns a Project with documented defaults applied.
func Default() Project {
	return Project{
		OutputRoot:            "./docs",
		NamingMode:            NamingFile,
		NamespaceSeparator:    "-",
		IncludedMembers:       []string{string(model.AccessPublic)},
		CreateExternalRefs:    true,
		IgnoreGlobalNamespace: true,
	}
}

// Load reads a project file over the defaults, applies environment overrides,
// and validates. Absent fields keep their default values.
func Load(path string) (Project, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, errors.ConfigNotFound(path)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "parse configuration")
	}
	p.applyEnv()
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Validate checks option values. Any failure aborts before ingestion.
func (p Project) Validate() error {
	if p.OutputRoot == "" {
		return errors.ConfigInvalid("output_root", "must not be empty")
	}
	switch p.NamingMode {
	case NamingFile, NamingFolder:
	default:
		return errors.ConfigInvalid("naming_mode", fmt.Sprintf("unknown mode %q", p.NamingMode))
	}
	if p.NamingMode == NamingFile {
		if p.NamespaceSeparator == "" {
			return errors.ConfigInvalid("namespace_separator", "must not be empty in file mode")
		}
		if utf8.RuneCountInString(p.NamespaceSeparator) != 1 {
			return errors.ConfigInvalid("namespace_separator", "must be a single character")
		}
		if p.NamespaceSeparator == "." || p.NamespaceSeparator == "/" {
			return errors.ConfigInvalid("namespace_separator", "separator conflicts with path syntax")
		}
	}
	if len(p.IncludedMembers) == 0 {
		return errors.ConfigInvalid("included_members", "must include at least one accessibility level")
	}
	for _, m := range p.IncludedMembers {
		switch model.Accessibility(m) {
		case model.AccessPublic, model.AccessProtected, model.AccessInternal, model.AccessPrivate:
		default:
			return errors.ConfigInvalid("included_members", fmt.Sprintf("unknown accessibility %q", m))
		}
	}
	return nil
}

// AccessSet converts the included-members list to the filter set used during
// ingestion.
func (p Project) AccessSet() model.AccessSet {
	s := make(model.AccessSet, len(p.IncludedMembers))
	for _, m := range p.IncludedMembers {
		s[model.Accessibility(m)] = true
	}
	return s
}
