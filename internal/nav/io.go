package nav

import (
	"encoding/json"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/moddoc/internal/errors"
)

// LoadConfig reads a site configuration document. A missing file yields an
// empty config so first runs start from nothing.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, errors.WorkspaceError("read navigation document", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryMerge, errors.SeverityFatal, "parse navigation document")
	}
	return &cfg, nil
}

// SaveConfig writes the document atomically: full temp-file write, then
// rename, so the hosting collaborator never observes a partial document.
func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.InternalError("encode navigation document", err)
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WorkspaceError("create navigation directory", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.WorkspaceError("write navigation document", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.WorkspaceError("replace navigation document", err)
	}
	return nil
}
