// Package render provides the built-in renderers: markdown pages, a YAML
// manifest, and the site navigation document. Output paths derive
// deterministically from the file-naming configuration.
package render

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/moddoc/internal/config"
)

// globalSegment stands in for the empty namespace in file names.
const globalSegment = "global"

// NamespacePath maps a dotted namespace to its output location relative to
// the output root. File mode flattens the name with the configured separator
// into a single file; folder mode maps each segment to a directory.
func NamespacePath(ns string, cfg config.Project, ext string) string {
	if ns == "" {
		ns = globalSegment
	}
	if cfg.NamingMode == config.NamingFolder {
		return filepath.Join(strings.Split(ns, ".")...)
	}
	flat := strings.ReplaceAll(ns, ".", cfg.NamespaceSeparator)
	return flat + ext
}

// TypePath maps one type to its output file in folder mode: the namespace
// directory plus one file per type.
func TypePath(ns, typeName string, cfg config.Project, ext string) string {
	return filepath.Join(NamespacePath(ns, cfg, ""), typeName+ext)
}

// PageID is the navigation page identifier for a namespace or type: the
// output path without extension, slash-separated regardless of platform.
func PageID(path string) string {
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return filepath.ToSlash(path)
}
