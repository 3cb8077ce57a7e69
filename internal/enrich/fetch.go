package enrich

import (
	"context"
	"os"
	"strings"

	ggit "github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/moddoc/internal/errors"
)

// EnsureLocal makes a conceptual content source available on disk. Local
// directories pass through; git URLs are shallow-cloned into a temp
// directory that lives for the rest of the run.
func EnsureLocal(ctx context.Context, source string) (string, error) {
	if !isGitURL(source) {
		return source, nil
	}
	dir, err := os.MkdirTemp("", "moddoc-content-*")
	if err != nil {
		return "", errors.WorkspaceError("create content workspace", err)
	}
	_, err = ggit.PlainCloneContext(ctx, dir, false, &ggit.CloneOptions{
		URL:   source,
		Depth: 1,
	})
	if err != nil {
		return "", errors.GitFetchError(source, err)
	}
	return dir, nil
}

func isGitURL(s string) bool {
	if strings.HasSuffix(s, ".git") {
		return true
	}
	return strings.HasPrefix(s, "git@") || strings.HasPrefix(s, "ssh://")
}
