package ingest

import (
	"fmt"
	"strings"
	"sync"

	"git.home.luguber.info/inful/moddoc/internal/metrics"
	"git.home.luguber.info/inful/moddoc/internal/model"
	"git.home.luguber.info/inful/moddoc/internal/symbols"
)

// Resolver deduplicates externally-defined types referenced by the module
// under ingestion. It owns the run-scoped type map: the first resolution of a
// fully-qualified key creates an external-reference node, places it in its
// namespace, and caches it; every later resolution returns the same node.
//
// Resolve is the single mutation point for the cache and is safe for
// concurrent callers.
type Resolver struct {
	mu       sync.Mutex
	assembly *model.Assembly
	recorder metrics.Recorder
	cache    map[string]*model.TypeNode
}

func newResolver(a *model.Assembly, rec metrics.Recorder) *Resolver {
	return &Resolver{assembly: a, recorder: rec, cache: make(map[string]*model.TypeNode)}
}

// Resolve returns the node for ref, creating and caching it on first use.
// Conflicting reference metadata degrades the node to the error kind instead
// of failing the run.
func (r *Resolver) Resolve(ref *symbols.TypeRef) *model.TypeNode {
	r.mu.Lock()
	defer r.mu.Unlock()

	if node, ok := r.cache[ref.FQN]; ok {
		r.recorder.IncResolverResolution(true)
		return node
	}
	r.recorder.IncResolverResolution(false)

	kind := ref.Kind
	if kind == "" {
		kind = model.KindClass
	}
	if ref.Unresolved {
		kind = model.KindError
	}
	node := &model.TypeNode{
		Name:                ref.Name,
		FullName:            ref.FQN,
		Kind:                kind,
		IsExternalReference: true,
	}
	node.Docs.Summary = fallbackSummary(ref)

	ns := r.assembly.EnsureNamespace(ref.Namespace)
	ns.AddType(node)
	r.cache[ref.FQN] = node
	return node
}

// Cached returns the already-resolved node for a key, if any. Used by tests
// and reports; never creates.
func (r *Resolver) Cached(fqn string) *model.TypeNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache[fqn]
}

// stdlibRoots lists top-level standard library namespaces that get a link to
// official documentation as their fallback summary.
var stdlibRoots = map[string]bool{
	"archive": true, "bufio": true, "bytes": true, "cmp": true, "compress": true,
	"container": true, "context": true, "crypto": true, "database": true,
	"encoding": true, "errors": true, "expvar": true, "flag": true, "fmt": true,
	"go": true, "hash": true, "html": true, "image": true, "io": true,
	"iter": true, "log": true, "maps": true, "math": true, "mime": true,
	"net": true, "os": true, "path": true, "reflect": true, "regexp": true,
	"runtime": true, "slices": true, "sort": true, "strconv": true,
	"strings": true, "sync": true, "syscall": true, "time": true,
	"unicode": true, "unsafe": true,
}

// fallbackSummary generates the summary for an external-reference node: a
// documentation link for recognized standard library types, a generic
// placeholder otherwise.
func fallbackSummary(ref *symbols.TypeRef) string {
	root := ref.Namespace
	if i := strings.Index(root, "."); i >= 0 {
		root = root[:i]
	}
	if stdlibRoots[root] {
		pkgPath := strings.ReplaceAll(ref.Namespace, ".", "/")
		return fmt.Sprintf("See the official documentation for [%s](https://pkg.go.dev/%s#%s).",
			ref.Name, pkgPath, ref.Name)
	}
	return fmt.Sprintf("`%s` is defined outside this module; refer to its defining module for details.", ref.FQN)
}
