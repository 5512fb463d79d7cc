package printer

import (
	"slices"
	"sync"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/lines"
)

// Rule prints the body of one node kind. Outer comments and parentheses are
// added by the Context.
type Rule func(c *Context, n *ast.Node) lines.Lines

// Registry maps node kinds to print rules.
type Registry struct {
	mu    sync.RWMutex
	rules map[ast.Kind]Rule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[ast.Kind]Rule)}
}

// Register adds a rule for kind, replacing any existing one.
func (r *Registry) Register(kind ast.Kind, rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[kind] = rule
}

// Lookup returns the rule for kind.
func (r *Registry) Lookup(kind ast.Kind) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[kind]
	return rule, ok
}

// Kinds returns every registered kind, sorted.
func (r *Registry) Kinds() []ast.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]ast.Kind, 0, len(r.rules))
	for kind := range r.rules {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)

	return kinds
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := NewRegistry()
	for kind, rule := range r.rules {
		out.rules[kind] = rule
	}

	return out
}

// DefaultRegistry holds the rules for every built-in kind.
//
//nolint:gochecknoglobals // Rules are registered once at init time.
var DefaultRegistry = NewRegistry()

// Register adds a rule to the default registry.
func Register(kind ast.Kind, rule Rule) {
	DefaultRegistry.Register(kind, rule)
}

func registerAll(rules map[ast.Kind]Rule) {
	for kind, rule := range rules {
		DefaultRegistry.Register(kind, rule)
	}
}
