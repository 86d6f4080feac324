package figure

import (
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/figforge/pkg/errors"
)

// Registry holds figures by name. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	figures map[string]Figure
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{figures: make(map[string]Figure)}
}

// Register adds f. Names must be valid and unique.
func (r *Registry) Register(f Figure) error {
	name := f.Name()
	if err := errors.ValidateFigureName(name); err != nil {
		return err
	}
	if w, h := f.Size(); w <= 0 || h <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "figure %s has invalid size %dx%d", name, w, h)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.figures[name]; ok {
		return errors.New(errors.ErrCodeDuplicate, "figure %s is already registered", name)
	}
	r.figures[name] = f
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// static registration of built-in figures.
func (r *Registry) MustRegister(figs ...Figure) *Registry {
	for _, f := range figs {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
	return r
}

// Lookup returns the figure with the given name.
func (r *Registry) Lookup(name string) (Figure, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.figures[name]
	return f, ok
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.figures))
	for name := range r.figures {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns all figures sorted by name.
func (r *Registry) All() []Figure {
	names := r.Names()
	out := make([]Figure, 0, len(names))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range names {
		out = append(out, r.figures[name])
	}
	return out
}

// Len returns the number of registered figures.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.figures)
}

// Select resolves names to figures, preserving order and dropping
// duplicates. An empty selection means every figure; "tag:<tag>" selects
// every figure carrying that tag. Unknown names and tags are reported
// together in one FIGURE_NOT_FOUND error.
func (r *Registry) Select(names []string) ([]Figure, error) {
	if len(names) == 0 {
		return r.All(), nil
	}
	var (
		out     []Figure
		missing []string
		seen    = make(map[string]bool)
	)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if tag, ok := strings.CutPrefix(name, "tag:"); ok {
			tagged := r.withTag(tag)
			if len(tagged) == 0 {
				missing = append(missing, name)
			}
			for _, f := range tagged {
				if !seen[f.Name()] {
					seen[f.Name()] = true
					out = append(out, f)
				}
			}
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		f, ok := r.Lookup(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		out = append(out, f)
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeFigureNotFound, "unknown figure(s): %s", strings.Join(missing, ", "))
	}
	return out, nil
}

func (r *Registry) withTag(tag string) []Figure {
	var out []Figure
	for _, f := range r.All() {
		if slices.Contains(TagsOf(f), tag) {
			out = append(out, f)
		}
	}
	return out
}
