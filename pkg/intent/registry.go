package intent

import (
	"errors"
)

// State is the lifecycle position of a Registry.
type State int

const (
	StateEmpty State = iota
	StateIngested
	StateLinked
)

func (s State) String() string {
	switch s {
	case StateIngested:
		return "ingested"
	case StateLinked:
		return "linked"
	default:
		return "empty"
	}
}

// Registry indexes intents by stable name and by display name. Both indexes point at the same
// *Intent values. Display names are not unique on the platform: when two intents share one,
// the later ingested intent owns the display-name key and the collision is recorded in
// DuplicateDisplayNames.
//
// A Registry is built once (Ingest, then LinkParents) and then only read. It is not safe for
// concurrent mutation.
type Registry struct {
	byName        map[string]*Intent
	byDisplayName map[string]*Intent
	order         []*Intent
	position      map[string]int
	duplicates    []string
	state         State
}

func NewRegistry() *Registry {
	return &Registry{
		byName:        make(map[string]*Intent),
		byDisplayName: make(map[string]*Intent),
		position:      make(map[string]int),
	}
}

// Ingest wraps each record and indexes it. Nil records are skipped. A record whose name is
// already indexed replaces the earlier intent in place. Ingesting drops any previous links.
func (r *Registry) Ingest(records []*Record) {
	for _, record := range records {
		if record == nil {
			continue
		}

		it := New(record)

		if pos, ok := r.position[it.Name()]; ok {
			old := r.order[pos]
			if r.byDisplayName[old.DisplayName()] == old {
				delete(r.byDisplayName, old.DisplayName())
			}
			r.order[pos] = it
		} else {
			r.position[it.Name()] = len(r.order)
			r.order = append(r.order, it)
		}
		r.byName[it.Name()] = it

		if prev, ok := r.byDisplayName[it.DisplayName()]; ok && prev != it {
			r.duplicates = append(r.duplicates, it.DisplayName())
		}
		r.byDisplayName[it.DisplayName()] = it
	}

	if len(r.order) == 0 {
		return
	}

	r.clearLinks()
	r.state = StateIngested
}

// LinkParents rebuilds the followup forest from the parent references. Children are cleared
// first, so calling it again never duplicates entries. Every unresolvable parent reference
// yields a *ParentNotFoundError and every loop a *CycleError; the other links are still made
// and all failures are returned joined.
func (r *Registry) LinkParents() error {
	if r.state == StateEmpty {
		return ErrNotIngested
	}

	r.clearLinks()

	var errs []error
	for _, it := range r.order {
		ref := it.ParentName()
		if ref == "" {
			continue
		}

		parent, ok := r.byName[ref]
		if !ok {
			errs = append(errs, &ParentNotFoundError{Child: it.Name(), Parent: ref})
			continue
		}

		it.parent = parent
		parent.children = append(parent.children, it)
	}

	errs = append(errs, r.findCycles()...)
	r.state = StateLinked

	return errors.Join(errs...)
}

func (r *Registry) clearLinks() {
	for _, it := range r.order {
		it.parent = nil
		it.children = nil
	}
}

func (r *Registry) findCycles() []error {
	const (
		unvisited = iota
		onPath
		done
	)

	mark := make(map[*Intent]int, len(r.order))
	var errs []error

	for _, start := range r.order {
		if mark[start] != unvisited {
			continue
		}

		var path []*Intent
		cur := start
		for cur != nil && mark[cur] == unvisited {
			mark[cur] = onPath
			path = append(path, cur)
			cur = cur.parent
		}

		if cur != nil && mark[cur] == onPath {
			var names []string
			seen := false
			for _, it := range path {
				if it == cur {
					seen = true
				}
				if seen {
					names = append(names, it.Name())
				}
			}
			names = append(names, cur.Name())
			errs = append(errs, &CycleError{Names: names})
		}

		for _, it := range path {
			mark[it] = done
		}
	}

	return errs
}

func (r *Registry) State() State {
	return r.state
}

func (r *Registry) Len() int {
	return len(r.order)
}

func (r *Registry) ByName(name string) (*Intent, error) {
	it, ok := r.byName[name]
	if !ok {
		return nil, &NotFoundError{Key: "name", Value: name}
	}
	return it, nil
}

func (r *Registry) ByDisplayName(displayName string) (*Intent, error) {
	it, ok := r.byDisplayName[displayName]
	if !ok {
		return nil, &NotFoundError{Key: "display_name", Value: displayName}
	}
	return it, nil
}

// All returns every intent in ingestion order.
func (r *Registry) All() []*Intent {
	out := make([]*Intent, len(r.order))
	copy(out, r.order)
	return out
}

// DuplicateDisplayNames lists display names that were claimed by more than one intent.
func (r *Registry) DuplicateDisplayNames() []string {
	out := make([]string, len(r.duplicates))
	copy(out, r.duplicates)
	return out
}

// Roots returns the intents without a linked parent, in ingestion order. Before LinkParents
// this is every intent. Intents caught in a parent cycle are never roots.
func (r *Registry) Roots() []*Intent {
	var roots []*Intent
	for _, it := range r.order {
		if it.parent == nil {
			roots = append(roots, it)
		}
	}
	return roots
}

// Walk visits the forest depth first, parents before children, starting from Roots. Returning
// an error from fn stops the walk and returns that error.
func (r *Registry) Walk(fn func(it *Intent, depth int) error) error {
	var visit func(it *Intent, depth int) error
	visit = func(it *Intent, depth int) error {
		if err := fn(it, depth); err != nil {
			return err
		}
		for _, child := range it.children {
			if err := visit(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range r.Roots() {
		if err := visit(root, 0); err != nil {
			return err
		}
	}
	return nil
}

// Ancestors returns the linked parents of the named intent, nearest first.
func (r *Registry) Ancestors(name string) ([]*Intent, error) {
	it, err := r.ByName(name)
	if err != nil {
		return nil, err
	}

	var out []*Intent
	seen := map[*Intent]bool{it: true}
	for p := it.parent; p != nil && !seen[p]; p = p.parent {
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}
