// Package authz implements the permission grant store, the temporal
// permission evaluator and the route guard.
package authz

import (
	"sort"
	"time"

	"github.com/warebase/warebase/internal/shared"
)

// Permission represents an atomic capability.
type Permission struct {
	ID          int64
	Name        string
	Description string
}

// Grant assigns one permission to one user, optionally time-bounded.
// A nil ValidFrom means valid since forever, a nil ValidTo means valid
// indefinitely. The same permission may be granted to the same user more
// than once with different windows; the union of the windows applies.
type Grant struct {
	ID           int64
	UserID       int64
	PermissionID int64
	ValidFrom    *time.Time
	ValidTo      *time.Time
}

// ActiveAt reports whether the grant window covers t. Both window bounds are
// inclusive.
func (g Grant) ActiveAt(t time.Time) bool {
	if g.ValidFrom != nil && g.ValidFrom.After(t) {
		return false
	}
	if g.ValidTo != nil && g.ValidTo.Before(t) {
		return false
	}
	return true
}

// UserRef identifies a user for admin listings and grant resolution.
type UserRef struct {
	ID       int64
	Username string
}

// PermissionSet is the deduplicated set of permission names active for a user
// at one instant.
type PermissionSet map[string]struct{}

// NewPermissionSet builds a set from names, collapsing duplicates.
func NewPermissionSet(names []string) PermissionSet {
	set := make(PermissionSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Allows reports whether the set satisfies a required permission name.
// The wildcard grant matches any name, including names no permission row
// exists for; the evaluator returns the literal "*" and the comparison is
// special-cased here, at the single point both the guard and the identity
// endpoints go through.
func (s PermissionSet) Allows(name string) bool {
	if _, ok := s[shared.PermWildcard]; ok {
		return true
	}
	_, ok := s[name]
	return ok
}

// Names returns the set in sorted order for stable JSON output.
func (s PermissionSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
