package authz

import (
	"context"
	"fmt"
	"time"
)

// Service evaluates active permissions and records grants.
//
// Evaluation is live: every call reads the grant store, so a grant (or an
// out-of-band valid_to edit) takes effect on the next guarded request without
// re-authentication. The permission list returned at login is a point-in-time
// evaluation and is never consulted for authorization afterwards.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// ActivePermissions computes the set of permission names active for the user
// right now. A user with zero grants yields an empty set, not an error.
func (s *Service) ActivePermissions(ctx context.Context, userID int64) (PermissionSet, error) {
	return s.ActivePermissionsAt(ctx, userID, s.now().UTC())
}

// ActivePermissionsAt computes the active set at an explicit instant. Pure
// function of the grant table and the instant; no caching.
func (s *Service) ActivePermissionsAt(ctx context.Context, userID int64, at time.Time) (PermissionSet, error) {
	names, err := s.repo.ActivePermissionNames(ctx, userID, at)
	if err != nil {
		return nil, err
	}
	return NewPermissionSet(names), nil
}

// GrantPermission resolves both names and records an open-ended grant. The
// grant becomes valid immediately and has no expiry.
func (s *Service) GrantPermission(ctx context.Context, username, permission string) error {
	user, err := s.repo.FindUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("user %q: %w", username, err)
	}
	perm, err := s.repo.FindPermissionByName(ctx, permission)
	if err != nil {
		return fmt.Errorf("permission %q: %w", permission, err)
	}
	from := s.now().UTC()
	return s.repo.CreateGrant(ctx, Grant{
		UserID:       user.ID,
		PermissionID: perm.ID,
		ValidFrom:    &from,
	})
}

// ListUsers returns all user accounts for the admin listing.
func (s *Service) ListUsers(ctx context.Context) ([]UserRef, error) {
	return s.repo.ListUsers(ctx)
}

// ListPermissions returns all defined permissions.
func (s *Service) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.repo.ListPermissions(ctx)
}
