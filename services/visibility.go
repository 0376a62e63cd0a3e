package services

import (
	"context"

	"github.com/hendrawanp/passvault-app/models"
)

// resolveVisible unions the three visibility scopes (global, per-user,
// per-organization) for the principal, keeps only notifications targeting
// the requesting client platform and drops duplicates. A notification
// carrying both a user id and an organization id shows up in two scope
// fetches, hence the dedupe.
func (s *ListingService) resolveVisible(ctx context.Context, principal Principal, clientType string) ([]models.Notification, error) {
	global, err := s.repo.ListGlobal(ctx)
	if err != nil {
		return nil, err
	}
	forUser, err := s.repo.ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	forOrgs, err := s.repo.ListByOrganizations(ctx, principal.OrganizationIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	visible := make([]models.Notification, 0, len(global)+len(forUser)+len(forOrgs))
	for _, scope := range [][]models.Notification{global, forUser, forOrgs} {
		for _, notif := range scope {
			if !matchesClientType(notif.ClientType, clientType) {
				continue
			}
			if _, dup := seen[notif.ID]; dup {
				continue
			}
			seen[notif.ID] = struct{}{}
			visible = append(visible, notif)
		}
	}
	return visible, nil
}

// VisibleTo reports whether a single notification falls inside the
// principal's visibility scope. Used by the status mutation endpoints to
// authorize marking a notification read or deleted.
func VisibleTo(notif *models.Notification, principal Principal) bool {
	if notif.Global {
		return true
	}
	if notif.UserID != nil && *notif.UserID == principal.UserID {
		return true
	}
	if notif.OrganizationID != nil {
		for _, orgID := range principal.OrganizationIDs {
			if orgID == *notif.OrganizationID {
				return true
			}
		}
	}
	return false
}

func matchesClientType(target, requesting string) bool {
	return target == models.ClientTypeAll || target == requesting
}
