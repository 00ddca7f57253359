package services

import "context"

// ResourceAuthorizer decides campaign-scoped access. Services call it before
// touching a resource.
//
// Every method returns domain.ErrUnauthorized for an empty userID and
// domain.ErrNotFound when access is denied, so callers cannot probe for the
// existence of resources they may not see.
type ResourceAuthorizer interface {
	// CanAccessCampaign allows any member of the campaign.
	CanAccessCampaign(ctx context.Context, userID, campaignID string) error

	// CanManageCampaign allows only the campaign owner.
	CanManageCampaign(ctx context.Context, userID, campaignID string) error

	// CanAccessNote allows any member of the note's campaign.
	CanAccessNote(ctx context.Context, userID, noteID string) error

	// CanEditNote allows the note's author and the campaign owner.
	CanEditNote(ctx context.Context, userID, noteID string) error
}
