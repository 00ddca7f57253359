package campaign

import (
	"context"

	"lorekeeper/internal/domain/models/campaign"
)

// TagRepository stores campaign tags.
type TagRepository interface {
	// Create inserts the tag. A duplicate name within the campaign yields a
	// *domain.ConflictError.
	Create(ctx context.Context, tag *campaign.Tag) error

	// GetByID returns the tag only if it belongs to campaignID, otherwise
	// domain.ErrNotFound.
	GetByID(ctx context.Context, campaignID, tagID string) (*campaign.Tag, error)

	// ListByCampaign returns the campaign's tags ordered by name.
	ListByCampaign(ctx context.Context, campaignID string) ([]campaign.Tag, error)

	// Delete removes the tag; its block associations cascade.
	Delete(ctx context.Context, campaignID, tagID string) error
}
