package campaign

import (
	"context"

	"lorekeeper/internal/domain/models/campaign"
)

// CampaignRepository stores campaigns and their members.
type CampaignRepository interface {
	// Create inserts the campaign and fills ID and timestamps.
	Create(ctx context.Context, c *campaign.Campaign) error

	// GetByID returns a live campaign, or domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*campaign.Campaign, error)

	// ListForUser returns the live campaigns the user is a member of, newest first.
	ListForUser(ctx context.Context, userID string) ([]campaign.Campaign, error)

	// AddMember inserts a membership. An existing membership yields a
	// *domain.ConflictError.
	AddMember(ctx context.Context, m *campaign.Member) error

	// GetMember returns the membership of userID, or domain.ErrNotFound.
	GetMember(ctx context.Context, campaignID, userID string) (*campaign.Member, error)
}
