package campaign

import (
	"context"

	"lorekeeper/internal/domain/models/campaign"
)

type CreateTagRequest struct {
	UserID     string           `json:"-"`
	CampaignID string           `json:"-"`
	Name       string           `json:"name"`
	Color      string           `json:"color"`
	Type       campaign.TagType `json:"type"`
}

// TagService manages campaign tags.
type TagService interface {
	ListTags(ctx context.Context, userID, campaignID string) ([]campaign.Tag, error)

	GetTag(ctx context.Context, userID, campaignID, tagID string) (*campaign.Tag, error)

	// CreateTag creates a user tag. System tags are rejected.
	CreateTag(ctx context.Context, req *CreateTagRequest) (*campaign.Tag, error)

	// DeleteTag deletes a user tag. System tags are rejected.
	DeleteTag(ctx context.Context, userID, campaignID, tagID string) error

	// CreateSystemTag and DeleteSystemTag are called by the owning entity's
	// lifecycle, not by users.
	CreateSystemTag(ctx context.Context, campaignID, name, color string) (*campaign.Tag, error)
	DeleteSystemTag(ctx context.Context, campaignID, tagID string) error
}
