package campaign

import (
	"context"

	"lorekeeper/internal/domain/models/campaign"
)

type CreateCampaignRequest struct {
	UserID string `json:"-"`
	Name   string `json:"name"`
}

type AddMemberRequest struct {
	UserID string        `json:"user_id"`
	Role   campaign.Role `json:"role"`
}

// CampaignService manages campaigns and membership.
type CampaignService interface {
	// CreateCampaign creates a campaign owned by req.UserID, who also becomes
	// its owner member.
	CreateCampaign(ctx context.Context, req *CreateCampaignRequest) (*campaign.Campaign, error)

	GetCampaign(ctx context.Context, userID, campaignID string) (*campaign.Campaign, error)

	ListCampaigns(ctx context.Context, userID string) ([]campaign.Campaign, error)

	// AddMember is restricted to the campaign owner.
	AddMember(ctx context.Context, userID, campaignID string, req *AddMemberRequest) (*campaign.Member, error)
}
