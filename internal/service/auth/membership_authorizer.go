package auth

import (
	"context"
	"errors"
	"fmt"

	"lorekeeper/internal/domain"
	"lorekeeper/internal/domain/models/campaign"
	campaignRepo "lorekeeper/internal/domain/repositories/campaign"
)

// MembershipAuthorizer implements ResourceAuthorizer from campaign membership.
// Members can read a campaign's notes and tags; the campaign owner and a
// note's author can edit the note.
type MembershipAuthorizer struct {
	campaignRepo campaignRepo.CampaignRepository
	noteRepo     campaignRepo.NoteRepository
}

func NewMembershipAuthorizer(
	campaignRepo campaignRepo.CampaignRepository,
	noteRepo campaignRepo.NoteRepository,
) *MembershipAuthorizer {
	return &MembershipAuthorizer{
		campaignRepo: campaignRepo,
		noteRepo:     noteRepo,
	}
}

func (a *MembershipAuthorizer) CanAccessCampaign(ctx context.Context, userID, campaignID string) error {
	_, err := a.member(ctx, userID, campaignID)
	return err
}

func (a *MembershipAuthorizer) CanManageCampaign(ctx context.Context, userID, campaignID string) error {
	m, err := a.member(ctx, userID, campaignID)
	if err != nil {
		return err
	}
	if m.Role != campaign.RoleOwner {
		return fmt.Errorf("campaign %s requires owner: %w", campaignID, domain.ErrForbidden)
	}
	return nil
}

func (a *MembershipAuthorizer) CanAccessNote(ctx context.Context, userID, noteID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	note, err := a.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("get note for auth: %w", err)
	}
	return a.CanAccessCampaign(ctx, userID, note.CampaignID)
}

func (a *MembershipAuthorizer) CanEditNote(ctx context.Context, userID, noteID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	note, err := a.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("get note for auth: %w", err)
	}
	m, err := a.member(ctx, userID, note.CampaignID)
	if err != nil {
		return err
	}
	if note.OwnerID != userID && m.Role != campaign.RoleOwner {
		// Players cannot tell other players' notes apart from missing ones.
		return fmt.Errorf("access denied to note %s: %w", noteID, domain.ErrNotFound)
	}
	return nil
}

// member returns the caller's membership, mapping "not a member" to
// domain.ErrNotFound.
func (a *MembershipAuthorizer) member(ctx context.Context, userID, campaignID string) (*campaign.Member, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	m, err := a.campaignRepo.GetMember(ctx, campaignID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("access denied to campaign %s: %w", campaignID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("check campaign access: %w", err)
	}
	return m, nil
}
