package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"lorekeeper/internal/config"
	"lorekeeper/internal/domain"
	models "lorekeeper/internal/domain/models/campaign"
	"lorekeeper/internal/domain/repositories"
	campaignRepo "lorekeeper/internal/domain/repositories/campaign"
	"lorekeeper/internal/domain/services"
	campaignSvc "lorekeeper/internal/domain/services/campaign"
)

type campaignService struct {
	campaignRepo campaignRepo.CampaignRepository
	txManager    repositories.TransactionManager
	authorizer   services.ResourceAuthorizer
	logger       *slog.Logger
}

func NewCampaignService(
	campaignRepo campaignRepo.CampaignRepository,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) campaignSvc.CampaignService {
	return &campaignService{
		campaignRepo: campaignRepo,
		txManager:    txManager,
		authorizer:   authorizer,
		logger:       logger,
	}
}

func (s *campaignService) CreateCampaign(ctx context.Context, req *campaignSvc.CreateCampaignRequest) (*models.Campaign, error) {
	if req.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxCampaignNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	c := &models.Campaign{
		OwnerID:   req.UserID,
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.campaignRepo.Create(ctx, c); err != nil {
			return err
		}
		return s.campaignRepo.AddMember(ctx, &models.Member{
			CampaignID: c.ID,
			UserID:     req.UserID,
			Role:       models.RoleOwner,
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("campaign created",
		"id", c.ID,
		"name", c.Name,
		"user_id", req.UserID,
	)
	return c, nil
}

func (s *campaignService) GetCampaign(ctx context.Context, userID, campaignID string) (*models.Campaign, error) {
	if err := s.authorizer.CanAccessCampaign(ctx, userID, campaignID); err != nil {
		return nil, err
	}
	return s.campaignRepo.GetByID(ctx, campaignID)
}

func (s *campaignService) ListCampaigns(ctx context.Context, userID string) ([]models.Campaign, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.campaignRepo.ListForUser(ctx, userID)
}

func (s *campaignService) AddMember(ctx context.Context, userID, campaignID string, req *campaignSvc.AddMemberRequest) (*models.Member, error) {
	if err := s.authorizer.CanManageCampaign(ctx, userID, campaignID); err != nil {
		return nil, err
	}
	if req.Role == "" {
		req.Role = models.RolePlayer
	}
	if err := validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required, is.UUID),
		validation.Field(&req.Role, validation.In(models.RoleOwner, models.RolePlayer)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	m := &models.Member{
		CampaignID: campaignID,
		UserID:     req.UserID,
		Role:       req.Role,
		CreatedAt:  time.Now(),
	}
	if err := s.campaignRepo.AddMember(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("campaign member added",
		"campaign_id", campaignID,
		"member_id", m.UserID,
		"role", m.Role,
		"user_id", userID,
	)
	return m, nil
}
