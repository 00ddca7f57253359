package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"lorekeeper/internal/config"
	"lorekeeper/internal/domain"
	models "lorekeeper/internal/domain/models/campaign"
	campaignRepo "lorekeeper/internal/domain/repositories/campaign"
	"lorekeeper/internal/domain/services"
	campaignSvc "lorekeeper/internal/domain/services/campaign"
)

const defaultTagColor = "#6b7280"

var tagColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type tagService struct {
	tagRepo    campaignRepo.TagRepository
	authorizer services.ResourceAuthorizer
	logger     *slog.Logger
}

func NewTagService(
	tagRepo campaignRepo.TagRepository,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) campaignSvc.TagService {
	return &tagService{
		tagRepo:    tagRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

func (s *tagService) ListTags(ctx context.Context, userID, campaignID string) ([]models.Tag, error) {
	if err := s.authorizer.CanAccessCampaign(ctx, userID, campaignID); err != nil {
		return nil, err
	}
	return s.tagRepo.ListByCampaign(ctx, campaignID)
}

func (s *tagService) GetTag(ctx context.Context, userID, campaignID, tagID string) (*models.Tag, error) {
	if err := s.authorizer.CanAccessCampaign(ctx, userID, campaignID); err != nil {
		return nil, err
	}
	return s.tagRepo.GetByID(ctx, campaignID, tagID)
}

func (s *tagService) CreateTag(ctx context.Context, req *campaignSvc.CreateTagRequest) (*models.Tag, error) {
	if req.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if req.Type == "" {
		req.Type = models.TagTypeCustom
	}
	if req.Color == "" {
		req.Color = defaultTagColor
	}
	if err := validation.ValidateStruct(req,
		validation.Field(&req.CampaignID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxTagNameLength)),
		validation.Field(&req.Color, validation.Match(tagColorPattern).Error("must be a #rrggbb color")),
		validation.Field(&req.Type,
			validation.In(models.TagTypeCharacter, models.TagTypeLocation, models.TagTypeSession, models.TagTypeCustom).
				Error("must be Character, Location, Session or Custom"),
		),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.authorizer.CanAccessCampaign(ctx, req.UserID, req.CampaignID); err != nil {
		return nil, err
	}

	tag, err := s.create(ctx, req.CampaignID, req.Name, req.Color, req.Type)
	if err != nil {
		return nil, err
	}
	s.logger.Info("tag created",
		"id", tag.ID,
		"campaign_id", tag.CampaignID,
		"type", tag.Type,
		"user_id", req.UserID,
	)
	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, userID, campaignID, tagID string) error {
	if err := s.authorizer.CanManageCampaign(ctx, userID, campaignID); err != nil {
		return err
	}
	tag, err := s.tagRepo.GetByID(ctx, campaignID, tagID)
	if err != nil {
		return err
	}
	if tag.IsSystem() {
		return &domain.ValidationError{Message: "system tags are deleted with their entity"}
	}
	if err := s.tagRepo.Delete(ctx, campaignID, tagID); err != nil {
		return err
	}

	s.logger.Info("tag deleted",
		"id", tagID,
		"campaign_id", campaignID,
		"user_id", userID,
	)
	return nil
}

func (s *tagService) CreateSystemTag(ctx context.Context, campaignID, name, color string) (*models.Tag, error) {
	if color == "" {
		color = defaultTagColor
	}
	errs := validation.Errors{
		"campaign_id": validation.Validate(campaignID, validation.Required),
		"name":        validation.Validate(name, validation.Required, validation.Length(1, config.MaxTagNameLength)),
		"color":       validation.Validate(color, validation.Match(tagColorPattern)),
	}
	if err := errs.Filter(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	tag, err := s.create(ctx, campaignID, name, color, models.TagTypeSystem)
	if err != nil {
		return nil, err
	}
	s.logger.Info("system tag created",
		"id", tag.ID,
		"campaign_id", campaignID,
	)
	return tag, nil
}

func (s *tagService) DeleteSystemTag(ctx context.Context, campaignID, tagID string) error {
	tag, err := s.tagRepo.GetByID(ctx, campaignID, tagID)
	if err != nil {
		return err
	}
	if !tag.IsSystem() {
		return &domain.ValidationError{Message: fmt.Sprintf("tag %s is not a system tag", tagID)}
	}
	if err := s.tagRepo.Delete(ctx, campaignID, tagID); err != nil {
		return err
	}

	s.logger.Info("system tag deleted",
		"id", tagID,
		"campaign_id", campaignID,
	)
	return nil
}

func (s *tagService) create(ctx context.Context, campaignID, name, color string, typ models.TagType) (*models.Tag, error) {
	tag := &models.Tag{
		CampaignID: campaignID,
		Name:       strings.TrimSpace(name),
		Color:      strings.ToLower(color),
		Type:       typ,
		CreatedAt:  time.Now(),
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}
