package campaign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"lorekeeper/internal/document"
	"lorekeeper/internal/domain"
	models "lorekeeper/internal/domain/models/campaign"
	campaignRepo "lorekeeper/internal/domain/repositories/campaign"
	"lorekeeper/internal/domain/services"
	campaignSvc "lorekeeper/internal/domain/services/campaign"
)

type blockTagService struct {
	noteRepo     campaignRepo.NoteRepository
	tagRepo      campaignRepo.TagRepository
	blockTagRepo campaignRepo.BlockTagRepository
	authorizer   services.ResourceAuthorizer
	schema       *document.Schema
	logger       *slog.Logger
}

func NewBlockTagService(
	noteRepo campaignRepo.NoteRepository,
	tagRepo campaignRepo.TagRepository,
	blockTagRepo campaignRepo.BlockTagRepository,
	authorizer services.ResourceAuthorizer,
	schema *document.Schema,
	logger *slog.Logger,
) campaignSvc.BlockTagService {
	return &blockTagService{
		noteRepo:     noteRepo,
		tagRepo:      tagRepo,
		blockTagRepo: blockTagRepo,
		authorizer:   authorizer,
		schema:       schema,
		logger:       logger,
	}
}

func (s *blockTagService) AddTagToBlock(ctx context.Context, userID, noteID, blockID, tagID string) error {
	note, err := s.editableNote(ctx, userID, noteID)
	if err != nil {
		return err
	}
	if err := validateBlockRef(blockID, tagID); err != nil {
		return err
	}

	tag, err := s.tagRepo.GetByID(ctx, note.CampaignID, tagID)
	if err != nil {
		return err
	}
	if tag.IsSystem() {
		return &domain.ValidationError{Message: "system tags cannot be attached to blocks"}
	}

	if err := s.blockTagRepo.Add(ctx, noteID, blockID, tagID); err != nil {
		return fmt.Errorf("add block tag: %w", err)
	}

	s.logger.Info("block tag added",
		"note_id", noteID,
		"block_id", blockID,
		"tag_id", tagID,
		"user_id", userID,
	)
	return nil
}

func (s *blockTagService) RemoveTagFromBlock(ctx context.Context, userID, noteID, blockID, tagID string) error {
	note, err := s.editableNote(ctx, userID, noteID)
	if err != nil {
		return err
	}
	if err := validateBlockRef(blockID, tagID); err != nil {
		return err
	}
	if _, err := s.tagRepo.GetByID(ctx, note.CampaignID, tagID); err != nil {
		return err
	}

	if err := s.blockTagRepo.Remove(ctx, noteID, blockID, tagID); err != nil {
		return fmt.Errorf("remove block tag: %w", err)
	}

	s.logger.Info("block tag removed",
		"note_id", noteID,
		"block_id", blockID,
		"tag_id", tagID,
		"user_id", userID,
	)
	return nil
}

func (s *blockTagService) GetBlockTagState(ctx context.Context, userID, noteID, blockID string) (*models.BlockTagState, error) {
	_, state, err := s.readableBlock(ctx, userID, noteID, blockID)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *blockTagService) GetTagOptions(ctx context.Context, userID, noteID, blockID string) (*models.TagOptions, error) {
	note, state, err := s.readableBlock(ctx, userID, noteID, blockID)
	if err != nil {
		return nil, err
	}
	tags, err := s.tagRepo.ListByCampaign(ctx, note.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("list campaign tags: %w", err)
	}
	opts := ResolveTagOptions(tags, state)
	return &opts, nil
}

// editableNote checks the caller may change the note and returns it.
func (s *blockTagService) editableNote(ctx context.Context, userID, noteID string) (*models.Note, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := s.authorizer.CanEditNote(ctx, userID, noteID); err != nil {
		return nil, err
	}
	return s.noteRepo.GetByID(ctx, noteID)
}

// readableBlock returns the note and the tag state of one of its blocks.
// Editors may read any block id, known or not; other members only see
// blocks that are shared or sit inside a shared block.
func (s *blockTagService) readableBlock(ctx context.Context, userID, noteID, blockID string) (*models.Note, models.BlockTagState, error) {
	if userID == "" {
		return nil, models.BlockTagState{}, domain.ErrUnauthorized
	}
	if err := s.authorizer.CanAccessNote(ctx, userID, noteID); err != nil {
		return nil, models.BlockTagState{}, err
	}
	if err := validation.Validate(blockID, validation.Required); err != nil {
		return nil, models.BlockTagState{}, fmt.Errorf("%w: block id: %v", domain.ErrValidation, err)
	}
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, models.BlockTagState{}, err
	}
	doc, err := parseStored(note.Content, s.schema)
	if err != nil {
		return nil, models.BlockTagState{}, err
	}

	err = s.authorizer.CanEditNote(ctx, userID, noteID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		if document.FindSharedBlock(doc, blockID) == nil {
			return nil, models.BlockTagState{}, fmt.Errorf("block %s: %w", blockID, domain.ErrNotFound)
		}
	default:
		return nil, models.BlockTagState{}, err
	}

	manual, err := s.blockTagRepo.ListTagIDs(ctx, note.ID, blockID)
	if err != nil {
		return nil, models.BlockTagState{}, fmt.Errorf("list block tags: %w", err)
	}
	return note, models.NewBlockTagState(document.InlineTagIDs(doc, blockID), manual, note.TagID), nil
}

func validateBlockRef(blockID, tagID string) error {
	err := validation.Errors{
		"block_id": validation.Validate(blockID, validation.Required, validation.Length(1, 128)),
		"tag_id":   validation.Validate(tagID, validation.Required, is.UUID),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
