package campaign

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"lorekeeper/internal/config"
	"lorekeeper/internal/document"
	"lorekeeper/internal/domain"
	models "lorekeeper/internal/domain/models/campaign"
	campaignRepo "lorekeeper/internal/domain/repositories/campaign"
	"lorekeeper/internal/domain/services"
	campaignSvc "lorekeeper/internal/domain/services/campaign"
)

type noteService struct {
	noteRepo   campaignRepo.NoteRepository
	tagRepo    campaignRepo.TagRepository
	authorizer services.ResourceAuthorizer
	schema     *document.Schema
	logger     *slog.Logger
}

func NewNoteService(
	noteRepo campaignRepo.NoteRepository,
	tagRepo campaignRepo.TagRepository,
	authorizer services.ResourceAuthorizer,
	schema *document.Schema,
	logger *slog.Logger,
) campaignSvc.NoteService {
	return &noteService{
		noteRepo:   noteRepo,
		tagRepo:    tagRepo,
		authorizer: authorizer,
		schema:     schema,
		logger:     logger,
	}
}

func (s *noteService) CreateNote(ctx context.Context, req *campaignSvc.CreateNoteRequest) (*models.Note, error) {
	if req.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validation.ValidateStruct(req,
		validation.Field(&req.CampaignID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxNoteNameLength)),
		validation.Field(&req.TagID, validation.NilOrNotEmpty, is.UUID),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.authorizer.CanAccessCampaign(ctx, req.UserID, req.CampaignID); err != nil {
		return nil, err
	}

	if req.TagID != nil {
		tag, err := s.tagRepo.GetByID(ctx, req.CampaignID, *req.TagID)
		if err != nil {
			return nil, err
		}
		if !tag.IsSystem() {
			return nil, &domain.ValidationError{Message: "a note can only inherit a system tag"}
		}
	}

	doc := document.Empty(s.schema)
	if len(req.Content) > 0 {
		parsed, err := s.parseInput(req.Content)
		if err != nil {
			return nil, err
		}
		doc = parsed
	}
	content, hasShared, err := prepareForSave(doc)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	note := &models.Note{
		CampaignID:       req.CampaignID,
		OwnerID:          req.UserID,
		Name:             strings.TrimSpace(req.Name),
		Content:          content,
		HasSharedContent: hasShared,
		TagID:            req.TagID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note created",
		"id", note.ID,
		"campaign_id", note.CampaignID,
		"user_id", req.UserID,
	)
	return note, nil
}

func (s *noteService) GetNote(ctx context.Context, userID, noteID string) (*models.Note, error) {
	if err := s.authorizer.CanEditNote(ctx, userID, noteID); err != nil {
		return nil, err
	}
	return s.noteRepo.GetByID(ctx, noteID)
}

func (s *noteService) ListNotes(ctx context.Context, userID, campaignID string) ([]models.NoteSummary, error) {
	if err := s.authorizer.CanAccessCampaign(ctx, userID, campaignID); err != nil {
		return nil, err
	}
	return s.noteRepo.ListByCampaign(ctx, campaignID)
}

func (s *noteService) DeleteNote(ctx context.Context, userID, noteID string) error {
	if err := s.authorizer.CanEditNote(ctx, userID, noteID); err != nil {
		return err
	}
	if err := s.noteRepo.Delete(ctx, noteID); err != nil {
		return err
	}

	s.logger.Info("note deleted",
		"id", noteID,
		"user_id", userID,
	)
	return nil
}

func (s *noteService) UpdateNoteContent(ctx context.Context, userID, noteID string, content json.RawMessage) (*models.Note, error) {
	if err := s.authorizer.CanEditNote(ctx, userID, noteID); err != nil {
		return nil, err
	}
	doc, err := s.parseInput(content)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, userID, noteID, doc)
}

func (s *noteService) ApplyShareCommand(ctx context.Context, userID, noteID string, req *campaignSvc.ShareRequest) (*campaignSvc.ShareResult, error) {
	if err := s.authorizer.CanEditNote(ctx, userID, noteID); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Action, validation.Required, validation.In(document.ActionSet, document.ActionUnset, document.ActionToggle)),
		validation.Field(&req.From, validation.Min(0)),
		validation.Field(&req.To, validation.Min(0)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	doc, err := parseStored(note.Content, s.schema)
	if err != nil {
		return nil, err
	}

	sel := document.Selection{From: req.From, To: req.To}
	updated, applied, err := document.Apply(doc, req.Action, sel, s.schema, &document.UserRef{ID: userID, Name: req.ActorName})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !applied {
		s.logger.Debug("share command had no target",
			"note_id", noteID,
			"action", req.Action,
			"from", req.From,
			"to", req.To,
		)
		return &campaignSvc.ShareResult{Applied: false}, nil
	}

	saved, err := s.save(ctx, userID, noteID, updated)
	if err != nil {
		return nil, err
	}

	s.logger.Info("share command applied",
		"note_id", noteID,
		"action", req.Action,
		"has_shared_content", saved.HasSharedContent,
		"user_id", userID,
	)
	return &campaignSvc.ShareResult{Applied: true, Note: saved}, nil
}

func (s *noteService) GetSharedView(ctx context.Context, userID, noteID string) (*models.SharedNoteView, error) {
	if err := s.authorizer.CanAccessNote(ctx, userID, noteID); err != nil {
		return nil, err
	}
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	view := &models.SharedNoteView{
		ID:         note.ID,
		CampaignID: note.CampaignID,
		Name:       note.Name,
		UpdatedAt:  note.UpdatedAt,
	}
	if !note.HasSharedContent {
		view.Content = json.RawMessage(`{"type":"doc","content":[]}`)
		return view, nil
	}

	doc, err := parseStored(note.Content, s.schema)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(document.SharedSubset(doc))
	if err != nil {
		return nil, fmt.Errorf("encode shared view: %w", err)
	}
	view.Content = data
	return view, nil
}

// parseInput decodes content sent by a client.
func (s *noteService) parseInput(content json.RawMessage) (*document.Document, error) {
	if len(content) > config.MaxNoteContentBytes {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("note content exceeds %d bytes", config.MaxNoteContentBytes),
		}
	}
	doc, err := document.Parse(content, s.schema)
	if err != nil {
		if errors.Is(err, document.ErrInvalidDocument) {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		return nil, err
	}
	return doc, nil
}

// save stores a document as the note's content. Whole-note last write wins.
func (s *noteService) save(ctx context.Context, userID, noteID string, doc *document.Document) (*models.Note, error) {
	content, hasShared, err := prepareForSave(doc)
	if err != nil {
		return nil, err
	}
	note, err := s.noteRepo.UpdateContent(ctx, noteID, content, hasShared)
	if err != nil {
		return nil, err
	}

	s.logger.Info("note content updated",
		"id", noteID,
		"bytes", len(content),
		"has_shared_content", hasShared,
		"user_id", userID,
	)
	return note, nil
}
