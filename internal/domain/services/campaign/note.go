package campaign

import (
	"context"
	"encoding/json"

	"lorekeeper/internal/document"
	"lorekeeper/internal/domain/models/campaign"
)

type CreateNoteRequest struct {
	UserID     string          `json:"-"`
	CampaignID string          `json:"-"`
	Name       string          `json:"name"`
	Content    json.RawMessage `json:"content,omitempty"`
	TagID      *string         `json:"tag_id,omitempty"`
}

type ShareRequest struct {
	Action document.Action `json:"action"`
	From   int             `json:"from"`
	To     int             `json:"to"`

	// ActorName is stamped into sharedBy next to the caller's id.
	ActorName string `json:"-"`
}

// ShareResult reports whether a share command changed anything. Note is nil
// when Applied is false.
type ShareResult struct {
	Applied bool           `json:"applied"`
	Note    *campaign.Note `json:"note,omitempty"`
}

// NoteService manages notes and their shared content.
type NoteService interface {
	CreateNote(ctx context.Context, req *CreateNoteRequest) (*campaign.Note, error)

	GetNote(ctx context.Context, userID, noteID string) (*campaign.Note, error)

	ListNotes(ctx context.Context, userID, campaignID string) ([]campaign.NoteSummary, error)

	DeleteNote(ctx context.Context, userID, noteID string) error

	// UpdateNoteContent validates the document, assigns missing block ids,
	// recomputes hasSharedContent and stores the result.
	UpdateNoteContent(ctx context.Context, userID, noteID string, content json.RawMessage) (*campaign.Note, error)

	// ApplyShareCommand runs a shared-content command over a selection with
	// the caller as actor. A selection without shareable blocks is not an
	// error; it reports Applied=false and stores nothing.
	ApplyShareCommand(ctx context.Context, userID, noteID string, req *ShareRequest) (*ShareResult, error)

	// GetSharedView returns the note reduced to its shared blocks.
	GetSharedView(ctx context.Context, userID, noteID string) (*campaign.SharedNoteView, error)
}
