package campaign

import (
	"context"
	"encoding/json"

	"lorekeeper/internal/domain/models/campaign"
)

// NoteRepository stores notes. Content writes are whole-document and
// last-write-wins.
type NoteRepository interface {
	Create(ctx context.Context, note *campaign.Note) error

	// GetByID returns a live note, or domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*campaign.Note, error)

	// ListByCampaign returns summaries of the campaign's live notes by name.
	ListByCampaign(ctx context.Context, campaignID string) ([]campaign.NoteSummary, error)

	// UpdateContent replaces content and hasSharedContent and bumps updated_at.
	UpdateContent(ctx context.Context, id string, content json.RawMessage, hasSharedContent bool) (*campaign.Note, error)

	// Delete soft-deletes the note.
	Delete(ctx context.Context, id string) error

	// ListIDs returns live note ids, limited to campaignID when it is not empty.
	ListIDs(ctx context.Context, campaignID string) ([]string, error)
}
