package campaign

import (
	"context"

	"lorekeeper/internal/domain/models/campaign"
)

// BlockTagService reads and changes the tags of a single block.
//
// All methods require a caller: an empty userID yields domain.ErrUnauthorized.
// A missing note, a note the caller cannot access, or a tag outside the note's
// campaign yields domain.ErrNotFound. Block ids are not checked against the
// note's content.
type BlockTagService interface {
	// AddTagToBlock attaches a tag by hand. Repeating it is a no-op.
	// System tags yield domain.ErrValidation.
	AddTagToBlock(ctx context.Context, userID, noteID, blockID, tagID string) error

	// RemoveTagFromBlock detaches a manual tag. Removing an absent tag is a no-op.
	RemoveTagFromBlock(ctx context.Context, userID, noteID, blockID, tagID string) error

	GetBlockTagState(ctx context.Context, userID, noteID, blockID string) (*campaign.BlockTagState, error)

	// GetTagOptions returns the block's state with the campaign's tags split
	// into unavailable, removable and available.
	GetTagOptions(ctx context.Context, userID, noteID, blockID string) (*campaign.TagOptions, error)
}

// OrphanReport summarizes a garbage collection run.
type OrphanReport struct {
	NotesScanned      int   `json:"notes_scanned"`
	OrphanRowsDeleted int64 `json:"orphan_rows_deleted"`
	DeletedNoteRows   int64 `json:"deleted_note_rows"`
}

// OrphanCollector removes association rows whose block no longer exists.
type OrphanCollector interface {
	// CollectOrphans scans one campaign, or every campaign when campaignID is empty.
	CollectOrphans(ctx context.Context, campaignID string) (*OrphanReport, error)
}
