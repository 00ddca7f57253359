package campaign

import (
	"context"
	"time"
)

// BlockTagRepository stores manual block tag associations.
type BlockTagRepository interface {
	// Add inserts the association; an existing row is left as is.
	Add(ctx context.Context, noteID, blockID, tagID string) error

	// Remove deletes the association if present.
	Remove(ctx context.Context, noteID, blockID, tagID string) error

	// ListTagIDs returns the tags attached to a block, oldest first.
	ListTagIDs(ctx context.Context, noteID, blockID string) ([]string, error)

	// ListBlockIDs returns the distinct block ids with associations in a note.
	ListBlockIDs(ctx context.Context, noteID string) ([]string, error)

	// DeleteBlocksExcept removes the note's rows created before
	// createdBefore whose block id is not in keep, returning the number of
	// rows removed.
	DeleteBlocksExcept(ctx context.Context, noteID string, keep []string, createdBefore time.Time) (int64, error)

	// DeleteForDeletedNotes removes rows of soft-deleted notes, limited to
	// campaignID when it is not empty.
	DeleteForDeletedNotes(ctx context.Context, campaignID string) (int64, error)
}
