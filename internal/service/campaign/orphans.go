package campaign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lorekeeper/internal/document"
	"lorekeeper/internal/domain"
	campaignRepo "lorekeeper/internal/domain/repositories/campaign"
	campaignSvc "lorekeeper/internal/domain/services/campaign"
)

// orphanCollector deletes association rows left behind by edits. The note
// save path never touches associations, so rows for deleted blocks pile up
// until this runs.
type orphanCollector struct {
	noteRepo     campaignRepo.NoteRepository
	blockTagRepo campaignRepo.BlockTagRepository
	schema       *document.Schema
	logger       *slog.Logger
}

func NewOrphanCollector(
	noteRepo campaignRepo.NoteRepository,
	blockTagRepo campaignRepo.BlockTagRepository,
	schema *document.Schema,
	logger *slog.Logger,
) campaignSvc.OrphanCollector {
	return &orphanCollector{
		noteRepo:     noteRepo,
		blockTagRepo: blockTagRepo,
		schema:       schema,
		logger:       logger,
	}
}

func (c *orphanCollector) CollectOrphans(ctx context.Context, campaignID string) (*campaignSvc.OrphanReport, error) {
	report := &campaignSvc.OrphanReport{}

	deleted, err := c.blockTagRepo.DeleteForDeletedNotes(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("delete rows of deleted notes: %w", err)
	}
	report.DeletedNoteRows = deleted

	noteIDs, err := c.noteRepo.ListIDs(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	for _, noteID := range noteIDs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		removed, err := c.collectNote(ctx, noteID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Deleted since ListIDs.
				continue
			}
			return report, err
		}
		report.NotesScanned++
		report.OrphanRowsDeleted += removed
	}

	c.logger.Info("block tag orphans collected",
		"campaign_id", campaignID,
		"notes_scanned", report.NotesScanned,
		"orphan_rows_deleted", report.OrphanRowsDeleted,
		"deleted_note_rows", report.DeletedNoteRows,
	)
	return report, nil
}

func (c *orphanCollector) collectNote(ctx context.Context, noteID string) (int64, error) {
	tagged, err := c.blockTagRepo.ListBlockIDs(ctx, noteID)
	if err != nil {
		return 0, fmt.Errorf("list tagged blocks of %s: %w", noteID, err)
	}
	if len(tagged) == 0 {
		return 0, nil
	}

	note, err := c.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return 0, err
	}
	doc, err := parseStored(note.Content, c.schema)
	if err != nil {
		// Leave rows alone rather than wiping them for unreadable content.
		c.logger.Warn("skipping note with unreadable content",
			"note_id", noteID,
			"error", err,
		)
		return 0, nil
	}

	live := document.BlockIDs(doc)
	liveSet := make(map[string]bool, len(live))
	for _, id := range live {
		liveSet[id] = true
	}
	orphaned := false
	for _, id := range tagged {
		if !liveSet[id] {
			orphaned = true
			break
		}
	}
	if !orphaned {
		return 0, nil
	}

	removed, err := c.blockTagRepo.DeleteBlocksExcept(ctx, noteID, live, note.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("delete orphans of %s: %w", noteID, err)
	}
	if removed > 0 {
		c.logger.Debug("orphan block tags removed",
			"note_id", noteID,
			"rows", removed,
		)
	}
	return removed, nil
}
