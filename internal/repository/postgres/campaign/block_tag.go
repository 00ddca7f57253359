package campaign

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lorekeeper/internal/domain"
	campaignRepo "lorekeeper/internal/domain/repositories/campaign"
	"lorekeeper/internal/repository/postgres"
)

// PostgresBlockTagRepository implements BlockTagRepository over a table keyed
// by (note_id, block_id, tag_id). Rows cascade when the note or tag row is
// removed; soft-deleted notes are cleaned up by DeleteForDeletedNotes.
type PostgresBlockTagRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

func NewBlockTagRepository(config *postgres.RepositoryConfig) campaignRepo.BlockTagRepository {
	return &PostgresBlockTagRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresBlockTagRepository) Add(ctx context.Context, noteID, blockID, tagID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (note_id, block_id, tag_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (note_id, block_id, tag_id) DO NOTHING
	`, r.tables.BlockTags)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, noteID, blockID, tagID); err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("note %s or tag %s: %w", noteID, tagID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert block tag: %w", err)
	}
	return nil
}

func (r *PostgresBlockTagRepository) Remove(ctx context.Context, noteID, blockID, tagID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE note_id = $1 AND block_id = $2 AND tag_id = $3
	`, r.tables.BlockTags)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, noteID, blockID, tagID); err != nil {
		return fmt.Errorf("delete block tag: %w", err)
	}
	return nil
}

func (r *PostgresBlockTagRepository) ListTagIDs(ctx context.Context, noteID, blockID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT tag_id::text
		FROM %s
		WHERE note_id = $1 AND block_id = $2
		ORDER BY created_at, tag_id
	`, r.tables.BlockTags)

	return r.collectStrings(ctx, query, noteID, blockID)
}

func (r *PostgresBlockTagRepository) ListBlockIDs(ctx context.Context, noteID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT block_id
		FROM %s
		WHERE note_id = $1
		ORDER BY block_id
	`, r.tables.BlockTags)

	return r.collectStrings(ctx, query, noteID)
}

// DeleteBlocksExcept spares rows created at or after createdBefore: callers
// pass the updated_at of the content they read keep from, so a block saved
// and tagged since then is not mistaken for an orphan.
func (r *PostgresBlockTagRepository) DeleteBlocksExcept(ctx context.Context, noteID string, keep []string, createdBefore time.Time) (int64, error) {
	if keep == nil {
		keep = []string{}
	}
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE note_id = $1 AND NOT (block_id = ANY($2)) AND created_at < $3
	`, r.tables.BlockTags)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, noteID, keep, createdBefore)
	if err != nil {
		return 0, fmt.Errorf("delete orphan block tags: %w", err)
	}
	return result.RowsAffected(), nil
}

func (r *PostgresBlockTagRepository) DeleteForDeletedNotes(ctx context.Context, campaignID string) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s bt
		USING %s n
		WHERE bt.note_id = n.id
		  AND n.deleted_at IS NOT NULL
		  AND ($1 = '' OR n.campaign_id::text = $1)
	`, r.tables.BlockTags, r.tables.Notes)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, campaignID)
	if err != nil {
		return 0, fmt.Errorf("delete block tags of deleted notes: %w", err)
	}
	return result.RowsAffected(), nil
}

func (r *PostgresBlockTagRepository) collectStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query block tags: %w", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan block tags: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
