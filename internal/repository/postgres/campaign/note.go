package campaign

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lorekeeper/internal/domain"
	models "lorekeeper/internal/domain/models/campaign"
	campaignRepo "lorekeeper/internal/domain/repositories/campaign"
	"lorekeeper/internal/repository/postgres"
)

// PostgresNoteRepository implements NoteRepository. Content is a JSONB column.
type PostgresNoteRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

func NewNoteRepository(config *postgres.RepositoryConfig) campaignRepo.NoteRepository {
	return &PostgresNoteRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const noteColumns = `id, campaign_id, owner_id, name, content, has_shared_content, tag_id, created_at, updated_at`

func scanNote(row pgx.Row) (*models.Note, error) {
	var n models.Note
	var content []byte
	err := row.Scan(
		&n.ID,
		&n.CampaignID,
		&n.OwnerID,
		&n.Name,
		&content,
		&n.HasSharedContent,
		&n.TagID,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	n.Content = json.RawMessage(content)
	return &n, nil
}

func (r *PostgresNoteRepository) Create(ctx context.Context, n *models.Note) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (campaign_id, owner_id, name, content, has_shared_content, tag_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, r.tables.Notes)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		n.CampaignID,
		n.OwnerID,
		n.Name,
		[]byte(n.Content),
		n.HasSharedContent,
		n.TagID,
		n.CreatedAt,
		n.UpdatedAt,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("campaign %s: %w", n.CampaignID, domain.ErrNotFound)
		}
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (r *PostgresNoteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND deleted_at IS NULL
	`, noteColumns, r.tables.Notes)

	executor := postgres.GetExecutor(ctx, r.pool)
	n, err := scanNote(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (r *PostgresNoteRepository) ListByCampaign(ctx context.Context, campaignID string) ([]models.NoteSummary, error) {
	query := fmt.Sprintf(`
		SELECT id, campaign_id, owner_id, name, has_shared_content, updated_at
		FROM %s
		WHERE campaign_id = $1 AND deleted_at IS NULL
		ORDER BY name
	`, r.tables.Notes)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []models.NoteSummary{}
	for rows.Next() {
		var n models.NoteSummary
		if err := rows.Scan(&n.ID, &n.CampaignID, &n.OwnerID, &n.Name, &n.HasSharedContent, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

func (r *PostgresNoteRepository) UpdateContent(ctx context.Context, id string, content json.RawMessage, hasSharedContent bool) (*models.Note, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET content = $1, has_shared_content = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
		RETURNING %s
	`, r.tables.Notes, noteColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	n, err := scanNote(executor.QueryRow(ctx, query, []byte(content), hasSharedContent, id))
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update note content: %w", err)
	}
	return n, nil
}

func (r *PostgresNoteRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Notes)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		if postgres.IsNotFound(err) {
			return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("delete note: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresNoteRepository) ListIDs(ctx context.Context, campaignID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT id
		FROM %s
		WHERE deleted_at IS NULL AND ($1 = '' OR campaign_id::text = $1)
		ORDER BY id
	`, r.tables.Notes)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list note ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan note ids: %w", err)
	}
	return ids, nil
}
