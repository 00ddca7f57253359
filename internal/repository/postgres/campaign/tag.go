package campaign

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"lorekeeper/internal/domain"
	models "lorekeeper/internal/domain/models/campaign"
	campaignRepo "lorekeeper/internal/domain/repositories/campaign"
	"lorekeeper/internal/repository/postgres"
)

// PostgresTagRepository implements TagRepository.
type PostgresTagRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

func NewTagRepository(config *postgres.RepositoryConfig) campaignRepo.TagRepository {
	return &PostgresTagRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (campaign_id, name, color, type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.tables.Tags)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		tag.CampaignID,
		tag.Name,
		tag.Color,
		tag.Type,
		tag.CreatedAt,
	).Scan(&tag.ID, &tag.CreatedAt)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			existingID, queryErr := r.getExistingTagID(ctx, tag.CampaignID, tag.Name)
			if queryErr != nil {
				return fmt.Errorf("tag '%s' already exists: %w", tag.Name, domain.ErrConflict)
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("tag '%s' already exists", tag.Name),
				ResourceType: "tag",
				ResourceID:   existingID,
			}
		}
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("campaign %s: %w", tag.CampaignID, domain.ErrNotFound)
		}
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

func (r *PostgresTagRepository) GetByID(ctx context.Context, campaignID, tagID string) (*models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT id, campaign_id, name, color, type, created_at
		FROM %s
		WHERE id = $1 AND campaign_id = $2
	`, r.tables.Tags)

	var t models.Tag
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, tagID, campaignID).Scan(
		&t.ID,
		&t.CampaignID,
		&t.Name,
		&t.Color,
		&t.Type,
		&t.CreatedAt,
	)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, fmt.Errorf("tag %s: %w", tagID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &t, nil
}

func (r *PostgresTagRepository) ListByCampaign(ctx context.Context, campaignID string) ([]models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT id, campaign_id, name, color, type, created_at
		FROM %s
		WHERE campaign_id = $1
		ORDER BY name
	`, r.tables.Tags)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.CampaignID, &t.Name, &t.Color, &t.Type, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}

func (r *PostgresTagRepository) Delete(ctx context.Context, campaignID, tagID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND campaign_id = $2
	`, r.tables.Tags)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, tagID, campaignID)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", tagID, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresTagRepository) getExistingTagID(ctx context.Context, campaignID, name string) (string, error) {
	query := fmt.Sprintf(`
		SELECT id
		FROM %s
		WHERE campaign_id = $1 AND name = $2
	`, r.tables.Tags)

	var id string
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, campaignID, name).Scan(&id); err != nil {
		return "", fmt.Errorf("get existing tag ID: %w", err)
	}
	return id, nil
}
