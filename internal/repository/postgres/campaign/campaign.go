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

// PostgresCampaignRepository implements CampaignRepository.
type PostgresCampaignRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

func NewCampaignRepository(config *postgres.RepositoryConfig) campaignRepo.CampaignRepository {
	return &PostgresCampaignRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresCampaignRepository) Create(ctx context.Context, c *models.Campaign) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, r.tables.Campaigns)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		c.OwnerID,
		c.Name,
		c.CreatedAt,
		c.UpdatedAt,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	return nil
}

func (r *PostgresCampaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, name, created_at, updated_at
		FROM %s
		WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Campaigns)

	var c models.Campaign
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.OwnerID,
		&c.Name,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return &c, nil
}

func (r *PostgresCampaignRepository) ListForUser(ctx context.Context, userID string) ([]models.Campaign, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.owner_id, c.name, c.created_at, c.updated_at
		FROM %s c
		JOIN %s m ON m.campaign_id = c.id
		WHERE m.user_id = $1 AND c.deleted_at IS NULL
		ORDER BY c.updated_at DESC
	`, r.tables.Campaigns, r.tables.CampaignMembers)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}
	return campaigns, nil
}

func (r *PostgresCampaignRepository) AddMember(ctx context.Context, m *models.Member) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (campaign_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
	`, r.tables.CampaignMembers)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, m.CampaignID, m.UserID, m.Role, m.CreatedAt)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("user %s is already a member", m.UserID),
				ResourceType: "member",
				ResourceID:   m.UserID,
			}
		}
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("campaign %s: %w", m.CampaignID, domain.ErrNotFound)
		}
		return fmt.Errorf("add campaign member: %w", err)
	}
	return nil
}

func (r *PostgresCampaignRepository) GetMember(ctx context.Context, campaignID, userID string) (*models.Member, error) {
	query := fmt.Sprintf(`
		SELECT m.campaign_id, m.user_id, m.role, m.created_at
		FROM %s m
		JOIN %s c ON c.id = m.campaign_id
		WHERE m.campaign_id = $1 AND m.user_id = $2 AND c.deleted_at IS NULL
	`, r.tables.CampaignMembers, r.tables.Campaigns)

	var m models.Member
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, campaignID, userID).Scan(
		&m.CampaignID,
		&m.UserID,
		&m.Role,
		&m.CreatedAt,
	)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, fmt.Errorf("member %s of campaign %s: %w", userID, campaignID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get campaign member: %w", err)
	}
	return &m, nil
}
