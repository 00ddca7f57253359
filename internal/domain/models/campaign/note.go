package campaign

import (
	"encoding/json"
	"time"
)

// Note is a rich-text page inside a campaign. Content holds the editor's
// document JSON as stored.
type Note struct {
	ID               string          `json:"id" db:"id"`
	CampaignID       string          `json:"campaign_id" db:"campaign_id"`
	OwnerID          string          `json:"owner_id" db:"owner_id"`
	Name             string          `json:"name" db:"name"`
	Content          json.RawMessage `json:"content" db:"content"`
	HasSharedContent bool            `json:"has_shared_content" db:"has_shared_content"`
	// TagID is the System tag of the entity this note was created for, if any.
	// Every block in the note inherits it.
	TagID     *string    `json:"tag_id,omitempty" db:"tag_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// NoteSummary is the list view of a note, without content.
type NoteSummary struct {
	ID               string    `json:"id" db:"id"`
	CampaignID       string    `json:"campaign_id" db:"campaign_id"`
	OwnerID          string    `json:"owner_id" db:"owner_id"`
	Name             string    `json:"name" db:"name"`
	HasSharedContent bool      `json:"has_shared_content" db:"has_shared_content"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// SharedNoteView is what campaign members other than the author see: only
// the shared blocks of the note.
type SharedNoteView struct {
	ID         string          `json:"id"`
	CampaignID string          `json:"campaign_id"`
	Name       string          `json:"name"`
	Content    json.RawMessage `json:"content"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
