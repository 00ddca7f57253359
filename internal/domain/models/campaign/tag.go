package campaign

import "time"

// TagType classifies tags. System tags are owned by a character, location or
// session and are managed with it; the rest are user-created.
type TagType string

const (
	TagTypeSystem    TagType = "System"
	TagTypeCharacter TagType = "Character"
	TagTypeLocation  TagType = "Location"
	TagTypeSession   TagType = "Session"
	TagTypeCustom    TagType = "Custom"
)

// Valid reports whether t is a known tag type.
func (t TagType) Valid() bool {
	switch t {
	case TagTypeSystem, TagTypeCharacter, TagTypeLocation, TagTypeSession, TagTypeCustom:
		return true
	}
	return false
}

type Tag struct {
	ID         string    `json:"id" db:"id"`
	CampaignID string    `json:"campaign_id" db:"campaign_id"`
	Name       string    `json:"name" db:"name"`
	Color      string    `json:"color" db:"color"`
	Type       TagType   `json:"type" db:"type"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// IsSystem reports whether the tag is entity-managed.
func (t *Tag) IsSystem() bool {
	return t.Type == TagTypeSystem
}
