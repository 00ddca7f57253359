package campaign

import "time"

// BlockTagAssociation records that a block of a note was tagged by hand.
// Rows are keyed by (note, block, tag) and live apart from note content.
type BlockTagAssociation struct {
	NoteID    string    `json:"note_id" db:"note_id"`
	BlockID   string    `json:"block_id" db:"block_id"`
	TagID     string    `json:"tag_id" db:"tag_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BlockTagState is every tag attached to a block, by source.
type BlockTagState struct {
	InlineTagIDs []string `json:"inline_tag_ids"`
	BlockTagIDs  []string `json:"block_tag_ids"`
	NoteTagID    *string  `json:"note_tag_id"`
	AllTagIDs    []string `json:"all_tag_ids"`
}

// NewBlockTagState combines the three tag sources and computes AllTagIDs:
// inline tags, then the note tag, then manual tags, without duplicates.
func NewBlockTagState(inline, manual []string, noteTagID *string) BlockTagState {
	if inline == nil {
		inline = []string{}
	}
	if manual == nil {
		manual = []string{}
	}
	all := make([]string, 0, len(inline)+len(manual)+1)
	seen := make(map[string]bool)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			all = append(all, id)
		}
	}
	for _, id := range inline {
		add(id)
	}
	if noteTagID != nil {
		add(*noteTagID)
	}
	for _, id := range manual {
		add(id)
	}
	return BlockTagState{
		InlineTagIDs: inline,
		BlockTagIDs:  manual,
		NoteTagID:    noteTagID,
		AllTagIDs:    all,
	}
}

// LockedTagIDs returns the inline tags and the note tag. Locked tags cannot
// be detached through the block tag API.
func (s BlockTagState) LockedTagIDs() map[string]bool {
	locked := make(map[string]bool, len(s.InlineTagIDs)+1)
	for _, id := range s.InlineTagIDs {
		locked[id] = true
	}
	if s.NoteTagID != nil {
		locked[*s.NoteTagID] = true
	}
	return locked
}

// TagOptions splits a campaign's non-System tags for a block's tag menu.
// Every such tag is in exactly one list.
type TagOptions struct {
	State       BlockTagState `json:"state"`
	Unavailable []Tag         `json:"unavailable"`
	Removable   []Tag         `json:"removable"`
	Available   []Tag         `json:"available"`
}
