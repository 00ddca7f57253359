package campaign

import (
	models "lorekeeper/internal/domain/models/campaign"
)

// ResolveTagOptions sorts the campaign's tags for a block's tag menu:
//
//   - unavailable: locked tags (inline mentions and the note tag)
//   - removable: manually attached tags that are not locked
//   - available: every other tag
//
// System tags appear in none of the lists. Each list keeps campaign order.
func ResolveTagOptions(campaignTags []models.Tag, state models.BlockTagState) models.TagOptions {
	locked := state.LockedTagIDs()
	manual := make(map[string]bool, len(state.BlockTagIDs))
	for _, id := range state.BlockTagIDs {
		manual[id] = true
	}

	opts := models.TagOptions{
		State:       state,
		Unavailable: []models.Tag{},
		Removable:   []models.Tag{},
		Available:   []models.Tag{},
	}
	for _, tag := range campaignTags {
		switch {
		case tag.IsSystem():
		case locked[tag.ID]:
			opts.Unavailable = append(opts.Unavailable, tag)
		case manual[tag.ID]:
			opts.Removable = append(opts.Removable, tag)
		default:
			opts.Available = append(opts.Available, tag)
		}
	}
	return opts
}
