package config

const (
	// MaxCampaignNameLength fits VARCHAR(255).
	MaxCampaignNameLength = 255

	// MaxNoteNameLength fits VARCHAR(255).
	MaxNoteNameLength = 255

	// MaxTagNameLength keeps tags short enough to render inline as mentions.
	MaxTagNameLength = 64

	// MaxNoteContentBytes caps a saved document.
	MaxNoteContentBytes = 5 << 20

	// MaxRequestBodyBytes is enforced by httputil.ParseJSON. It leaves room
	// for the JSON envelope around a maximal note.
	MaxRequestBodyBytes = MaxNoteContentBytes + 1<<20
)
