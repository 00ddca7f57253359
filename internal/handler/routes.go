package handler

import "net/http"

// Handlers groups every HTTP handler the server mounts.
type Handlers struct {
	Health   *HealthHandler
	Campaign *CampaignHandler
	Tag      *TagHandler
	Note     *NoteHandler
	BlockTag *BlockTagHandler
}

// RegisterRoutes mounts the API on mux using Go 1.22 method patterns.
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /health", h.Health.Health)

	// Campaigns
	mux.HandleFunc("GET /api/campaigns", h.Campaign.ListCampaigns)
	mux.HandleFunc("POST /api/campaigns", h.Campaign.CreateCampaign)
	mux.HandleFunc("GET /api/campaigns/{id}", h.Campaign.GetCampaign)
	mux.HandleFunc("POST /api/campaigns/{id}/members", h.Campaign.AddMember)

	// Tags
	mux.HandleFunc("GET /api/campaigns/{id}/tags", h.Tag.ListTags)
	mux.HandleFunc("POST /api/campaigns/{id}/tags", h.Tag.CreateTag)
	mux.HandleFunc("GET /api/campaigns/{id}/tags/{tagId}", h.Tag.GetTag)
	mux.HandleFunc("DELETE /api/campaigns/{id}/tags/{tagId}", h.Tag.DeleteTag)

	// Notes
	mux.HandleFunc("GET /api/campaigns/{id}/notes", h.Note.ListNotes)
	mux.HandleFunc("POST /api/campaigns/{id}/notes", h.Note.CreateNote)
	mux.HandleFunc("GET /api/notes/{id}", h.Note.GetNote)
	mux.HandleFunc("DELETE /api/notes/{id}", h.Note.DeleteNote)
	mux.HandleFunc("PUT /api/notes/{id}/content", h.Note.UpdateContent)
	mux.HandleFunc("POST /api/notes/{id}/share", h.Note.Share)
	mux.HandleFunc("GET /api/notes/{id}/shared", h.Note.GetShared)

	// Block tags
	mux.HandleFunc("GET /api/notes/{id}/blocks/{blockId}/tags", h.BlockTag.GetState)
	mux.HandleFunc("GET /api/notes/{id}/blocks/{blockId}/tag-options", h.BlockTag.GetOptions)
	mux.HandleFunc("PUT /api/notes/{id}/blocks/{blockId}/tags/{tagId}", h.BlockTag.AddTag)
	mux.HandleFunc("DELETE /api/notes/{id}/blocks/{blockId}/tags/{tagId}", h.BlockTag.RemoveTag)
}
