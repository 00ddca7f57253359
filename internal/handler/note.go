package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	campaignSvc "lorekeeper/internal/domain/services/campaign"
	"lorekeeper/internal/httputil"
)

// NoteHandler handles note HTTP requests, including the shared-content commands
type NoteHandler struct {
	noteService campaignSvc.NoteService
	logger      *slog.Logger
}

func NewNoteHandler(noteService campaignSvc.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

type updateContentRequest struct {
	Content json.RawMessage `json:"content"`
}

// ListNotes GET /api/campaigns/{id}/notes
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id")
	if !ok {
		return
	}

	notes, err := h.noteService.ListNotes(r.Context(), httputil.GetUserID(r), ids[0])
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, notes)
}

// CreateNote POST /api/campaigns/{id}/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id")
	if !ok {
		return
	}

	var req campaignSvc.CreateNoteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleBodyError(w, err)
		return
	}
	req.UserID = httputil.GetUserID(r)
	req.CampaignID = ids[0]

	note, err := h.noteService.CreateNote(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, note)
}

// GetNote GET /api/notes/{id}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id")
	if !ok {
		return
	}

	note, err := h.noteService.GetNote(r.Context(), httputil.GetUserID(r), ids[0])
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, note)
}

// DeleteNote DELETE /api/notes/{id}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id")
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(r.Context(), httputil.GetUserID(r), ids[0]); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}

// UpdateContent replaces the note's document
// PUT /api/notes/{id}/content
func (h *NoteHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id")
	if !ok {
		return
	}

	var req updateContentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleBodyError(w, err)
		return
	}
	if len(req.Content) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "content is required")
		return
	}

	note, err := h.noteService.UpdateNoteContent(r.Context(), httputil.GetUserID(r), ids[0], req.Content)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, note)
}

// Share runs set, unset or toggle over a selection. A selection that covers
// no shareable block answers 200 with applied=false.
// POST /api/notes/{id}/share
func (h *NoteHandler) Share(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id")
	if !ok {
		return
	}

	var req campaignSvc.ShareRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleBodyError(w, err)
		return
	}
	req.ActorName = httputil.GetUserName(r)

	result, err := h.noteService.ApplyShareCommand(r.Context(), httputil.GetUserID(r), ids[0], &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, result)
}

// GetShared returns only the shared blocks of a note
// GET /api/notes/{id}/shared
func (h *NoteHandler) GetShared(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id")
	if !ok {
		return
	}

	view, err := h.noteService.GetSharedView(r.Context(), httputil.GetUserID(r), ids[0])
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, view)
}
