package handler

import (
	"log/slog"
	"net/http"

	campaignSvc "lorekeeper/internal/domain/services/campaign"
	"lorekeeper/internal/httputil"
)

// TagHandler handles campaign tag HTTP requests
type TagHandler struct {
	tagService campaignSvc.TagService
	logger     *slog.Logger
}

func NewTagHandler(tagService campaignSvc.TagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		logger:     logger,
	}
}

// ListTags GET /api/campaigns/{id}/tags
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id")
	if !ok {
		return
	}

	tags, err := h.tagService.ListTags(r.Context(), httputil.GetUserID(r), ids[0])
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, tags)
}

// CreateTag POST /api/campaigns/{id}/tags
//
// A duplicate name answers 409 with the existing tag's id in resource_id.
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id")
	if !ok {
		return
	}

	var req campaignSvc.CreateTagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleBodyError(w, err)
		return
	}
	req.UserID = httputil.GetUserID(r)
	req.CampaignID = ids[0]

	tag, err := h.tagService.CreateTag(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, tag)
}

// GetTag GET /api/campaigns/{id}/tags/{tagId}
func (h *TagHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id", "tagId")
	if !ok {
		return
	}

	tag, err := h.tagService.GetTag(r.Context(), httputil.GetUserID(r), ids[0], ids[1])
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, tag)
}

// DeleteTag DELETE /api/campaigns/{id}/tags/{tagId}
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id", "tagId")
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(r.Context(), httputil.GetUserID(r), ids[0], ids[1]); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}
