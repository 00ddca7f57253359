package handler

import (
	"log/slog"
	"net/http"

	campaignSvc "lorekeeper/internal/domain/services/campaign"
	"lorekeeper/internal/httputil"
)

// BlockTagHandler handles per-block tag HTTP requests
type BlockTagHandler struct {
	blockTagService campaignSvc.BlockTagService
	logger          *slog.Logger
}

func NewBlockTagHandler(blockTagService campaignSvc.BlockTagService, logger *slog.Logger) *BlockTagHandler {
	return &BlockTagHandler{
		blockTagService: blockTagService,
		logger:          logger,
	}
}

// GetState GET /api/notes/{id}/blocks/{blockId}/tags
func (h *BlockTagHandler) GetState(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id", "blockId")
	if !ok {
		return
	}

	state, err := h.blockTagService.GetBlockTagState(r.Context(), httputil.GetUserID(r), ids[0], ids[1])
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, state)
}

// GetOptions GET /api/notes/{id}/blocks/{blockId}/tag-options
func (h *BlockTagHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id", "blockId")
	if !ok {
		return
	}

	options, err := h.blockTagService.GetTagOptions(r.Context(), httputil.GetUserID(r), ids[0], ids[1])
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, options)
}

// AddTag is idempotent and answers 204 whether or not the row existed.
// PUT /api/notes/{id}/blocks/{blockId}/tags/{tagId}
func (h *BlockTagHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id", "blockId", "tagId")
	if !ok {
		return
	}

	if err := h.blockTagService.AddTagToBlock(r.Context(), httputil.GetUserID(r), ids[0], ids[1], ids[2]); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}

// RemoveTag DELETE /api/notes/{id}/blocks/{blockId}/tags/{tagId}
func (h *BlockTagHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id", "blockId", "tagId")
	if !ok {
		return
	}

	if err := h.blockTagService.RemoveTagFromBlock(r.Context(), httputil.GetUserID(r), ids[0], ids[1], ids[2]); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}
