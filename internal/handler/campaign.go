package handler

import (
	"log/slog"
	"net/http"

	campaignSvc "lorekeeper/internal/domain/services/campaign"
	"lorekeeper/internal/httputil"
)

// CampaignHandler handles campaign HTTP requests
type CampaignHandler struct {
	campaignService campaignSvc.CampaignService
	logger          *slog.Logger
}

func NewCampaignHandler(campaignService campaignSvc.CampaignService, logger *slog.Logger) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		logger:          logger,
	}
}

// ListCampaigns returns the campaigns the caller belongs to
// GET /api/campaigns
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaignService.ListCampaigns(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, campaigns)
}

// CreateCampaign creates a campaign owned by the caller
// POST /api/campaigns
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignSvc.CreateCampaignRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleBodyError(w, err)
		return
	}
	req.UserID = httputil.GetUserID(r)

	campaign, err := h.campaignService.CreateCampaign(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, campaign)
}

// GetCampaign returns one campaign
// GET /api/campaigns/{id}
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id")
	if !ok {
		return
	}

	campaign, err := h.campaignService.GetCampaign(r.Context(), httputil.GetUserID(r), ids[0])
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, campaign)
}

// AddMember adds a player to the campaign
// POST /api/campaigns/{id}/members
func (h *CampaignHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathValues(w, r, "id")
	if !ok {
		return
	}

	var req campaignSvc.AddMemberRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	member, err := h.campaignService.AddMember(r.Context(), httputil.GetUserID(r), ids[0], &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, member)
}
