// Package seed fills a development database with a demo campaign.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	models "lorekeeper/internal/domain/models/campaign"
	campaignSvc "lorekeeper/internal/domain/services/campaign"
)

// CampaignSeeder creates demo data through the services, so seeded content
// goes through the same validation and block id assignment as user edits.
type CampaignSeeder struct {
	campaigns campaignSvc.CampaignService
	tags      campaignSvc.TagService
	notes     campaignSvc.NoteService
	logger    *slog.Logger
}

func NewCampaignSeeder(
	campaigns campaignSvc.CampaignService,
	tags campaignSvc.TagService,
	notes campaignSvc.NoteService,
	logger *slog.Logger,
) *CampaignSeeder {
	return &CampaignSeeder{
		campaigns: campaigns,
		tags:      tags,
		notes:     notes,
		logger:    logger,
	}
}

// Result lists what was created.
type Result struct {
	Campaign *models.Campaign
	Tags     []*models.Tag
	Notes    []*models.Note
}

type character struct {
	name    string
	color   string
	private string
	shared  string
}

var characters = []character{
	{
		name:    "Mara Vell",
		color:   "#b45309",
		private: "Secretly pays the river toll to the drowned king.",
		shared:  "Runs the ferry across the Greywater.",
	},
	{
		name:    "Old Tobin",
		color:   "#4d7c0f",
		private: "Knows where the crown sank and will not say.",
		shared:  "Keeps bees behind the mill.",
	},
}

var userTags = []campaignSvc.CreateTagRequest{
	{Name: "Greywater", Type: models.TagTypeLocation, Color: "#0369a1"},
	{Name: "Session 1", Type: models.TagTypeSession},
	{Name: "Rumor", Type: models.TagTypeCustom},
}

// Seed creates one campaign owned by ownerID with a System tag and note per
// character, a few user tags, and a session note that mentions both
// characters and shares one paragraph.
func (s *CampaignSeeder) Seed(ctx context.Context, ownerID string) (*Result, error) {
	campaign, err := s.campaigns.CreateCampaign(ctx, &campaignSvc.CreateCampaignRequest{
		UserID: ownerID,
		Name:   "The Sunken Crown",
	})
	if err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	result := &Result{Campaign: campaign}

	for i := range userTags {
		req := userTags[i]
		req.UserID = ownerID
		req.CampaignID = campaign.ID
		tag, err := s.tags.CreateTag(ctx, &req)
		if err != nil {
			return nil, fmt.Errorf("create tag %q: %w", req.Name, err)
		}
		result.Tags = append(result.Tags, tag)
	}

	characterTags := make([]*models.Tag, 0, len(characters))
	for _, c := range characters {
		tag, err := s.tags.CreateSystemTag(ctx, campaign.ID, c.name, c.color)
		if err != nil {
			return nil, fmt.Errorf("create system tag %q: %w", c.name, err)
		}
		characterTags = append(characterTags, tag)
		result.Tags = append(result.Tags, tag)

		content, err := json.Marshal(doc(
			paragraph(text(c.private)),
			sharedParagraph(text(c.shared)),
		))
		if err != nil {
			return nil, err
		}
		note, err := s.notes.CreateNote(ctx, &campaignSvc.CreateNoteRequest{
			UserID:     ownerID,
			CampaignID: campaign.ID,
			Name:       c.name,
			Content:    content,
			TagID:      &tag.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("create note %q: %w", c.name, err)
		}
		result.Notes = append(result.Notes, note)
	}

	session, err := json.Marshal(doc(
		heading("Session 1"),
		sharedParagraph(
			text("The party crossed with "),
			mention(characterTags[0]),
			text(" at dusk."),
		),
		paragraph(
			mention(characterTags[1]),
			text(" watched from the mill. The players did not notice."),
		),
	))
	if err != nil {
		return nil, err
	}
	note, err := s.notes.CreateNote(ctx, &campaignSvc.CreateNoteRequest{
		UserID:     ownerID,
		CampaignID: campaign.ID,
		Name:       "Session 1",
		Content:    session,
	})
	if err != nil {
		return nil, fmt.Errorf("create session note: %w", err)
	}
	result.Notes = append(result.Notes, note)

	s.logger.Info("campaign seeded",
		"campaign_id", campaign.ID,
		"tags", len(result.Tags),
		"notes", len(result.Notes),
	)
	return result, nil
}

// Minimal builders for editor JSON.

type node = map[string]any

func doc(content ...node) node {
	return node{"type": "doc", "content": content}
}

func paragraph(content ...node) node {
	return node{"type": "paragraph", "content": content}
}

func sharedParagraph(content ...node) node {
	p := paragraph(content...)
	p["attrs"] = node{"shared": true}
	return p
}

func heading(title string) node {
	return node{"type": "heading", "attrs": node{"level": 2}, "content": []node{text(title)}}
}

func text(s string) node {
	return node{"type": "text", "text": s}
}

func mention(tag *models.Tag) node {
	return node{"type": "mention", "attrs": node{"id": tag.ID, "label": tag.Name}}
}
