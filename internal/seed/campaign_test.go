package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lorekeeper/internal/document"
	models "lorekeeper/internal/domain/models/campaign"
	campaignSvc "lorekeeper/internal/domain/services/campaign"
)

type recorder struct {
	campaignSvc.CampaignService
	campaignSvc.TagService
	campaignSvc.NoteService

	tags  []*models.Tag
	notes []*campaignSvc.CreateNoteRequest
	fail  string
}

func (r *recorder) CreateCampaign(_ context.Context, req *campaignSvc.CreateCampaignRequest) (*models.Campaign, error) {
	return &models.Campaign{ID: "c1", OwnerID: req.UserID, Name: req.Name}, nil
}

func (r *recorder) CreateTag(_ context.Context, req *campaignSvc.CreateTagRequest) (*models.Tag, error) {
	if req.Name == r.fail {
		return nil, errors.New("boom")
	}
	tag := &models.Tag{ID: fmt.Sprintf("t%d", len(r.tags)+1), CampaignID: req.CampaignID, Name: req.Name, Type: req.Type}
	r.tags = append(r.tags, tag)
	return tag, nil
}

func (r *recorder) CreateSystemTag(_ context.Context, campaignID, name, color string) (*models.Tag, error) {
	tag := &models.Tag{ID: fmt.Sprintf("t%d", len(r.tags)+1), CampaignID: campaignID, Name: name, Color: color, Type: models.TagTypeSystem}
	r.tags = append(r.tags, tag)
	return tag, nil
}

func (r *recorder) CreateNote(_ context.Context, req *campaignSvc.CreateNoteRequest) (*models.Note, error) {
	r.notes = append(r.notes, req)
	return &models.Note{ID: fmt.Sprintf("n%d", len(r.notes)), CampaignID: req.CampaignID, Name: req.Name, TagID: req.TagID}, nil
}

func newSeeder(r *recorder) *CampaignSeeder {
	return NewCampaignSeeder(r, r, r, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSeed(t *testing.T) {
	r := &recorder{}
	result, err := newSeeder(r).Seed(context.Background(), "owner-1")
	require.NoError(t, err)

	assert.Equal(t, "owner-1", result.Campaign.OwnerID)
	assert.Len(t, result.Tags, len(userTags)+len(characters))
	assert.Len(t, result.Notes, len(characters)+1)

	schema := document.DefaultSchema()
	for i, req := range r.notes {
		doc, err := document.Parse(req.Content, schema)
		require.NoError(t, err, "note %s", req.Name)
		assert.True(t, document.HasSharedContent(doc), "note %s", req.Name)

		if i < len(characters) {
			require.NotNil(t, req.TagID)
			tag := result.Tags[len(userTags)+i]
			assert.Equal(t, tag.ID, *req.TagID)
			assert.True(t, tag.IsSystem())
		} else {
			assert.Nil(t, req.TagID)
		}
	}

	session, err := document.Parse(r.notes[len(r.notes)-1].Content, schema)
	require.NoError(t, err)
	n := 0
	document.AssignBlockIDs(session, func() string {
		n++
		return fmt.Sprintf("b%d", n)
	})
	var mentioned []string
	for _, id := range document.BlockIDs(session) {
		mentioned = append(mentioned, document.InlineTagIDs(session, id)...)
	}
	assert.ElementsMatch(t, []string{result.Tags[len(userTags)].ID, result.Tags[len(userTags)+1].ID}, mentioned)
}

func TestSeedStopsOnError(t *testing.T) {
	r := &recorder{fail: "Session 1"}
	_, err := newSeeder(r).Seed(context.Background(), "owner-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Session 1")
	assert.Empty(t, r.notes)
}
