package campaign

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"lorekeeper/internal/document"
	models "lorekeeper/internal/domain/models/campaign"
	authsvc "lorekeeper/internal/service/auth"
)

// fixture is a campaign with an owner and a player, plus a user outside it.
type fixture struct {
	store     *memStore
	campaigns *fakeCampaignRepo
	notes     *fakeNoteRepo
	tags      *fakeTagRepo
	blockTags *fakeBlockTagRepo
	authz     *authsvc.MembershipAuthorizer
	schema    *document.Schema

	campaignID string
	ownerID    string
	playerID   string
	outsiderID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := newMemStore()
	f := &fixture{
		store:      s,
		campaigns:  &fakeCampaignRepo{s: s},
		notes:      &fakeNoteRepo{s: s},
		tags:       &fakeTagRepo{s: s},
		blockTags:  &fakeBlockTagRepo{s: s},
		schema:     document.DefaultSchema(),
		campaignID: uuid.NewString(),
		ownerID:    uuid.NewString(),
		playerID:   uuid.NewString(),
		outsiderID: uuid.NewString(),
	}
	f.authz = authsvc.NewMembershipAuthorizer(f.campaigns, f.notes)

	now := time.Now()
	s.campaigns[f.campaignID] = &models.Campaign{ID: f.campaignID, OwnerID: f.ownerID, Name: "Curse", CreatedAt: now, UpdatedAt: now}
	s.members[f.campaignID] = map[string]models.Member{
		f.ownerID:  {CampaignID: f.campaignID, UserID: f.ownerID, Role: models.RoleOwner},
		f.playerID: {CampaignID: f.campaignID, UserID: f.playerID, Role: models.RolePlayer},
	}
	return f
}

func (f *fixture) addTag(name string, typ models.TagType) *models.Tag {
	return f.addTagIn(f.campaignID, name, typ)
}

func (f *fixture) addTagIn(campaignID, name string, typ models.TagType) *models.Tag {
	tag := &models.Tag{ID: uuid.NewString(), CampaignID: campaignID, Name: name, Color: "#000000", Type: typ}
	f.store.tags[tag.ID] = tag
	cp := *tag
	return &cp
}

func (f *fixture) addNote(ownerID, content string, tagID *string) *models.Note {
	note := &models.Note{
		ID:         uuid.NewString(),
		CampaignID: f.campaignID,
		OwnerID:    ownerID,
		Name:       "Session 1",
		Content:    json.RawMessage(content),
		TagID:      tagID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	f.store.notes[note.ID] = note
	cp := *note
	return &cp
}

// ageBlockTags moves the creation time of every stored association back by d.
func (f *fixture) ageBlockTags(d time.Duration) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for i := range f.store.blockTags {
		f.store.blockTags[i].CreatedAt = f.store.blockTags[i].CreatedAt.Add(-d)
	}
}

func (f *fixture) storedNote(id string) *models.Note {
	return f.store.notes[id]
}

func (f *fixture) blockTagService() *blockTagService {
	return NewBlockTagService(f.notes, f.tags, f.blockTags, f.authz, f.schema, discardLogger()).(*blockTagService)
}

func (f *fixture) noteService() *noteService {
	return NewNoteService(f.notes, f.tags, f.authz, f.schema, discardLogger()).(*noteService)
}

func (f *fixture) tagService() *tagService {
	return NewTagService(f.tags, f.authz, discardLogger()).(*tagService)
}

func (f *fixture) campaignService() *campaignService {
	return NewCampaignService(f.campaigns, fakeTxManager{}, f.authz, discardLogger()).(*campaignService)
}

func strPtr(s string) *string { return &s }
