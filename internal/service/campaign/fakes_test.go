package campaign

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"lorekeeper/internal/domain"
	models "lorekeeper/internal/domain/models/campaign"
	"lorekeeper/internal/domain/repositories"
)

// memStore backs every fake repository so they see each other's writes.
type memStore struct {
	mu        sync.Mutex
	campaigns map[string]*models.Campaign
	members   map[string]map[string]models.Member // campaign -> user
	notes     map[string]*models.Note
	tags      map[string]*models.Tag
	blockTags []models.BlockTagAssociation
}

func newMemStore() *memStore {
	return &memStore{
		campaigns: make(map[string]*models.Campaign),
		members:   make(map[string]map[string]models.Member),
		notes:     make(map[string]*models.Note),
		tags:      make(map[string]*models.Tag),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCampaignRepo

type fakeCampaignRepo struct{ s *memStore }

func (r *fakeCampaignRepo) Create(_ context.Context, c *models.Campaign) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = uuid.NewString()
	cp := *c
	r.s.campaigns[c.ID] = &cp
	return nil
}

func (r *fakeCampaignRepo) GetByID(_ context.Context, id string) (*models.Campaign, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.campaigns[id]
	if !ok || c.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCampaignRepo) ListForUser(_ context.Context, userID string) ([]models.Campaign, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Campaign{}
	for id, c := range r.s.campaigns {
		if _, ok := r.s.members[id][userID]; ok && c.DeletedAt == nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCampaignRepo) AddMember(_ context.Context, m *models.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.members[m.CampaignID] == nil {
		r.s.members[m.CampaignID] = make(map[string]models.Member)
	}
	if _, ok := r.s.members[m.CampaignID][m.UserID]; ok {
		return &domain.ConflictError{Message: "member exists", ResourceType: "member", ResourceID: m.UserID}
	}
	r.s.members[m.CampaignID][m.UserID] = *m
	return nil
}

func (r *fakeCampaignRepo) GetMember(_ context.Context, campaignID, userID string) (*models.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.members[campaignID][userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

// fakeNoteRepo

type fakeNoteRepo struct {
	s       *memStore
	updates int
}

func (r *fakeNoteRepo) Create(_ context.Context, n *models.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n.ID = uuid.NewString()
	cp := *n
	r.s.notes[n.ID] = &cp
	return nil
}

func (r *fakeNoteRepo) GetByID(_ context.Context, id string) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notes[id]
	if !ok || n.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNoteRepo) ListByCampaign(_ context.Context, campaignID string) ([]models.NoteSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.NoteSummary{}
	for _, n := range r.s.notes {
		if n.CampaignID == campaignID && n.DeletedAt == nil {
			out = append(out, models.NoteSummary{ID: n.ID, CampaignID: n.CampaignID, OwnerID: n.OwnerID, Name: n.Name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeNoteRepo) UpdateContent(_ context.Context, id string, content json.RawMessage, hasShared bool) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notes[id]
	if !ok || n.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	r.updates++
	n.Content = content
	n.HasSharedContent = hasShared
	n.UpdatedAt = time.Now()
	cp := *n
	return &cp, nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notes[id]
	if !ok || n.DeletedAt != nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	n.DeletedAt = &now
	return nil
}

func (r *fakeNoteRepo) ListIDs(_ context.Context, campaignID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []string
	for id, n := range r.s.notes {
		if n.DeletedAt == nil && (campaignID == "" || n.CampaignID == campaignID) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// fakeTagRepo

type fakeTagRepo struct {
	s     *memStore
	lists int
}

func (r *fakeTagRepo) Create(_ context.Context, t *models.Tag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.tags {
		if existing.CampaignID == t.CampaignID && existing.Name == t.Name {
			return &domain.ConflictError{Message: "tag exists", ResourceType: "tag", ResourceID: existing.ID}
		}
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	cp := *t
	r.s.tags[t.ID] = &cp
	return nil
}

func (r *fakeTagRepo) GetByID(_ context.Context, campaignID, tagID string) (*models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tags[tagID]
	if !ok || t.CampaignID != campaignID {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTagRepo) ListByCampaign(_ context.Context, campaignID string) ([]models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.lists++
	out := []models.Tag{}
	for _, t := range r.s.tags {
		if t.CampaignID == campaignID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTagRepo) Delete(_ context.Context, campaignID, tagID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tags[tagID]
	if !ok || t.CampaignID != campaignID {
		return domain.ErrNotFound
	}
	delete(r.s.tags, tagID)
	kept := r.s.blockTags[:0]
	for _, bt := range r.s.blockTags {
		if bt.TagID != tagID {
			kept = append(kept, bt)
		}
	}
	r.s.blockTags = kept
	return nil
}

// fakeBlockTagRepo

type fakeBlockTagRepo struct{ s *memStore }

func (r *fakeBlockTagRepo) Add(_ context.Context, noteID, blockID, tagID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, bt := range r.s.blockTags {
		if bt.NoteID == noteID && bt.BlockID == blockID && bt.TagID == tagID {
			return nil
		}
	}
	r.s.blockTags = append(r.s.blockTags, models.BlockTagAssociation{
		NoteID: noteID, BlockID: blockID, TagID: tagID, CreatedAt: time.Now(),
	})
	return nil
}

func (r *fakeBlockTagRepo) Remove(_ context.Context, noteID, blockID, tagID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.blockTags[:0]
	for _, bt := range r.s.blockTags {
		if !(bt.NoteID == noteID && bt.BlockID == blockID && bt.TagID == tagID) {
			kept = append(kept, bt)
		}
	}
	r.s.blockTags = kept
	return nil
}

func (r *fakeBlockTagRepo) ListTagIDs(_ context.Context, noteID, blockID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := []string{}
	for _, bt := range r.s.blockTags {
		if bt.NoteID == noteID && bt.BlockID == blockID {
			ids = append(ids, bt.TagID)
		}
	}
	return ids, nil
}

func (r *fakeBlockTagRepo) ListBlockIDs(_ context.Context, noteID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := make(map[string]bool)
	var ids []string
	for _, bt := range r.s.blockTags {
		if bt.NoteID == noteID && !seen[bt.BlockID] {
			seen[bt.BlockID] = true
			ids = append(ids, bt.BlockID)
		}
	}
	return ids, nil
}

func (r *fakeBlockTagRepo) DeleteBlocksExcept(_ context.Context, noteID string, keep []string, createdBefore time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	keepSet := make(map[string]bool, len(keep))
	for _, id := range keep {
		keepSet[id] = true
	}
	var removed int64
	kept := r.s.blockTags[:0]
	for _, bt := range r.s.blockTags {
		if bt.NoteID == noteID && !keepSet[bt.BlockID] && bt.CreatedAt.Before(createdBefore) {
			removed++
			continue
		}
		kept = append(kept, bt)
	}
	r.s.blockTags = kept
	return removed, nil
}

func (r *fakeBlockTagRepo) DeleteForDeletedNotes(_ context.Context, campaignID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var removed int64
	kept := r.s.blockTags[:0]
	for _, bt := range r.s.blockTags {
		n := r.s.notes[bt.NoteID]
		if n != nil && n.DeletedAt != nil && (campaignID == "" || n.CampaignID == campaignID) {
			removed++
			continue
		}
		kept = append(kept, bt)
	}
	r.s.blockTags = kept
	return removed, nil
}

func (r *fakeBlockTagRepo) count() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.blockTags)
}

// fakeTxManager runs fn without a transaction.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
