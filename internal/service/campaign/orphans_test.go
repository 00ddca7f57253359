package campaign

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "lorekeeper/internal/domain/models/campaign"
)

func TestCollectOrphans(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tag := f.addTag("Plot", models.TagTypeCustom)
	live := f.addNote(f.ownerID, mentionDoc(tag.ID), nil)
	gone := f.addNote(f.ownerID, mentionDoc(tag.ID), nil)
	untouched := f.addNote(f.ownerID, mentionDoc(tag.ID), nil)

	for _, row := range []struct{ note, block string }{
		{live.ID, "p1"},
		{live.ID, "p2"},
		{live.ID, "split-away"},
		{gone.ID, "p1"},
		{untouched.ID, "p2"},
	} {
		require.NoError(t, f.blockTags.Add(ctx, row.note, row.block, tag.ID))
	}
	f.ageBlockTags(time.Hour)
	deletedAt := time.Now()
	f.storedNote(gone.ID).DeletedAt = &deletedAt

	collector := NewOrphanCollector(f.notes, f.blockTags, f.schema, discardLogger())
	report, err := collector.CollectOrphans(ctx, f.campaignID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.DeletedNoteRows)
	assert.Equal(t, int64(1), report.OrphanRowsDeleted)
	assert.Equal(t, 2, report.NotesScanned)
	assert.Equal(t, 3, f.blockTags.count())

	ids, err := f.blockTags.ListBlockIDs(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)

	again, err := collector.CollectOrphans(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, again.OrphanRowsDeleted)
	assert.Zero(t, again.DeletedNoteRows)
}

// racingNoteRepo runs afterRead once, right after the collector has read a
// note and before it deletes anything.
type racingNoteRepo struct {
	*fakeNoteRepo
	afterRead func()
}

func (r *racingNoteRepo) GetByID(ctx context.Context, id string) (*models.Note, error) {
	n, err := r.fakeNoteRepo.GetByID(ctx, id)
	if err == nil && r.afterRead != nil {
		hook := r.afterRead
		r.afterRead = nil
		hook()
	}
	return n, err
}

func TestCollectOrphansSparesBlocksTaggedAfterRead(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tag := f.addTag("Plot", models.TagTypeCustom)
	note := f.addNote(f.ownerID, mentionDoc(tag.ID), nil)
	f.storedNote(note.ID).UpdatedAt = time.Now().Add(-time.Minute)

	require.NoError(t, f.blockTags.Add(ctx, note.ID, "split-away", tag.ID))
	f.ageBlockTags(time.Hour)

	notes := &racingNoteRepo{fakeNoteRepo: f.notes}
	notes.afterRead = func() {
		// The author saves a new block and tags it while collection runs.
		fresh := `{"type":"doc","content":[
			{"type":"paragraph","attrs":{"id":"p1"},"content":[{"type":"text","text":"a"}]},
			{"type":"paragraph","attrs":{"id":"fresh"},"content":[{"type":"text","text":"b"}]}
		]}`
		_, err := f.notes.UpdateContent(ctx, note.ID, json.RawMessage(fresh), false)
		require.NoError(t, err)
		require.NoError(t, f.blockTags.Add(ctx, note.ID, "fresh", tag.ID))
	}

	collector := NewOrphanCollector(notes, f.blockTags, f.schema, discardLogger())
	report, err := collector.CollectOrphans(ctx, f.campaignID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.OrphanRowsDeleted)

	ids, err := f.blockTags.ListBlockIDs(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, ids)
}
