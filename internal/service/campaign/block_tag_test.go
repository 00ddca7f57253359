package campaign

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lorekeeper/internal/domain"
	models "lorekeeper/internal/domain/models/campaign"
)

func mentionDoc(tagID string) string {
	return fmt.Sprintf(`{"type":"doc","content":[
		{"type":"paragraph","attrs":{"id":"p1"},"content":[
			{"type":"text","text":"Met "},
			{"type":"mention","attrs":{"id":%q,"label":"Strahd"}}
		]},
		{"type":"paragraph","attrs":{"id":"p2"},"content":[{"type":"text","text":"later"}]}
	]}`, tagID)
}

func TestAddTagToBlockIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tag := f.addTag("Castle", models.TagTypeLocation)
	note := f.addNote(f.ownerID, mentionDoc(uuid.NewString()), nil)
	svc := f.blockTagService()

	require.NoError(t, svc.AddTagToBlock(ctx, f.ownerID, note.ID, "p1", tag.ID))
	require.NoError(t, svc.AddTagToBlock(ctx, f.ownerID, note.ID, "p1", tag.ID))
	assert.Equal(t, 1, f.blockTags.count())

	require.NoError(t, svc.RemoveTagFromBlock(ctx, f.ownerID, note.ID, "p1", tag.ID))
	assert.Equal(t, 0, f.blockTags.count())
	require.NoError(t, svc.RemoveTagFromBlock(ctx, f.ownerID, note.ID, "p1", tag.ID), "removing an absent association succeeds")
}

func TestAddTagToBlockToleratesUnknownBlock(t *testing.T) {
	f := newFixture(t)
	tag := f.addTag("Castle", models.TagTypeLocation)
	note := f.addNote(f.ownerID, mentionDoc(uuid.NewString()), nil)

	err := f.blockTagService().AddTagToBlock(context.Background(), f.ownerID, note.ID, "deleted-block", tag.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.blockTags.count())
}

func TestBlockTagServiceErrors(t *testing.T) {
	f := newFixture(t)
	tag := f.addTag("Castle", models.TagTypeLocation)
	system := f.addTag("Ireena", models.TagTypeSystem)
	foreign := f.addTagIn(uuid.NewString(), "Elsewhere", models.TagTypeCustom)
	note := f.addNote(f.ownerID, mentionDoc(uuid.NewString()), nil)
	svc := f.blockTagService()

	tests := []struct {
		name    string
		userID  string
		noteID  string
		tagID   string
		wantErr error
	}{
		{"no caller", "", note.ID, tag.ID, domain.ErrUnauthorized},
		{"missing note", f.ownerID, uuid.NewString(), tag.ID, domain.ErrNotFound},
		{"not a member", f.outsiderID, note.ID, tag.ID, domain.ErrNotFound},
		{"tag from another campaign", f.ownerID, note.ID, foreign.ID, domain.ErrNotFound},
		{"unknown tag", f.ownerID, note.ID, uuid.NewString(), domain.ErrNotFound},
		{"system tag", f.ownerID, note.ID, system.ID, domain.ErrValidation},
		{"malformed tag id", f.ownerID, note.ID, "nope", domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.AddTagToBlock(context.Background(), tt.userID, tt.noteID, "p1", tt.tagID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Equal(t, 0, f.blockTags.count())

	_, err := svc.GetBlockTagState(context.Background(), "", note.ID, "p1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.GetTagOptions(context.Background(), f.outsiderID, note.ID, "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = svc.RemoveTagFromBlock(context.Background(), f.outsiderID, note.ID, "p1", tag.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetBlockTagState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	inline := f.addTag("Strahd", models.TagTypeCharacter)
	noteTag := f.addTag("Barovia", models.TagTypeSystem)
	manual := f.addTag("Plot", models.TagTypeCustom)
	note := f.addNote(f.ownerID, mentionDoc(inline.ID), strPtr(noteTag.ID))
	svc := f.blockTagService()
	require.NoError(t, svc.AddTagToBlock(ctx, f.ownerID, note.ID, "p1", manual.ID))

	state, err := svc.GetBlockTagState(ctx, f.ownerID, note.ID, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{inline.ID}, state.InlineTagIDs)
	assert.Equal(t, []string{manual.ID}, state.BlockTagIDs)
	require.NotNil(t, state.NoteTagID)
	assert.Equal(t, noteTag.ID, *state.NoteTagID)
	assert.ElementsMatch(t, []string{inline.ID, noteTag.ID, manual.ID}, state.AllTagIDs)

	other, err := svc.GetBlockTagState(ctx, f.ownerID, note.ID, "p2")
	require.NoError(t, err)
	assert.Empty(t, other.InlineTagIDs)
	assert.Empty(t, other.BlockTagIDs)
	assert.Equal(t, []string{noteTag.ID}, other.AllTagIDs, "the note tag is inherited by every block")
}

func TestGetTagOptionsPartition(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.addTag("A", models.TagTypeCharacter)
	b := f.addTag("B", models.TagTypeLocation)
	c := f.addTag("C", models.TagTypeCustom)
	d := f.addTag("D", models.TagTypeSession)
	note := f.addNote(f.ownerID, mentionDoc(a.ID), strPtr(b.ID))
	svc := f.blockTagService()
	require.NoError(t, svc.AddTagToBlock(ctx, f.ownerID, note.ID, "p1", c.ID))

	opts, err := svc.GetTagOptions(ctx, f.ownerID, note.ID, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, tagIDs(opts.Unavailable))
	assert.Equal(t, []string{c.ID}, tagIDs(opts.Removable))
	assert.Equal(t, []string{d.ID}, tagIDs(opts.Available))
}

// privateDoc has one shared block (s1, wrapping s1-inner) and one private
// block (x1), each mentioning a tag.
func privateDoc(sharedTag, privateTag string) string {
	return fmt.Sprintf(`{"type":"doc","content":[
		{"type":"blockquote","attrs":{"id":"s1","shared":true},"content":[
			{"type":"paragraph","attrs":{"id":"s1-inner"},"content":[
				{"type":"mention","attrs":{"id":%q,"label":"Ally"}}
			]}
		]},
		{"type":"paragraph","attrs":{"id":"x1","shared":false},"content":[
			{"type":"mention","attrs":{"id":%q,"label":"Secret"}}
		]}
	]}`, sharedTag, privateTag)
}

func TestBlockTagsOfAnotherPlayersNote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ally := f.addTag("Ally", models.TagTypeCharacter)
	secret := f.addTag("Secret", models.TagTypeCharacter)
	manual := f.addTag("Plot", models.TagTypeCustom)
	note := f.addNote(f.ownerID, privateDoc(ally.ID, secret.ID), nil)
	svc := f.blockTagService()
	require.NoError(t, svc.AddTagToBlock(ctx, f.ownerID, note.ID, "x1", manual.ID))

	t.Run("private block is hidden", func(t *testing.T) {
		_, err := svc.GetBlockTagState(ctx, f.playerID, note.ID, "x1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = svc.GetTagOptions(ctx, f.playerID, note.ID, "x1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = svc.GetBlockTagState(ctx, f.playerID, note.ID, "unknown")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("shared block and its children are visible", func(t *testing.T) {
		state, err := svc.GetBlockTagState(ctx, f.playerID, note.ID, "s1")
		require.NoError(t, err)
		assert.Equal(t, []string{ally.ID}, state.InlineTagIDs)

		state, err = svc.GetBlockTagState(ctx, f.playerID, note.ID, "s1-inner")
		require.NoError(t, err)
		assert.Equal(t, []string{ally.ID}, state.InlineTagIDs)
	})

	t.Run("writes need edit rights", func(t *testing.T) {
		err := svc.AddTagToBlock(ctx, f.playerID, note.ID, "s1", manual.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		err = svc.RemoveTagFromBlock(ctx, f.playerID, note.ID, "x1", manual.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, 1, f.blockTags.count())
	})

	t.Run("author sees every block", func(t *testing.T) {
		state, err := svc.GetBlockTagState(ctx, f.ownerID, note.ID, "x1")
		require.NoError(t, err)
		assert.Equal(t, []string{secret.ID}, state.InlineTagIDs)
		assert.Equal(t, []string{manual.ID}, state.BlockTagIDs)
	})
}

func tagIDs(tags []models.Tag) []string {
	ids := []string{}
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}
