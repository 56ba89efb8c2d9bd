package service

import (
	"context"
	"testing"

	"chatshot-be/internal/dto"
	"chatshot-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendMessage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.registerAndLogin(t, "alice", "pw1")

	require.NoError(t, env.chat.AppendMessage(ctx, session, &dto.AppendMessageRequest{Role: "me", Content: "hi"}))
	require.NoError(t, env.chat.AppendMessage(ctx, session, &dto.AppendMessageRequest{Role: "other", Content: "hey"}))

	state, err := env.chat.GetState(ctx, session)
	require.NoError(t, err)
	require.Len(t, state.Messages, 2)
	assert.Equal(t, entity.RoleMe, state.Messages[0].Role)
	assert.Equal(t, "hi", state.Messages[0].Content)
	assert.Equal(t, entity.RoleOther, state.Messages[1].Role)
}

func TestAppendMessageRejectsEmptyContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.registerAndLogin(t, "alice", "pw1")

	err := env.chat.AppendMessage(ctx, session, &dto.AppendMessageRequest{Role: "me", Content: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	state, err := env.chat.GetState(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, state.Messages, "rejected input must not change state")
}

func TestEditRoundTripRestoresList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.registerAndLogin(t, "alice", "pw1")

	require.NoError(t, env.chat.AppendMessage(ctx, session, &dto.AppendMessageRequest{Role: "me", Content: "first"}))
	before, err := env.chat.GetState(ctx, session)
	require.NoError(t, err)

	// append, update the new tail, then delete it: back to the pre-append list
	require.NoError(t, env.chat.AppendMessage(ctx, session, &dto.AppendMessageRequest{Role: "other", Content: "tail"}))
	require.NoError(t, env.chat.UpdateMessage(ctx, session, 1, &dto.UpdateMessageRequest{Role: "me", Content: "edited tail"}))
	require.NoError(t, env.chat.DeleteMessage(ctx, session, 1))

	after, err := env.chat.GetState(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, before.Messages, after.Messages)
}

func TestIndexOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.registerAndLogin(t, "alice", "pw1")

	require.NoError(t, env.chat.AppendMessage(ctx, session, &dto.AppendMessageRequest{Role: "me", Content: "hi"}))

	assert.ErrorIs(t, env.chat.UpdateMessage(ctx, session, 1, &dto.UpdateMessageRequest{Role: "me", Content: "x"}), ErrIndexOutOfRange)
	assert.ErrorIs(t, env.chat.DeleteMessage(ctx, session, -1), ErrIndexOutOfRange)
	assert.ErrorIs(t, env.chat.LoadSnapshot(ctx, session, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, env.chat.DeleteSnapshot(ctx, session, 0), ErrIndexOutOfRange)
}

func TestDeleteMessageRepointsEditingIndex(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.registerAndLogin(t, "alice", "pw1")

	for _, content := range []string{"a", "b", "c"} {
		require.NoError(t, env.chat.AppendMessage(ctx, session, &dto.AppendMessageRequest{Role: "me", Content: content}))
	}

	two := 2
	require.NoError(t, env.chat.SetEditing(ctx, session, &two))

	// Deleting below the pending edit shifts it down by one.
	require.NoError(t, env.chat.DeleteMessage(ctx, session, 0))
	state, err := env.chat.GetState(ctx, session)
	require.NoError(t, err)
	require.NotNil(t, state.EditingIndex)
	assert.Equal(t, 1, *state.EditingIndex)

	// Deleting the edited message clears the pending edit.
	require.NoError(t, env.chat.DeleteMessage(ctx, session, 1))
	state, err = env.chat.GetState(ctx, session)
	require.NoError(t, err)
	assert.Nil(t, state.EditingIndex)
}

func TestUpdateMessageClearsEditingIndex(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.registerAndLogin(t, "alice", "pw1")

	require.NoError(t, env.chat.AppendMessage(ctx, session, &dto.AppendMessageRequest{Role: "me", Content: "a"}))
	zero := 0
	require.NoError(t, env.chat.SetEditing(ctx, session, &zero))
	require.NoError(t, env.chat.UpdateMessage(ctx, session, 0, &dto.UpdateMessageRequest{Role: "me", Content: "a2"}))

	state, err := env.chat.GetState(ctx, session)
	require.NoError(t, err)
	assert.Nil(t, state.EditingIndex)
}

func TestSaveSnapshotValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.registerAndLogin(t, "alice", "pw1")

	// no messages yet
	assert.ErrorIs(t, env.chat.SaveSnapshot(ctx, session, "title"), ErrInvalidInput)

	require.NoError(t, env.chat.AppendMessage(ctx, session, &dto.AppendMessageRequest{Role: "me", Content: "hi"}))
	assert.ErrorIs(t, env.chat.SaveSnapshot(ctx, session, "   "), ErrInvalidInput)
}

func TestSaveThenListScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.registerAndLogin(t, "alice", "pw1")

	require.NoError(t, env.chat.AppendMessage(ctx, session, &dto.AppendMessageRequest{Role: "me", Content: "hi"}))
	require.NoError(t, env.chat.AppendMessage(ctx, session, &dto.AppendMessageRequest{Role: "other", Content: "hey"}))
	require.NoError(t, env.chat.SaveSnapshot(ctx, session, "Chat A"))

	list, err := env.chat.ListSnapshots(ctx, session)
	require.NoError(t, err)
	require.Len(t, list.Snapshots, 1)
	assert.Equal(t, "Chat A", list.Snapshots[0].Title)
	assert.Equal(t, 2, list.Snapshots[0].MessageCount)
	assert.NotEmpty(t, list.Snapshots[0].Date)
}

func TestSnapshotImmutability(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.registerAndLogin(t, "alice", "pw1")

	require.NoError(t, env.chat.AppendMessage(ctx, session, &dto.AppendMessageRequest{Role: "me", Content: "hi"}))
	require.NoError(t, env.chat.AppendMessage(ctx, session, &dto.AppendMessageRequest{Role: "other", Content: "hey"}))
	require.NoError(t, env.chat.SaveSnapshot(ctx, session, "Chat A"))

	// Mutate everything after the save.
	require.NoError(t, env.chat.UpdateMessage(ctx, session, 0, &dto.UpdateMessageRequest{Role: "other", Content: "changed"}))
	require.NoError(t, env.chat.AppendMessage(ctx, session, &dto.AppendMessageRequest{Role: "me", Content: "extra"}))
	require.NoError(t, env.chat.SetProfileName(ctx, session, &dto.SetProfileNameRequest{Target: "me", Name: "다른이름"}))

	// Loading the snapshot restores exactly what was active at save time.
	require.NoError(t, env.chat.LoadSnapshot(ctx, session, 0))

	state, err := env.chat.GetState(ctx, session)
	require.NoError(t, err)
	require.Len(t, state.Messages, 2)
	assert.Equal(t, "hi", state.Messages[0].Content)
	assert.Equal(t, entity.RoleMe, state.Messages[0].Role)
	assert.Equal(t, "hey", state.Messages[1].Content)
	assert.Equal(t, "Chat A", state.Title)

	profile, err := env.chat.GetProfile(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultMeName, profile.MeName)
}

func TestDeleteSnapshotRemovesExactlyOne(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.registerAndLogin(t, "alice", "pw1")

	for _, title := range []string{"one", "two", "three"} {
		require.NoError(t, env.chat.AppendMessage(ctx, session, &dto.AppendMessageRequest{Role: "me", Content: title}))
		require.NoError(t, env.chat.SaveSnapshot(ctx, session, title))
	}

	require.NoError(t, env.chat.DeleteSnapshot(ctx, session, 1))

	list, err := env.chat.ListSnapshots(ctx, session)
	require.NoError(t, err)
	require.Len(t, list.Snapshots, 2)
	assert.Equal(t, "one", list.Snapshots[0].Title)
	assert.Equal(t, "three", list.Snapshots[1].Title, "later entries shift down by one")
}

func TestNewChatResetsWorkingState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.registerAndLogin(t, "alice", "pw1")

	require.NoError(t, env.chat.AppendMessage(ctx, session, &dto.AppendMessageRequest{Role: "me", Content: "hi"}))
	require.NoError(t, env.chat.SetTitle(ctx, session, "custom"))
	zero := 0
	require.NoError(t, env.chat.SetEditing(ctx, session, &zero))
	require.NoError(t, env.chat.SaveSnapshot(ctx, session, "keep me"))

	require.NoError(t, env.chat.NewChat(ctx, session))

	state, err := env.chat.GetState(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, state.Messages)
	assert.Equal(t, entity.DefaultChatTitle, state.Title)
	assert.Nil(t, state.EditingIndex)

	list, err := env.chat.ListSnapshots(ctx, session)
	require.NoError(t, err)
	assert.Len(t, list.Snapshots, 1, "saved list is untouched")
}

func TestSetProfileNamePersistsImmediately(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.registerAndLogin(t, "alice", "pw1")

	require.NoError(t, env.chat.SetProfileName(ctx, session, &dto.SetProfileNameRequest{Target: "other", Name: "친구"}))
	require.NoError(t, env.auth.Logout(ctx, session))

	res, err := env.auth.Login(ctx, &dto.LoginRequest{Id: "alice", Password: "pw1"})
	require.NoError(t, err)

	profile, err := env.chat.GetProfile(ctx, res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, "친구", profile.OtherName)
	assert.Equal(t, entity.DefaultMeName, profile.MeName)
}
