package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessages_SendAndInbox(t *testing.T) {
	db := newTestDB(t)
	seedRoles(t, db)
	svc := NewMessageService(db)

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	carol := seedUser(t, db, "carol@example.com")

	_, err := svc.Create(alice.ID, &bob.ID, "hello bob")
	require.NoError(t, err)
	_, err = svc.Create(bob.ID, &alice.ID, "hi alice")
	require.NoError(t, err)
	_, err = svc.Create(carol.ID, nil, "broadcasting")
	require.NoError(t, err)

	inbox, err := svc.ForUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	assert.Equal(t, "hello bob", inbox[0].Content)
	assert.Equal(t, "hi alice", inbox[1].Content)

	inbox, err = svc.ForUser(carol.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)

	_, err = svc.ForUser("missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestMessages_Validation(t *testing.T) {
	db := newTestDB(t)
	seedRoles(t, db)
	svc := NewMessageService(db)

	alice := seedUser(t, db, "alice@example.com")

	_, err := svc.Create(alice.ID, nil, "   ")
	require.Error(t, err)

	missing := "missing"
	_, err = svc.Create(alice.ID, &missing, "hello?")
	require.ErrorIs(t, err, ErrUserNotFound)

	msg, err := svc.Create(alice.ID, nil, "note to self")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(msg.ID))
	require.ErrorIs(t, svc.Delete(msg.ID), ErrMessageNotFound)
}
