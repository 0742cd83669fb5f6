// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-notes-keeper/models"
)

// End-to-end behaviour over a real SQLite store and in-memory partitions.

// ── access ────────────────────────────────────────────────────────────────────

func TestOwnerAlwaysHasOwnerAccess(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	alice := h.registerVerified(t, "alice@example.com")
	for _, title := range []string{"a", "b", "c"} {
		n := h.createNote(t, alice.UserID, title)

		level, err := h.AccessService.CanAccess(ctx, alice.UserID, n.NoteID)
		require.NoError(t, err)
		assert.Equal(t, models.AccessOwner, level)
	}

	_, err := h.AccessService.CanAccess(ctx, alice.UserID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── collaboration ─────────────────────────────────────────────────────────────

func TestGrant_MakesCollaborator(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	alice := h.registerVerified(t, "alice@example.com")
	bob := h.registerVerified(t, "bob@example.com")
	n := h.createNote(t, alice.UserID, "shared")

	level, err := h.AccessService.CanAccess(ctx, bob.UserID, n.NoteID)
	require.NoError(t, err)
	assert.Equal(t, models.AccessNone, level)

	require.NoError(t, h.CollaborationService.Grant(ctx, models.CollaborationRequest{
		NoteID: n.NoteID, OwnerID: alice.UserID, UserIDs: []int64{bob.UserID, bob.UserID},
	}))

	level, err = h.AccessService.CanAccess(ctx, bob.UserID, n.NoteID)
	require.NoError(t, err)
	assert.Equal(t, models.AccessCollaborator, level)

	ids, err := h.CollaborationService.ListCollaboratingNotes(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Contains(t, ids, n.NoteID)

	ids, err = h.CollaborationService.ListCollaboratingNotes(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Empty(t, ids, "owner is never a collaborator")

	users, err := h.CollaborationService.Collaborators(ctx, n.NoteID, alice.UserID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, bob.UserID, users[0].UserID)

	_, err = h.CollaborationService.Collaborators(ctx, n.NoteID, bob.UserID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGrant_AllOrNothing(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	alice := h.registerVerified(t, "alice@example.com")
	bob := h.registerVerified(t, "bob@example.com")
	carol := h.registerVerified(t, "carol@example.com")
	n := h.createNote(t, alice.UserID, "shared")

	tests := []struct {
		name    string
		targets []int64
		wantErr error
	}{
		{name: "owner among targets", targets: []int64{bob.UserID, alice.UserID}, wantErr: ErrInvalidTarget},
		{name: "unknown user among targets", targets: []int64{bob.UserID, 424242}, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.CollaborationService.Grant(ctx, models.CollaborationRequest{
				NoteID: n.NoteID, OwnerID: alice.UserID, UserIDs: tt.targets,
			})
			require.ErrorIs(t, err, tt.wantErr)

			level, err := h.AccessService.CanAccess(ctx, bob.UserID, n.NoteID)
			require.NoError(t, err)
			assert.Equal(t, models.AccessNone, level, "no pair may be persisted")
		})
	}

	require.NoError(t, h.CollaborationService.Grant(ctx, models.CollaborationRequest{
		NoteID: n.NoteID, OwnerID: alice.UserID, UserIDs: []int64{bob.UserID},
	}))

	err := h.CollaborationService.Grant(ctx, models.CollaborationRequest{
		NoteID: n.NoteID, OwnerID: alice.UserID, UserIDs: []int64{carol.UserID, bob.UserID},
	})
	require.ErrorIs(t, err, ErrAlreadyCollaborator)

	level, err := h.AccessService.CanAccess(ctx, carol.UserID, n.NoteID)
	require.NoError(t, err)
	assert.Equal(t, models.AccessNone, level)
}

func TestGrant_RequiresOwnership(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	alice := h.registerVerified(t, "alice@example.com")
	bob := h.registerVerified(t, "bob@example.com")
	n := h.createNote(t, alice.UserID, "mine")

	err := h.CollaborationService.Grant(ctx, models.CollaborationRequest{NoteID: n.NoteID, OwnerID: bob.UserID, UserIDs: []int64{bob.UserID}})
	assert.ErrorIs(t, err, ErrNotFound)

	err = h.CollaborationService.Grant(ctx, models.CollaborationRequest{NoteID: 777, OwnerID: alice.UserID, UserIDs: []int64{bob.UserID}})
	assert.ErrorIs(t, err, ErrNotFound)

	err = h.CollaborationService.Revoke(ctx, models.CollaborationRequest{NoteID: n.NoteID, OwnerID: bob.UserID, UserIDs: []int64{bob.UserID}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRevoke_MissingPairIsNoop(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	alice := h.registerVerified(t, "alice@example.com")
	bob := h.registerVerified(t, "bob@example.com")
	carol := h.registerVerified(t, "carol@example.com")
	n := h.createNote(t, alice.UserID, "shared")

	require.NoError(t, h.CollaborationService.Grant(ctx, models.CollaborationRequest{
		NoteID: n.NoteID, OwnerID: alice.UserID, UserIDs: []int64{bob.UserID},
	}))

	require.NoError(t, h.CollaborationService.Revoke(ctx, models.CollaborationRequest{
		NoteID: n.NoteID, OwnerID: alice.UserID, UserIDs: []int64{carol.UserID},
	}))

	level, err := h.AccessService.CanAccess(ctx, bob.UserID, n.NoteID)
	require.NoError(t, err)
	assert.Equal(t, models.AccessCollaborator, level)

	require.NoError(t, h.CollaborationService.Revoke(ctx, models.CollaborationRequest{
		NoteID: n.NoteID, OwnerID: alice.UserID, UserIDs: []int64{bob.UserID},
	}))

	level, err = h.AccessService.CanAccess(ctx, bob.UserID, n.NoteID)
	require.NoError(t, err)
	assert.Equal(t, models.AccessNone, level)
}

func TestDeleteNote_CascadesCollaborators(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	alice := h.registerVerified(t, "alice@example.com")
	bob := h.registerVerified(t, "bob@example.com")
	carol := h.registerVerified(t, "carol@example.com")
	n := h.createNote(t, alice.UserID, "doomed")
	kept := h.createNote(t, alice.UserID, "kept")

	for _, id := range []int64{n.NoteID, kept.NoteID} {
		require.NoError(t, h.CollaborationService.Grant(ctx, models.CollaborationRequest{
			NoteID: id, OwnerID: alice.UserID, UserIDs: []int64{bob.UserID, carol.UserID},
		}))
	}

	assert.ErrorIs(t, h.NoteService.DeleteNote(ctx, bob.UserID, n.NoteID), ErrUnauthorized)
	require.NoError(t, h.NoteService.DeleteNote(ctx, alice.UserID, n.NoteID))

	for _, u := range []models.User{bob, carol} {
		ids, err := h.CollaborationService.ListCollaboratingNotes(ctx, u.UserID)
		require.NoError(t, err)
		assert.Equal(t, []int64{kept.NoteID}, ids)
	}

	assert.ErrorIs(t, h.NoteService.DeleteNote(ctx, alice.UserID, n.NoteID), ErrNotFound)
}

// ── cache-coherent view ───────────────────────────────────────────────────────

func TestListNotes_WarmReadIsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	alice := h.registerVerified(t, "alice@example.com")
	h.createNote(t, alice.UserID, "one")
	h.createNote(t, alice.UserID, "two")

	first, err := h.NoteService.ListNotes(ctx, alice.UserID)
	require.NoError(t, err)
	second, err := h.NoteService.ListNotes(ctx, alice.UserID)
	require.NoError(t, err)

	assert.Len(t, first, 2)
	assert.Equal(t, first, second)
}

func TestListNotes_ColdThenWarmKeepsDocumentedStaleness(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	alice := h.registerVerified(t, "alice@example.com")
	bob := h.registerVerified(t, "bob@example.com")

	own := h.createNote(t, bob.UserID, "bob's")
	shared := h.createNote(t, alice.UserID, "shared early")
	require.NoError(t, h.CollaborationService.Grant(ctx, models.CollaborationRequest{
		NoteID: shared.NoteID, OwnerID: alice.UserID, UserIDs: []int64{bob.UserID},
	}))

	require.NoError(t, h.NoteService.InvalidateCache(ctx, bob.UserID))

	cold, err := h.NoteService.ListNotes(ctx, bob.UserID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{own.NoteID, shared.NoteID}, noteIDs(cold))

	late := h.createNote(t, alice.UserID, "shared late")
	require.NoError(t, h.CollaborationService.Grant(ctx, models.CollaborationRequest{
		NoteID: late.NoteID, OwnerID: alice.UserID, UserIDs: []int64{bob.UserID},
	}))

	warm, err := h.NoteService.ListNotes(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Equal(t, cold, warm, "warm partition is the complete answer")

	require.NoError(t, h.NoteService.InvalidateCache(ctx, bob.UserID))

	recomputed, err := h.NoteService.ListNotes(ctx, bob.UserID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{own.NoteID, shared.NoteID, late.NoteID}, noteIDs(recomputed))
}

func TestCreateNote_IntoColdPartitionWarmsWithFullSet(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	alice := h.registerVerified(t, "alice@example.com")
	bob := h.registerVerified(t, "bob@example.com")
	shared := h.createNote(t, alice.UserID, "shared")
	require.NoError(t, h.CollaborationService.Grant(ctx, models.CollaborationRequest{
		NoteID: shared.NoteID, OwnerID: alice.UserID, UserIDs: []int64{bob.UserID},
	}))

	require.NoError(t, h.NoteService.InvalidateCache(ctx, bob.UserID))
	created := h.createNote(t, bob.UserID, "bob's first")

	notes, err := h.NoteService.ListNotes(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Equal(t, []int64{shared.NoteID, created.NoteID}, noteIDs(notes))
}

func TestUpdateNote_Authorization(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	alice := h.registerVerified(t, "alice@example.com")
	bob := h.registerVerified(t, "bob@example.com")
	mallory := h.registerVerified(t, "mallory@example.com")
	n := h.createNote(t, alice.UserID, "original")

	_, err := h.NoteService.UpdateNote(ctx, mallory.UserID, n.NoteID, models.NotePatch{Title: strPtr("hacked")})
	require.ErrorIs(t, err, ErrUnauthorized)

	stored, err := h.storages.NoteRepository.GetNote(ctx, n.NoteID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Title)

	require.NoError(t, h.CollaborationService.Grant(ctx, models.CollaborationRequest{
		NoteID: n.NoteID, OwnerID: alice.UserID, UserIDs: []int64{bob.UserID},
	}))

	updated, err := h.NoteService.UpdateNote(ctx, bob.UserID, n.NoteID, models.NotePatch{Title: strPtr("edited"), Color: strPtr("blue")})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Title)
	assert.Equal(t, "blue", updated.Color)
	assert.Equal(t, alice.UserID, updated.UserID, "owner is immutable")

	_, err = h.NoteService.UpdateNote(ctx, alice.UserID, 5555, models.NotePatch{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = h.NoteService.UpdateNote(ctx, alice.UserID, n.NoteID, models.NotePatch{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestUpdateNote_OnlyCallerPartitionIsRefreshed(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	alice := h.registerVerified(t, "alice@example.com")
	bob := h.registerVerified(t, "bob@example.com")
	n := h.createNote(t, alice.UserID, "v1")
	require.NoError(t, h.CollaborationService.Grant(ctx, models.CollaborationRequest{
		NoteID: n.NoteID, OwnerID: alice.UserID, UserIDs: []int64{bob.UserID},
	}))

	aliceBefore, err := h.NoteService.ListNotes(ctx, alice.UserID)
	require.NoError(t, err)
	_, err = h.NoteService.ListNotes(ctx, bob.UserID)
	require.NoError(t, err)

	_, err = h.NoteService.UpdateNote(ctx, bob.UserID, n.NoteID, models.NotePatch{Title: strPtr("v2")})
	require.NoError(t, err)

	bobAfter, err := h.NoteService.ListNotes(ctx, bob.UserID)
	require.NoError(t, err)
	require.Len(t, bobAfter, 1)
	assert.Equal(t, "v2", bobAfter[0].Title)

	aliceAfter, err := h.NoteService.ListNotes(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, aliceBefore, aliceAfter, "owner partition keeps its snapshot")

	require.NoError(t, h.NoteService.InvalidateCache(ctx, alice.UserID))
	aliceFresh, err := h.NoteService.ListNotes(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, "v2", aliceFresh[0].Title)
}

func TestDeleteNote_RemovesFromCallerPartition(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	alice := h.registerVerified(t, "alice@example.com")
	a := h.createNote(t, alice.UserID, "a")
	b := h.createNote(t, alice.UserID, "b")

	_, err := h.NoteService.ListNotes(ctx, alice.UserID)
	require.NoError(t, err)

	require.NoError(t, h.NoteService.DeleteNote(ctx, alice.UserID, a.NoteID))

	notes, err := h.NoteService.ListNotes(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.NoteID}, noteIDs(notes))
}

func TestListNotes_ConcurrentColdReadsAgree(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	alice := h.registerVerified(t, "alice@example.com")
	for _, title := range []string{"a", "b", "c", "d"} {
		h.createNote(t, alice.UserID, title)
	}
	require.NoError(t, h.NoteService.InvalidateCache(ctx, alice.UserID))

	const readers = 8
	results := make([][]models.Note, readers)
	errs := make([]error, readers)

	var wg sync.WaitGroup
	for i := range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = h.NoteService.ListNotes(ctx, alice.UserID)
		}()
	}
	wg.Wait()

	for i := range readers {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0], results[i])
	}
	assert.Len(t, results[0], 4)
}

// ── identity ──────────────────────────────────────────────────────────────────

func TestLoginSequence(t *testing.T) {
	h := newHarness(t)
	ctx := testContext()

	creds := models.Credentials{UserName: "dave@example.com", Password: "secret1"}

	u, err := h.AuthService.RegisterUser(ctx, models.User{UserName: creds.UserName, Password: creds.Password})
	require.NoError(t, err)
	assert.False(t, u.IsVerified)

	_, err = h.AuthService.Login(ctx, creds)
	require.ErrorIs(t, err, ErrNotVerified)

	_, err = h.AuthService.Login(ctx, models.Credentials{UserName: creds.UserName, Password: "wrong-pass"})
	require.ErrorIs(t, err, ErrNotVerified, "unverified users are told so before the password is checked")

	require.NoError(t, h.AuthService.VerifyUser(ctx, tokenFromMail(t, h.mail.last(t))))
	require.NoError(t, h.AuthService.Verify(ctx, u.UserID), "verification is idempotent")

	token, err := h.AuthService.Login(ctx, creds)
	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)

	parsed, err := h.AuthService.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, u.UserID, parsed.UserID)

	_, err = h.AuthService.Login(ctx, models.Credentials{UserName: creds.UserName, Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = h.AuthService.Login(ctx, models.Credentials{UserName: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = h.AuthService.RegisterUser(ctx, models.User{UserName: creds.UserName, Password: "another1"})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
}
