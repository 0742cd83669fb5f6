// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-notes-keeper/models"
)

// Every statement is built with squirrel so the same code serves both
// placeholder styles ($n for PostgreSQL, ? for SQLite).

var (
	userColumns  = []string{"user_id", "user_name", "password_hash", "first_name", "last_name", "location", "phone", "is_verified", "created_at"}
	noteColumns  = []string{"note_id", "user_id", "title", "description", "color", "reminder", "created_at", "updated_at"}
	labelColumns = []string{"label_id", "user_id", "name"}
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

// ── users ─────────────────────────────────────────────────────────────────────

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert("users").
		Columns("user_name", "password_hash", "first_name", "last_name", "location", "phone", "is_verified").
		Values(user.UserName, user.PasswordHash, user.FirstName, user.LastName, user.Location, user.Phone, false).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildFindUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(userColumns...).From("users").Where(where).ToSql()
}

func buildSetVerifiedQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Update("users").
		Set("is_verified", true).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// ── notes ─────────────────────────────────────────────────────────────────────

func buildCreateNoteQuery(b sq.StatementBuilderType, note models.Note) (string, []any, error) {
	return b.Insert("notes").
		Columns("user_id", "title", "description", "color", "reminder").
		Values(note.UserID, note.Title, note.Description, note.Color, note.Reminder).
		Suffix(returning(noteColumns)).
		ToSql()
}

func buildGetNoteQuery(b sq.StatementBuilderType, noteID int64) (string, []any, error) {
	return b.Select(noteColumns...).From("notes").Where(sq.Eq{"note_id": noteID}).ToSql()
}

func buildListOwnedNotesQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select(noteColumns...).
		From("notes").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("note_id").
		ToSql()
}

func buildListCollaboratingNotesQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select(prefixed("n", noteColumns)...).
		From("notes n").
		Join("collaborators c ON c.note_id = n.note_id").
		Where(sq.Eq{"c.user_id": userID}).
		OrderBy("n.note_id").
		ToSql()
}

// buildUpdateNoteQuery sets only the fields present in patch. The row only
// matches while editorID owns the note or is one of its collaborators.
func buildUpdateNoteQuery(b sq.StatementBuilderType, noteID, editorID int64, patch models.NotePatch) (string, []any, error) {
	q := b.Update("notes").Set("updated_at", sq.Expr("CURRENT_TIMESTAMP"))
	if patch.Title != nil {
		q = q.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		q = q.Set("description", *patch.Description)
	}
	if patch.Color != nil {
		q = q.Set("color", *patch.Color)
	}

	return q.Where(sq.Eq{"note_id": noteID}).
		Where(sq.Or{
			sq.Eq{"user_id": editorID},
			sq.Expr("EXISTS (SELECT 1 FROM collaborators c WHERE c.note_id = notes.note_id AND c.user_id = ?)", editorID),
		}).
		Suffix(returning(noteColumns)).
		ToSql()
}

func buildDeleteNoteQuery(b sq.StatementBuilderType, noteID, ownerID int64) (string, []any, error) {
	return b.Delete("notes").Where(sq.Eq{"note_id": noteID, "user_id": ownerID}).ToSql()
}

func buildNoteOwnerQuery(b sq.StatementBuilderType, noteID int64) (string, []any, error) {
	return b.Select("user_id").From("notes").Where(sq.Eq{"note_id": noteID}).ToSql()
}

// ── collaborators ─────────────────────────────────────────────────────────────

func buildUserExistsQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select("1").From("users").Where(sq.Eq{"user_id": userID}).ToSql()
}

func buildCollaboratorExistsQuery(b sq.StatementBuilderType, noteID, userID int64) (string, []any, error) {
	return b.Select("1").From("collaborators").Where(sq.Eq{"note_id": noteID, "user_id": userID}).ToSql()
}

func buildAddCollaboratorQuery(b sq.StatementBuilderType, noteID, userID int64) (string, []any, error) {
	return b.Insert("collaborators").Columns("user_id", "note_id").Values(userID, noteID).ToSql()
}

func buildRemoveCollaboratorsQuery(b sq.StatementBuilderType, noteID int64, userIDs []int64) (string, []any, error) {
	return b.Delete("collaborators").Where(sq.Eq{"note_id": noteID, "user_id": userIDs}).ToSql()
}

func buildDeleteCollaboratorsByNoteQuery(b sq.StatementBuilderType, noteID int64) (string, []any, error) {
	return b.Delete("collaborators").Where(sq.Eq{"note_id": noteID}).ToSql()
}

func buildListNoteIDsForUserQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select("note_id").
		From("collaborators").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("note_id").
		ToSql()
}

func buildListUsersForNoteQuery(b sq.StatementBuilderType, noteID int64) (string, []any, error) {
	return b.Select(prefixed("u", userColumns)...).
		From("users u").
		Join("collaborators c ON c.user_id = u.user_id").
		Where(sq.Eq{"c.note_id": noteID}).
		OrderBy("u.user_id").
		ToSql()
}

// ── labels ────────────────────────────────────────────────────────────────────

func buildCreateLabelQuery(b sq.StatementBuilderType, label models.Label) (string, []any, error) {
	return b.Insert("labels").
		Columns("user_id", "name").
		Values(label.UserID, label.Name).
		Suffix(returning(labelColumns)).
		ToSql()
}

func buildListLabelsQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select(labelColumns...).
		From("labels").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("label_id").
		ToSql()
}

func buildUpdateLabelQuery(b sq.StatementBuilderType, labelID, userID int64, patch models.LabelPatch) (string, []any, error) {
	q := b.Update("labels")
	if patch.Name != nil {
		q = q.Set("name", *patch.Name)
	}

	return q.Where(sq.Eq{"label_id": labelID, "user_id": userID}).
		Suffix(returning(labelColumns)).
		ToSql()
}

func buildDeleteLabelQuery(b sq.StatementBuilderType, labelID, userID int64) (string, []any, error) {
	return b.Delete("labels").Where(sq.Eq{"label_id": labelID, "user_id": userID}).ToSql()
}

// ── request logs ──────────────────────────────────────────────────────────────

// buildAddRequestCountsQuery upserts a batch of counters. ON CONFLICT ...
// DO UPDATE is understood by PostgreSQL and SQLite >= 3.24.
func buildAddRequestCountsQuery(b sq.StatementBuilderType, logs []models.RequestLog) (string, []any, error) {
	q := b.Insert("request_logs").Columns("request_method", "request_path", "count")
	for _, l := range logs {
		q = q.Values(l.Method, l.Path, l.Count)
	}

	return q.Suffix("ON CONFLICT (request_method, request_path) DO UPDATE SET count = request_logs.count + excluded.count").
		ToSql()
}

func buildListRequestLogsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("request_method", "request_path", "count").
		From("request_logs").
		OrderBy("request_method", "request_path").
		ToSql()
}
