// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/redis/go-redis/v9"
)

const redisDialTimeout = 5 * time.Second

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%w: error parsing redis url: %w", ErrBackend, err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()

	if err = client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: error connecting to redis: %w", ErrBackend, err)
	}

	return client, nil
}

// redisBackend keeps one hash per user: field = note id, value = JSON note.
type redisBackend struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisBackend returns a Backend over client. Keys look like
// "<prefix>:user:<id>".
func NewRedisBackend(client redis.UniversalClient, prefix string) Backend {
	return &redisBackend{client: client, prefix: prefix}
}

func (r *redisBackend) key(userID int64) string {
	if r.prefix == "" {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	return r.prefix + ":user:" + strconv.FormatInt(userID, 10)
}

func (r *redisBackend) Load(ctx context.Context, userID int64) (map[int64]models.Note, error) {
	raw, err := r.client.HGetAll(ctx, r.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackend, err)
	}

	notes := make(map[int64]models.Note, len(raw))
	for field, value := range raw {
		var n models.Note
		if err = json.Unmarshal([]byte(value), &n); err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "redisBackend.Load").
				Int64("user_id", userID).
				Str("field", field).
				Msg("corrupt cache entry")
			return nil, fmt.Errorf("%w: %w", ErrDecodingEntry, err)
		}
		notes[n.NoteID] = n
	}

	return notes, nil
}

func (r *redisBackend) Replace(ctx context.Context, userID int64, notes []models.Note) error {
	fields := make(map[string]any, len(notes))
	for _, n := range notes {
		value, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncodingEntry, err)
		}
		fields[strconv.FormatInt(n.NoteID, 10)] = value
	}

	key := r.key(userID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(fields) > 0 {
			pipe.HSet(ctx, key, fields)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBackend, err)
	}
	return nil
}

func (r *redisBackend) Put(ctx context.Context, userID int64, note models.Note) error {
	value, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingEntry, err)
	}

	if err = r.client.HSet(ctx, r.key(userID), strconv.FormatInt(note.NoteID, 10), value).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBackend, err)
	}
	return nil
}

func (r *redisBackend) Remove(ctx context.Context, userID, noteID int64) error {
	if err := r.client.HDel(ctx, r.key(userID), strconv.FormatInt(noteID, 10)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBackend, err)
	}
	return nil
}

func (r *redisBackend) Clear(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, r.key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBackend, err)
	}
	return nil
}
