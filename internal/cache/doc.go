// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache holds the per-user note partitions that back the note list
// view.
//
// A partition is either Warm (it holds at least one note snapshot and is the
// complete answer for its user) or Cold (empty, the next read recomputes it
// from the store). Every partition operation runs while the caller holds the
// user's partition lock obtained from [Partitions.Lock]; different users
// never contend.
//
// Two backends exist: an in-process map ([NewMemoryBackend]) and a Redis hash
// per user ([NewRedisBackend]) where the field is the note id and the value
// is the JSON snapshot.
package cache
