// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_EnqueueAndDrain(t *testing.T) {
	q := NewQueue(2)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, Message{To: "a"}))
	require.NoError(t, q.Enqueue(ctx, Message{To: "b"}))
	assert.ErrorIs(t, q.Enqueue(ctx, Message{To: "c"}), ErrQueueFull)
	assert.Equal(t, 2, q.Len())

	q.Close()
	q.Close()
	assert.ErrorIs(t, q.Enqueue(ctx, Message{To: "d"}), ErrQueueClosed)

	var got []string
	for msg := range q.Messages() {
		got = append(got, msg.To)
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestQueue_NonPositiveSize(t *testing.T) {
	q := NewQueue(0)
	require.NoError(t, q.Enqueue(context.Background(), Message{}))
	assert.ErrorIs(t, q.Enqueue(context.Background(), Message{}), ErrQueueFull)
}

func TestQueue_CancelledContext(t *testing.T) {
	q := NewQueue(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, q.Enqueue(ctx, Message{}), context.Canceled)
	assert.Zero(t, q.Len())
}
