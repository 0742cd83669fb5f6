// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mailer

import (
	"context"
	"sync"
)

// Queue is a bounded in-process outbox. Enqueue never blocks.
type Queue struct {
	mu     sync.RWMutex
	ch     chan Message
	closed bool
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 1
	}
	return &Queue{ch: make(chan Message, size)}
}

// Enqueue adds msg or fails with ErrQueueFull / ErrQueueClosed.
func (q *Queue) Enqueue(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.ch <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Messages is drained by the mail worker. It is closed by Close.
func (q *Queue) Messages() <-chan Message {
	return q.ch
}

func (q *Queue) Len() int {
	return len(q.ch)
}

// Close stops accepting messages. Already queued messages stay readable.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}
