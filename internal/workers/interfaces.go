// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background jobs of the notes server: the
// verification mail sender, the request log flusher and the database health
// probe feeding the gRPC health service.
package workers

import "context"

// Worker is a long-running background job.
//
// Run blocks until ctx is cancelled or the worker has nothing left to do.
// A non-nil error stops every other worker started by the same [Workers].
type Worker interface {
	Run(ctx context.Context) error
}

// Flusher persists buffered state. It is implemented by the request log
// service.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
