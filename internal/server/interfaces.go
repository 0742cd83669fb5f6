// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server is the lifecycle contract of the transports managed by this package.
type Server interface {
	// RunServer serves requests and blocks until the server stops.
	RunServer()

	// Shutdown stops accepting requests and waits for in-flight ones, bounded
	// by ctx.
	Shutdown(ctx context.Context)
}

// BackgroundWorkers run next to the transports until shutdown.
type BackgroundWorkers interface {
	Run(ctx context.Context) error
}
