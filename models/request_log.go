// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RequestLogKey identifies an endpoint hit counter.
type RequestLogKey struct {
	Method string
	Path   string
}

// RequestLog is the persisted hit counter of a single method+path pair.
type RequestLog struct {
	RequestLogKey
	Count int64
}
