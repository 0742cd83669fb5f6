// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import "errors"

var (
	ErrPartitionReleased = errors.New("partition lock already released")
	ErrEncodingEntry     = errors.New("error encoding cache entry")
	ErrDecodingEntry     = errors.New("error decoding cache entry")
	ErrBackend           = errors.New("cache backend error")
	ErrUnsupportedDriver = errors.New("unsupported cache driver")
)
