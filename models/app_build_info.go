// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo is the release metadata of the running notes server. The
// fields are linked in with -ldflags and served by GET /api/version/build.
type AppBuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date,omitempty"`
	Commit  string `json:"commit,omitempty"`
}
