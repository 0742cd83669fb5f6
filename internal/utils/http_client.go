// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultHTTPTimeout    = 10 * time.Second
	defaultHTTPRetryCount = 2
)

// HTTPClient embeds *resty.Client so callers use the resty API directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with a request timeout and a
// small retry budget for transport errors and 5xx responses. A zero timeout uses the default.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(defaultHTTPRetryCount).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	return &HTTPClient{Client: client}
}
