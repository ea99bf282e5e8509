// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client for outbound calls such as captcha
// verification.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client. A positive timeout bounds
// every request made with it.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}
