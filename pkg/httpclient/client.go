/*
Copyright The vcd-e2e Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package httpclient tunes the HTTP session the vCD SDK drives its
// requests through. The SDK builds its own client (including the TLS
// configuration for self-signed endpoints), so tuning happens in place
// instead of swapping the client out.
package httpclient

import (
	"net/http"
	"time"
)

const (
	// DefaultRequestTimeout bounds a single vCD API round trip. Task
	// polling is many short requests, so this stays well below the
	// suite-level task timeout.
	DefaultRequestTimeout = 2 * time.Minute

	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 30 * time.Second
)

// Tune applies connection-pool limits and a request timeout to an
// existing client. The transport is only adjusted when it is a real
// *http.Transport so the SDK's TLS settings survive untouched.
func Tune(hc *http.Client, requestTimeout time.Duration) {
	if hc == nil {
		return
	}
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	hc.Timeout = requestTimeout

	transport, ok := hc.Transport.(*http.Transport)
	if !ok {
		return
	}
	transport.MaxIdleConns = defaultMaxIdleConns
	transport.MaxIdleConnsPerHost = defaultMaxIdleConnsPerHost
	transport.IdleConnTimeout = defaultIdleConnTimeout
}
