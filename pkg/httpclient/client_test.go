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

package httpclient

import (
	"crypto/tls"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTuneSetsTimeoutAndPoolLimits(t *testing.T) {
	hc := &http.Client{Transport: &http.Transport{}}

	Tune(hc, 0)

	assert.Equal(t, DefaultRequestTimeout, hc.Timeout)
	transport, ok := hc.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, defaultMaxIdleConns, transport.MaxIdleConns)
	assert.Equal(t, defaultMaxIdleConnsPerHost, transport.MaxIdleConnsPerHost)
	assert.Equal(t, defaultIdleConnTimeout, transport.IdleConnTimeout)
}

func TestTunePreservesTLSConfig(t *testing.T) {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
	hc := &http.Client{Transport: transport}

	Tune(hc, 30*time.Second)

	assert.Equal(t, 30*time.Second, hc.Timeout)
	assert.True(t, transport.TLSClientConfig.InsecureSkipVerify)
}

func TestTuneLeavesForeignTransportAlone(t *testing.T) {
	rt := http.NewFileTransport(http.Dir(t.TempDir()))
	hc := &http.Client{Transport: rt}

	Tune(hc, time.Minute)

	assert.Equal(t, time.Minute, hc.Timeout)
	assert.Equal(t, rt, hc.Transport)
}

func TestTuneNilClient(t *testing.T) {
	assert.NotPanics(t, func() { Tune(nil, time.Second) })
}
