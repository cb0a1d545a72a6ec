//go:build e2e
// +build e2e

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
package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vmware/go-vcloud-director/v2/govcd"

	"github.com/deterok/vcd-e2e/pkg/vcd"
)

const (
	pollInterval = 5 * time.Second
)

// E2ETestSuite contains the test environment
type E2ETestSuite struct {
	Config *vcd.Config
	Client *vcd.Client
	VCD    *govcd.VCDClient
	Org    *govcd.Org
	VDC    *govcd.Vdc
}

// SetupE2ETestSuite authenticates against the configured vCloud
// Director and resolves the org and primary VDC. Tests are skipped
// when the connection environment variables are not set.
func SetupE2ETestSuite(t *testing.T) *E2ETestSuite {
	t.Helper()

	cfg := vcd.LoadConfig()
	if !cfg.HasCredentials() {
		t.Skip("Skipping E2E tests: set VCD_HOST, VCD_ORG, VCD_USER, VCD_PASSWORD and VCD_VDC to run them")
	}

	client := vcd.NewClient(cfg)
	session, err := client.Session()
	require.NoError(t, err, "Failed to authenticate to vCD at %s", cfg.Host)
	t.Logf("✅ Authenticated to %s as %s@%s", cfg.Host, cfg.User, cfg.Org)

	org, err := client.Org()
	require.NoError(t, err, "Failed to resolve org %s", cfg.Org)

	vdc, err := client.VDC("")
	require.NoError(t, err, "Failed to resolve VDC %s", cfg.VDCName)

	t.Cleanup(func() {
		if err := client.Disconnect(); err != nil {
			t.Logf("Logout failed: %v", err)
		}
	})

	return &E2ETestSuite{
		Config: cfg,
		Client: client,
		VCD:    session,
		Org:    org,
		VDC:    vdc,
	}
}

// secondVDC resolves the secondary VDC, skipping the test when none is
// configured.
func (s *E2ETestSuite) secondVDC(t *testing.T) *govcd.Vdc {
	t.Helper()
	if s.Config.VDCName2 == "" {
		t.Skip("Skipping: VCD_VDC2 not set")
	}
	vdc, err := s.Client.VDC(s.Config.VDCName2)
	require.NoError(t, err, "Failed to resolve VDC %s", s.Config.VDCName2)
	return vdc
}

// taskCtx returns a context bounded by the configured task timeout.
func (s *E2ETestSuite) taskCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), s.Config.TaskTimeout)
	t.Cleanup(cancel)
	return ctx
}

// waitTask waits for an asynchronous task and fails the test if it
// errors or the task timeout passes.
func (s *E2ETestSuite) waitTask(t *testing.T, task govcd.Task) {
	t.Helper()
	require.NoError(t, vcd.WaitTask(s.taskCtx(t), task))
}
