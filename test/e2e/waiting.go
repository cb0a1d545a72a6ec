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
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmware/go-vcloud-director/v2/govcd"

	"github.com/deterok/vcd-e2e/pkg/vcd"
)

// waitForVAppStatus polls until the vApp reports the wanted status.
func (s *E2ETestSuite) waitForVAppStatus(t *testing.T, vapp *govcd.VApp, want string) {
	t.Helper()

	checkCount := 0
	err := vcd.Poll(s.taskCtx(t), pollInterval, func() (bool, error) {
		checkCount++
		if err := vapp.Refresh(); err != nil {
			return false, err
		}
		status, err := vapp.GetStatus()
		if err != nil {
			return false, err
		}
		if status == want {
			return true, nil
		}
		t.Logf("Check #%d: vApp %s is %s, waiting for %s...", checkCount, vapp.VApp.Name, status, want)
		return false, nil
	})
	require.NoError(t, err, "vApp %s never reached status %s", vapp.VApp.Name, want)
	t.Logf("✅ vApp %s reached status %s", vapp.VApp.Name, want)
}

// waitForVAppDeployed polls until the vApp's deployed flag matches.
func (s *E2ETestSuite) waitForVAppDeployed(t *testing.T, vapp *govcd.VApp, deployed bool) {
	t.Helper()

	err := vcd.Poll(s.taskCtx(t), pollInterval, func() (bool, error) {
		if err := vapp.Refresh(); err != nil {
			return false, err
		}
		return vapp.VApp.Deployed == deployed, nil
	})
	require.NoError(t, err, "vApp %s never reached deployed=%v", vapp.VApp.Name, deployed)
}
