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

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmware/go-vcloud-director/v2/types/v56"

	"github.com/deterok/vcd-e2e/pkg/vcd"
)

func TestVAppLifecycle(t *testing.T) {
	s := SetupE2ETestSuite(t)

	name := randName("vapp")
	vapp := s.instantiateVApp(t, name, vappOptions{
		storageProfile: s.Config.StorageProfile,
	})

	t.Run("get by name", func(t *testing.T) {
		found, err := s.VDC.GetVAppByName(name, true)
		require.NoError(t, err)
		assert.Equal(t, name, found.VApp.Name)
	})

	t.Run("get by id", func(t *testing.T) {
		require.NotEmpty(t, vapp.VApp.ID)
		found, err := s.VDC.GetVAppById(vapp.VApp.ID, true)
		require.NoError(t, err)
		assert.Equal(t, vapp.VApp.HREF, found.VApp.HREF)
	})

	t.Run("no connected NICs without networks", func(t *testing.T) {
		// Instantiated without any org network, so no NIC may be
		// connected to one.
		vm := s.firstVM(t, vapp)
		nics, err := vcd.ListNICs(vm)
		require.NoError(t, err)
		for _, nic := range nics {
			if nic.Connected {
				assert.True(t, nic.Network == "" || nic.Network == "none",
					"NIC %d unexpectedly connected to %s", nic.Index, nic.Network)
			}
		}
	})

	t.Run("listed in VDC", func(t *testing.T) {
		require.NoError(t, s.VDC.Refresh())
		listed := lo.SomeBy(s.VDC.GetVappList(), func(ref *types.ResourceReference) bool {
			return ref.Name == name
		})
		assert.True(t, listed, "vApp %s missing from VDC listing", name)
	})

	renamed := name + "-renamed"
	t.Run("rename", func(t *testing.T) {
		err := vapp.UpdateNameDescription(renamed, "renamed test vApp")
		require.NoError(t, err)
		require.NoError(t, vapp.Refresh())
		assert.Equal(t, renamed, vapp.VApp.Name)

		_, err = s.VDC.GetVAppByName(renamed, true)
		require.NoError(t, err)
	})

	t.Run("force delete", func(t *testing.T) {
		// Undeploy first so deletion works regardless of power state.
		if task, err := vapp.Undeploy(); err == nil {
			s.waitTask(t, task)
		}
		task, err := vapp.Delete()
		require.NoError(t, err)
		s.waitTask(t, task)

		require.NoError(t, s.VDC.Refresh())
		_, err = s.VDC.GetVAppByName(renamed, true)
		require.Error(t, err)
		assert.True(t, vcd.IsNotFound(err), "expected not-found, got: %v", err)
	})
}
