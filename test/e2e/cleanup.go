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

	"github.com/vmware/go-vcloud-director/v2/govcd"

	"github.com/deterok/vcd-e2e/pkg/vcd"
)

// Best-effort cleanup helpers. They log failures instead of failing
// the test; anything left behind gets picked up by vcdsweep.

func (s *E2ETestSuite) cleanupVApp(t *testing.T, name string) {
	t.Helper()

	if err := s.VDC.Refresh(); err != nil {
		t.Logf("Cleanup: failed to refresh VDC: %v", err)
		return
	}
	vapp, err := s.VDC.GetVAppByName(name, true)
	if err != nil {
		if !vcd.IsNotFound(err) {
			t.Logf("Cleanup: failed to get vApp %s: %v", name, err)
		}
		return
	}

	if task, err := vapp.Undeploy(); err == nil {
		_ = vcd.WaitTask(s.taskCtx(t), task)
	}
	task, err := vapp.Delete()
	if err == nil {
		err = vcd.WaitTask(s.taskCtx(t), task)
	}
	if err != nil {
		t.Logf("Cleanup: failed to delete vApp %s: %v", name, err)
		return
	}
	t.Logf("Cleanup: deleted vApp %s", name)
}

func (s *E2ETestSuite) cleanupDisk(t *testing.T, disk *govcd.Disk) {
	t.Helper()

	if err := disk.Refresh(); err != nil {
		if !vcd.IsNotFound(err) {
			t.Logf("Cleanup: failed to refresh disk: %v", err)
		}
		return
	}
	task, err := disk.Delete()
	if err == nil {
		err = vcd.WaitTask(s.taskCtx(t), task)
	}
	if err != nil {
		t.Logf("Cleanup: failed to delete disk %s: %v", disk.Disk.Name, err)
		return
	}
	t.Logf("Cleanup: deleted disk %s", disk.Disk.Name)
}

func (s *E2ETestSuite) cleanupNetwork(t *testing.T, name string) {
	t.Helper()

	network, err := s.VDC.GetOrgVdcNetworkByName(name, true)
	if err != nil {
		if !vcd.IsNotFound(err) {
			t.Logf("Cleanup: failed to get network %s: %v", name, err)
		}
		return
	}
	task, err := network.Delete()
	if err == nil {
		err = vcd.WaitTask(s.taskCtx(t), task)
	}
	if err != nil {
		t.Logf("Cleanup: failed to delete network %s: %v", name, err)
		return
	}
	t.Logf("Cleanup: deleted network %s", name)
}

func (s *E2ETestSuite) cleanupCatalogItem(t *testing.T, name string) {
	t.Helper()

	catalog, err := s.Org.GetCatalogByName(s.Config.Catalog, true)
	if err != nil {
		t.Logf("Cleanup: failed to get catalog %s: %v", s.Config.Catalog, err)
		return
	}
	item, err := catalog.GetCatalogItemByName(name, true)
	if err != nil {
		if !vcd.IsNotFound(err) {
			t.Logf("Cleanup: failed to get catalog item %s: %v", name, err)
		}
		return
	}
	if err := item.Delete(); err != nil {
		t.Logf("Cleanup: failed to delete catalog item %s: %v", name, err)
		return
	}
	t.Logf("Cleanup: deleted catalog item %s", name)
}
