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
	"fmt"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vmware/go-vcloud-director/v2/govcd"
	"github.com/vmware/go-vcloud-director/v2/types/v56"
)

// randName returns a unique resource name carrying the prefix the
// sweeper looks for.
func randName(kind string) string {
	return fmt.Sprintf("e2e-%s-%s", kind, uuid.NewString()[:5])
}

// vappOptions controls how a test vApp is instantiated.
type vappOptions struct {
	storageProfile string
	networks       []*types.OrgVDCNetwork
	powerOn        bool
	description    string
}

// instantiateVApp builds a vApp from the configured catalog template
// and registers best-effort deletion for the end of the test.
func (s *E2ETestSuite) instantiateVApp(t *testing.T, name string, opts vappOptions) *govcd.VApp {
	t.Helper()

	catalog, err := s.Org.GetCatalogByName(s.Config.Catalog, true)
	require.NoError(t, err, "Failed to get catalog %s", s.Config.Catalog)

	item, err := catalog.GetCatalogItemByName(s.Config.TemplateName, true)
	require.NoError(t, err, "Failed to get catalog item %s", s.Config.TemplateName)

	template, err := item.GetVAppTemplate()
	require.NoError(t, err, "Failed to get template from catalog item %s", s.Config.TemplateName)

	storageRef := types.Reference{}
	if opts.storageProfile != "" {
		storageRef, err = s.VDC.FindStorageProfileReference(opts.storageProfile)
		require.NoError(t, err, "Failed to find storage profile %s", opts.storageProfile)
	}

	description := opts.description
	if description == "" {
		description = "test vApp"
	}

	t.Logf("Instantiating vApp %s from template %s...", name, s.Config.TemplateName)
	task, err := s.VDC.ComposeVApp(opts.networks, template, storageRef, name, description, true)
	require.NoError(t, err, "Failed to compose vApp %s", name)
	s.waitTask(t, task)

	require.NoError(t, s.VDC.Refresh())
	vapp, err := s.VDC.GetVAppByName(name, true)
	require.NoError(t, err, "Composed vApp %s not found", name)

	t.Cleanup(func() { s.cleanupVApp(t, name) })

	if opts.powerOn {
		task, err := vapp.PowerOn()
		require.NoError(t, err, "Failed to power on vApp %s", name)
		s.waitTask(t, task)
		require.NoError(t, vapp.Refresh())
	}

	t.Logf("✅ vApp %s ready", name)
	return vapp
}

// firstVM returns the first VM of the vApp.
func (s *E2ETestSuite) firstVM(t *testing.T, vapp *govcd.VApp) *govcd.VM {
	t.Helper()

	require.NoError(t, vapp.Refresh())
	require.NotNil(t, vapp.VApp.Children, "vApp %s has no children", vapp.VApp.Name)
	require.NotEmpty(t, vapp.VApp.Children.VM, "vApp %s has no VMs", vapp.VApp.Name)

	vm, err := vapp.GetVMByName(vapp.VApp.Children.VM[0].Name, true)
	require.NoError(t, err, "Failed to get VM from vApp %s", vapp.VApp.Name)
	return vm
}

// createDisk creates an independent disk in the primary VDC and
// registers best-effort deletion for the end of the test.
func (s *E2ETestSuite) createDisk(t *testing.T, name string, sizeMb int64) *govcd.Disk {
	t.Helper()

	t.Logf("Creating independent disk %s (%d MB)...", name, sizeMb)
	task, err := s.VDC.CreateDisk(&types.DiskCreateParams{
		Disk: &types.Disk{
			Name:        name,
			SizeMb:      sizeMb,
			Description: "test disk",
		},
	})
	require.NoError(t, err, "Failed to create disk %s", name)

	// The creation task owns the new disk entity.
	diskHref := task.Task.Owner.HREF
	s.waitTask(t, task)

	disk, err := s.VDC.GetDiskByHref(diskHref)
	require.NoError(t, err, "Created disk %s not found", name)

	t.Cleanup(func() { s.cleanupDisk(t, disk) })
	return disk
}

// createRoutedNetwork creates a routed org VDC network behind the
// configured edge gateway, skipping when no gateway is configured.
func (s *E2ETestSuite) createRoutedNetwork(t *testing.T, name string) *govcd.OrgVDCNetwork {
	t.Helper()
	if s.Config.EdgeGateway == "" {
		t.Skip("Skipping: VCD_EDGE_GATEWAY not set")
	}

	gateway, netmask, startIP, endIP := routedNetworkAddressing(t, s.Config.NetworkCIDR)

	edge, err := s.VDC.GetEdgeGatewayByName(s.Config.EdgeGateway, true)
	require.NoError(t, err, "Failed to get edge gateway %s", s.Config.EdgeGateway)

	t.Logf("Creating routed network %s (%s) behind %s...", name, s.Config.NetworkCIDR, s.Config.EdgeGateway)
	networkConfig := &types.OrgVDCNetwork{
		Xmlns:       types.XMLNamespaceVCloud,
		Name:        name,
		Description: "test network",
		Configuration: &types.NetworkConfiguration{
			FenceMode: types.FenceModeNAT,
			IPScopes: &types.IPScopes{
				IPScope: []*types.IPScope{{
					IsInherited: false,
					Gateway:     gateway,
					Netmask:     netmask,
					IPRanges: &types.IPRanges{
						IPRange: []*types.IPRange{{
							StartAddress: startIP,
							EndAddress:   endIP,
						}},
					},
				}},
			},
			BackwardCompatibilityMode: true,
		},
		EdgeGateway: &types.Reference{
			HREF: edge.EdgeGateway.HREF,
			Name: edge.EdgeGateway.Name,
		},
		IsShared: false,
	}

	err = s.VDC.CreateOrgVDCNetworkWait(networkConfig)
	require.NoError(t, err, "Failed to create network %s", name)

	require.NoError(t, s.VDC.Refresh())
	network, err := s.VDC.GetOrgVdcNetworkByName(name, true)
	require.NoError(t, err, "Created network %s not found", name)

	t.Cleanup(func() { s.cleanupNetwork(t, name) })
	return network
}

// routedNetworkAddressing derives gateway, netmask and a static IP
// pool from the configured CIDR.
func routedNetworkAddressing(t *testing.T, cidr string) (gateway, netmask, startIP, endIP string) {
	t.Helper()

	ip, ipNet, err := net.ParseCIDR(cidr)
	require.NoError(t, err, "VCD_NETWORK_CIDR %q is not a valid CIDR", cidr)
	base := ip.Mask(ipNet.Mask).To4()
	require.NotNil(t, base, "VCD_NETWORK_CIDR %q is not IPv4", cidr)

	gw := make(net.IP, len(base))
	copy(gw, base)
	gw[3]++
	start := make(net.IP, len(gw))
	copy(start, gw)
	start[3]++
	end := make(net.IP, len(base))
	copy(end, base)
	end[3] = 254

	return gw.String(), net.IP(ipNet.Mask).String(), start.String(), end.String()
}

// captureTemplate captures the vApp into the configured catalog and
// registers best-effort deletion of the catalog item.
func (s *E2ETestSuite) captureTemplate(t *testing.T, vapp *govcd.VApp, name string) *govcd.VAppTemplate {
	t.Helper()

	catalog, err := s.Org.GetCatalogByName(s.Config.Catalog, true)
	require.NoError(t, err, "Failed to get catalog %s", s.Config.Catalog)

	t.Logf("Capturing vApp %s into catalog %s as %s...", vapp.VApp.Name, s.Config.Catalog, name)
	template, err := catalog.CaptureVappTemplate(&types.CaptureVAppParams{
		Name:        name,
		Description: "captured test template",
		Source: &types.Reference{
			HREF: vapp.VApp.HREF,
		},
	})
	require.NoError(t, err, "Failed to capture vApp %s", vapp.VApp.Name)

	t.Cleanup(func() { s.cleanupCatalogItem(t, name) })
	return template
}
