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

package vcd

import (
	"fmt"
	"net/http"

	"github.com/samber/lo"
	"github.com/vmware/go-vcloud-director/v2/govcd"
	"github.com/vmware/go-vcloud-director/v2/types/v56"
)

// cdromResourceType is the OVF virtual hardware resource type of a
// CD/DVD drive.
const cdromResourceType = 15

// AcquireMksTicket fetches a one-time console ticket for the VM. The
// VM must be powered on.
func AcquireMksTicket(client *govcd.Client, vm *govcd.VM) (*MksTicket, error) {
	if vm == nil || vm.VM == nil || vm.VM.HREF == "" {
		return nil, fmt.Errorf("cannot acquire MKS ticket: VM HREF is empty")
	}
	ticket := &MksTicket{}
	_, err := client.ExecuteRequest(vm.VM.HREF+"/screen/action/acquireMksTicket", http.MethodPost,
		"", "error acquiring MKS ticket: %s", nil, ticket)
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// VMToolsInstalled reports whether VMware Tools are present in the
// guest, judged by the tools version the platform reports.
func VMToolsInstalled(vm *govcd.VM) bool {
	if vm == nil || vm.VM == nil || vm.VM.VmSpecSection == nil {
		return false
	}
	return vm.VM.VmSpecSection.VmToolsVersion != ""
}

// MountedMedia lists the element names of the VM's CD/DVD drives from
// its virtual hardware section. An empty list is normal for VMs
// without media devices.
func MountedMedia(vm *govcd.VM) []string {
	if vm == nil || vm.VM == nil || vm.VM.VirtualHardwareSection == nil {
		return nil
	}
	drives := lo.Filter(vm.VM.VirtualHardwareSection.Item, func(item *types.VirtualHardwareItem, _ int) bool {
		return item != nil && item.ResourceType == cdromResourceType
	})
	return lo.Map(drives, func(item *types.VirtualHardwareItem, _ int) string {
		return item.ElementName
	})
}
