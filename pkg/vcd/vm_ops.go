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

// AdapterVMXNET3 is the network adapter type the suite provisions.
const AdapterVMXNET3 = "VMXNET3"

// IP allocation modes accepted by vCD for a NIC.
const (
	IPModeDHCP   = "DHCP"
	IPModePool   = "POOL"
	IPModeManual = "MANUAL"
	IPModeNone   = "NONE"
)

// RenameVM changes the VM name through a partial reconfigure. Sections
// absent from a reconfigureVm body stay untouched on the platform.
func RenameVM(client *govcd.Client, vm *govcd.VM, name string) (govcd.Task, error) {
	if vm == nil || vm.VM == nil || vm.VM.HREF == "" {
		return govcd.Task{}, fmt.Errorf("cannot rename VM: VM HREF is empty")
	}
	payload := &types.Vm{
		Xmlns: types.XMLNamespaceVCloud,
		Ovf:   types.XMLNamespaceOVF,
		Name:  name,
	}
	return client.ExecuteTaskRequest(vm.VM.HREF+"/action/reconfigureVm", http.MethodPost,
		types.MimeVM, "error renaming VM: %s", payload)
}

// ResizeVMMemory sets the VM memory in MB and waits for the change.
func ResizeVMMemory(vm *govcd.VM, sizeMb int64) error {
	section := &types.VmSpecSection{
		MemoryResourceMb: &types.MemoryResourceMb{Configured: sizeMb},
	}
	if _, err := vm.UpdateVmSpecSection(section, "memory resize"); err != nil {
		return fmt.Errorf("resizing VM memory to %d MB: %w", sizeMb, err)
	}
	return nil
}

// ResizeVMCPU sets the CPU count and cores per socket and waits for
// the change.
func ResizeVMCPU(vm *govcd.VM, cpus, coresPerSocket int) error {
	section := &types.VmSpecSection{
		NumCpus:           &cpus,
		NumCoresPerSocket: &coresPerSocket,
	}
	if _, err := vm.UpdateVmSpecSection(section, "cpu resize"); err != nil {
		return fmt.Errorf("resizing VM CPU to %d (%d cores/socket): %w", cpus, coresPerSocket, err)
	}
	return nil
}

// VMMemoryMb reads the configured memory from the VM's spec section.
func VMMemoryMb(vm *govcd.VM) (int64, error) {
	if vm.VM == nil || vm.VM.VmSpecSection == nil || vm.VM.VmSpecSection.MemoryResourceMb == nil {
		return 0, fmt.Errorf("VM %s has no memory section", vmName(vm))
	}
	return vm.VM.VmSpecSection.MemoryResourceMb.Configured, nil
}

// VMCPUs reads the CPU count and cores per socket from the VM's spec
// section.
func VMCPUs(vm *govcd.VM) (cpus, coresPerSocket int, err error) {
	if vm.VM == nil || vm.VM.VmSpecSection == nil || vm.VM.VmSpecSection.NumCpus == nil || vm.VM.VmSpecSection.NumCoresPerSocket == nil {
		return 0, 0, fmt.Errorf("VM %s has no CPU section", vmName(vm))
	}
	return *vm.VM.VmSpecSection.NumCpus, *vm.VM.VmSpecSection.NumCoresPerSocket, nil
}

func vmName(vm *govcd.VM) string {
	if vm == nil || vm.VM == nil {
		return "<nil>"
	}
	return vm.VM.Name
}

// NICSpec describes a NIC to add to a VM.
type NICSpec struct {
	Network     string
	AdapterType string
	IPMode      string
	IPAddress   string
	Primary     bool
	Connected   bool
}

// NICSummary is the flattened view of one VM network connection.
type NICSummary struct {
	Index       int
	Network     string
	AdapterType string
	IPAddress   string
	IPMode      string
	MACAddress  string
	Primary     bool
	Connected   bool
}

// AddNIC appends a NIC to the VM and returns its connection index.
func AddNIC(vm *govcd.VM, spec NICSpec) (int, error) {
	section, err := vm.GetNetworkConnectionSection()
	if err != nil {
		return 0, fmt.Errorf("reading network connection section: %w", err)
	}

	index := NextNICIndex(section)
	section.NetworkConnection = append(section.NetworkConnection, &types.NetworkConnection{
		Network:                 spec.Network,
		NetworkConnectionIndex:  index,
		IsConnected:             spec.Connected,
		IPAddress:               spec.IPAddress,
		IPAddressAllocationMode: spec.IPMode,
		NetworkAdapterType:      spec.AdapterType,
	})
	if spec.Primary || len(section.NetworkConnection) == 1 {
		section.PrimaryNetworkConnectionIndex = index
	}

	if err := vm.UpdateNetworkConnectionSection(section); err != nil {
		return 0, fmt.Errorf("adding NIC on network %q: %w", spec.Network, err)
	}
	return index, nil
}

// ListNICs returns the VM's current network connections.
func ListNICs(vm *govcd.VM) ([]NICSummary, error) {
	section, err := vm.GetNetworkConnectionSection()
	if err != nil {
		return nil, fmt.Errorf("reading network connection section: %w", err)
	}
	return SummarizeNICs(section), nil
}

// DeleteNIC removes the NIC with the given connection index.
func DeleteNIC(vm *govcd.VM, index int) error {
	section, err := vm.GetNetworkConnectionSection()
	if err != nil {
		return fmt.Errorf("reading network connection section: %w", err)
	}
	if err := RemoveNICFromSection(section, index); err != nil {
		return err
	}
	if err := vm.UpdateNetworkConnectionSection(section); err != nil {
		return fmt.Errorf("deleting NIC %d: %w", index, err)
	}
	return nil
}

// NextNICIndex returns the lowest connection index not in use.
func NextNICIndex(section *types.NetworkConnectionSection) int {
	used := lo.Map(section.NetworkConnection, func(nc *types.NetworkConnection, _ int) int {
		return nc.NetworkConnectionIndex
	})
	for i := 0; ; i++ {
		if !lo.Contains(used, i) {
			return i
		}
	}
}

// SummarizeNICs flattens a network connection section.
func SummarizeNICs(section *types.NetworkConnectionSection) []NICSummary {
	return lo.Map(section.NetworkConnection, func(nc *types.NetworkConnection, _ int) NICSummary {
		return NICSummary{
			Index:       nc.NetworkConnectionIndex,
			Network:     nc.Network,
			AdapterType: nc.NetworkAdapterType,
			IPAddress:   nc.IPAddress,
			IPMode:      nc.IPAddressAllocationMode,
			MACAddress:  nc.MACAddress,
			Primary:     nc.NetworkConnectionIndex == section.PrimaryNetworkConnectionIndex,
			Connected:   nc.IsConnected,
		}
	})
}

// RemoveNICFromSection drops the connection with the given index from
// the section, repointing the primary index if it was removed.
func RemoveNICFromSection(section *types.NetworkConnectionSection, index int) error {
	kept := lo.Filter(section.NetworkConnection, func(nc *types.NetworkConnection, _ int) bool {
		return nc.NetworkConnectionIndex != index
	})
	if len(kept) == len(section.NetworkConnection) {
		return fmt.Errorf("no NIC with connection index %d", index)
	}
	section.NetworkConnection = kept
	if section.PrimaryNetworkConnectionIndex == index && len(kept) > 0 {
		section.PrimaryNetworkConnectionIndex = kept[0].NetworkConnectionIndex
	}
	return nil
}
