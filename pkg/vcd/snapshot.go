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

	"github.com/vmware/go-vcloud-director/v2/govcd"
	"github.com/vmware/go-vcloud-director/v2/types/v56"
)

// VM snapshot operations, built on the SDK's request machinery since
// govcd has no snapshot binding.

// CreateVMSnapshot snapshots a VM under the given name. Memory and
// quiesce are left off so the snapshot works on powered-off VMs too.
func CreateVMSnapshot(client *govcd.Client, vm *govcd.VM, name string) (govcd.Task, error) {
	if vm == nil || vm.VM == nil || vm.VM.HREF == "" {
		return govcd.Task{}, fmt.Errorf("cannot create snapshot: VM HREF is empty")
	}
	params := &CreateSnapshotParams{
		Xmlns:       types.XMLNamespaceVCloud,
		Name:        name,
		Memory:      false,
		Quiesce:     false,
		Description: "created by vcd-e2e",
	}
	return client.ExecuteTaskRequest(vm.VM.HREF+"/action/createSnapshot", http.MethodPost,
		MimeCreateSnapshotParams, "error creating snapshot: %s", params)
}

// GetVMSnapshotSection reads the VM's snapshot section. A VM with no
// snapshots returns a section with an empty Snapshot list.
func GetVMSnapshotSection(client *govcd.Client, vm *govcd.VM) (*SnapshotSection, error) {
	if vm == nil || vm.VM == nil || vm.VM.HREF == "" {
		return nil, fmt.Errorf("cannot read snapshot section: VM HREF is empty")
	}
	section := &SnapshotSection{}
	_, err := client.ExecuteRequest(vm.VM.HREF+"/snapshotSection", http.MethodGet,
		"", "error retrieving snapshot section: %s", nil, section)
	if err != nil {
		return nil, err
	}
	return section, nil
}

// RevertToCurrentSnapshot reverts the VM to its current snapshot.
func RevertToCurrentSnapshot(client *govcd.Client, vm *govcd.VM) (govcd.Task, error) {
	if vm == nil || vm.VM == nil || vm.VM.HREF == "" {
		return govcd.Task{}, fmt.Errorf("cannot revert snapshot: VM HREF is empty")
	}
	return client.ExecuteTaskRequest(vm.VM.HREF+"/action/revertToCurrentSnapshot", http.MethodPost,
		"", "error reverting to current snapshot: %s", nil)
}

// RemoveAllSnapshots deletes every snapshot of the VM.
func RemoveAllSnapshots(client *govcd.Client, vm *govcd.VM) (govcd.Task, error) {
	if vm == nil || vm.VM == nil || vm.VM.HREF == "" {
		return govcd.Task{}, fmt.Errorf("cannot remove snapshots: VM HREF is empty")
	}
	return client.ExecuteTaskRequest(vm.VM.HREF+"/action/removeAllSnapshots", http.MethodPost,
		"", "error removing snapshots: %s", nil)
}
