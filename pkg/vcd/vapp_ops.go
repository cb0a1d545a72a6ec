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
)

// DiscardSuspendedState drops the suspended state of a vApp, leaving
// it powered off. Only valid while the vApp is suspended.
func DiscardSuspendedState(client *govcd.Client, vapp *govcd.VApp) (govcd.Task, error) {
	if vapp == nil || vapp.VApp == nil || vapp.VApp.HREF == "" {
		return govcd.Task{}, fmt.Errorf("cannot discard suspended state: vApp HREF is empty")
	}
	return client.ExecuteTaskRequest(vapp.VApp.HREF+"/action/discardSuspendedState", http.MethodPost,
		"", "error discarding suspended state: %s", nil)
}
