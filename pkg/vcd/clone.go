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
	"context"
	"fmt"
	"net/http"

	"github.com/vmware/go-vcloud-director/v2/govcd"
	"github.com/vmware/go-vcloud-director/v2/types/v56"
)

// CloneVAppOptions controls how a vApp is copied into a target VDC.
type CloneVAppOptions struct {
	Name        string
	Description string
	Deploy      bool
	PowerOn     bool
	// SourceDelete turns the copy into a move.
	SourceDelete bool
}

// CloneVApp copies source into targetVDC and waits for the copy tasks
// to finish. The returned vApp is refreshed from the target VDC.
func CloneVApp(ctx context.Context, client *govcd.Client, targetVDC *govcd.Vdc, source *govcd.VApp, opts CloneVAppOptions) (*govcd.VApp, error) {
	if source == nil || source.VApp == nil || source.VApp.HREF == "" {
		return nil, fmt.Errorf("cannot clone vApp: source HREF is empty")
	}
	if targetVDC == nil || targetVDC.Vdc == nil || targetVDC.Vdc.HREF == "" {
		return nil, fmt.Errorf("cannot clone vApp: target VDC HREF is empty")
	}

	params := &CloneVAppParams{
		Xmlns:       types.XMLNamespaceVCloud,
		Name:        opts.Name,
		Deploy:      opts.Deploy,
		PowerOn:     opts.PowerOn,
		Description: opts.Description,
		Source: &types.Reference{
			HREF: source.VApp.HREF,
			Name: source.VApp.Name,
		},
		IsSourceDelete: opts.SourceDelete,
	}

	cloned := govcd.NewVApp(client)
	_, err := client.ExecuteRequest(targetVDC.Vdc.HREF+"/action/cloneVApp", http.MethodPost,
		MimeCloneVAppParams, "error cloning vApp: %s", params, cloned.VApp)
	if err != nil {
		return nil, err
	}

	// The response carries the running copy tasks on the new vApp.
	if cloned.VApp.Tasks != nil {
		for _, t := range cloned.VApp.Tasks.Task {
			task := govcd.NewTask(client)
			task.Task = t
			if err := WaitTask(ctx, *task); err != nil {
				return nil, fmt.Errorf("waiting for clone of %q: %w", source.VApp.Name, err)
			}
		}
	}

	if err := cloned.Refresh(); err != nil {
		return nil, fmt.Errorf("refreshing cloned vApp %q: %w", opts.Name, err)
	}
	return cloned, nil
}
