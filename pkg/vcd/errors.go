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
	"errors"

	"github.com/vmware/go-vcloud-director/v2/govcd"
)

// IsNotFound reports whether err means the remote entity does not
// exist, including the SDK's sentinel hidden behind wrapping.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return govcd.IsNotFound(err) ||
		govcd.ContainsNotFound(err) ||
		errors.Is(err, govcd.ErrorEntityNotFound)
}
