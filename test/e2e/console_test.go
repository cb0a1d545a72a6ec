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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deterok/vcd-e2e/pkg/vcd"
)

func TestVMConsoleAccess(t *testing.T) {
	s := SetupE2ETestSuite(t)

	vapp := s.instantiateVApp(t, randName("vapp"), vappOptions{powerOn: true})
	vm := s.firstVM(t, vapp)

	ticket, err := vcd.AcquireMksTicket(&s.VCD.Client, vm)
	require.NoError(t, err, "Failed to acquire MKS ticket")

	assert.NotEmpty(t, ticket.Host, "ticket has no host")
	assert.NotEmpty(t, ticket.Ticket, "ticket has no token")
	assert.Greater(t, ticket.Port, 0, "ticket has no port")
	t.Logf("✅ Console ticket for %s:%d (vmx %q)", ticket.Host, ticket.Port, ticket.Vmx)
}

func TestVMGuestFacts(t *testing.T) {
	s := SetupE2ETestSuite(t)

	vapp := s.instantiateVApp(t, randName("vapp"), vappOptions{powerOn: true})
	vm := s.firstVM(t, vapp)

	t.Logf("VMware Tools installed: %v", vcd.VMToolsInstalled(vm))

	media := vcd.MountedMedia(vm)
	t.Logf("CD/DVD drives: %d", len(media))
	for _, name := range media {
		t.Logf("  - %s", name)
	}
}
