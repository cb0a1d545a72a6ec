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
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmware/go-vcloud-director/v2/types/v56"
)

func TestCreateSnapshotParamsMarshal(t *testing.T) {
	params := &CreateSnapshotParams{
		Xmlns:       types.XMLNamespaceVCloud,
		Name:        "snapshot1",
		Memory:      false,
		Quiesce:     false,
		Description: "created by vcd-e2e",
	}

	out, err := xml.Marshal(params)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `<CreateSnapshotParams`)
	assert.Contains(t, s, `xmlns="http://www.vmware.com/vcloud/v1.5"`)
	assert.Contains(t, s, `name="snapshot1"`)
	assert.Contains(t, s, `memory="false"`)
	assert.Contains(t, s, `quiesce="false"`)
	assert.Contains(t, s, `<Description>created by vcd-e2e</Description>`)
}

func TestCloneVAppParamsMarshal(t *testing.T) {
	params := &CloneVAppParams{
		Xmlns:   types.XMLNamespaceVCloud,
		Name:    "clone1",
		Deploy:  false,
		PowerOn: false,
		Source: &types.Reference{
			HREF: "https://vcd.example.com/api/vApp/vapp-1",
			Name: "source1",
		},
	}

	out, err := xml.Marshal(params)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `name="clone1"`)
	assert.Contains(t, s, `deploy="false"`)
	assert.Contains(t, s, `powerOn="false"`)
	assert.Contains(t, s, `https://vcd.example.com/api/vApp/vapp-1`)
	assert.Contains(t, s, `<IsSourceDelete>false</IsSourceDelete>`)
}

func TestSnapshotSectionUnmarshal(t *testing.T) {
	raw := `<SnapshotSection xmlns="http://www.vmware.com/vcloud/v1.5">
		<Snapshot created="2026-08-31T10:00:00.000Z" poweredOn="true" size="2147483648"/>
	</SnapshotSection>`

	section := &SnapshotSection{}
	require.NoError(t, xml.Unmarshal([]byte(raw), section))

	require.Len(t, section.Snapshot, 1)
	assert.Equal(t, "2026-08-31T10:00:00.000Z", section.Snapshot[0].Created)
	assert.True(t, section.Snapshot[0].PoweredOn)
	assert.Equal(t, int64(2147483648), section.Snapshot[0].Size)
}

func TestSnapshotSectionUnmarshalEmpty(t *testing.T) {
	raw := `<SnapshotSection xmlns="http://www.vmware.com/vcloud/v1.5"/>`

	section := &SnapshotSection{}
	require.NoError(t, xml.Unmarshal([]byte(raw), section))
	assert.Empty(t, section.Snapshot)
}

func TestMksTicketUnmarshal(t *testing.T) {
	raw := `<MksTicket xmlns="http://www.vmware.com/vcloud/v1.5">
		<Host>esx-1.example.com</Host>
		<Vmx>[datastore1] vm1/vm1.vmx</Vmx>
		<Ticket>ticket-abc123</Ticket>
		<Port>902</Port>
	</MksTicket>`

	ticket := &MksTicket{}
	require.NoError(t, xml.Unmarshal([]byte(raw), ticket))

	assert.Equal(t, "esx-1.example.com", ticket.Host)
	assert.Equal(t, "[datastore1] vm1/vm1.vmx", ticket.Vmx)
	assert.Equal(t, "ticket-abc123", ticket.Ticket)
	assert.Equal(t, 902, ticket.Port)
}
