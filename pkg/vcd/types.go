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

	"github.com/vmware/go-vcloud-director/v2/types/v56"
)

// Request and response payloads for vCD operations the SDK has no
// binding for. Field and attribute names follow the vCloud API schema.

const (
	// MimeCreateSnapshotParams is the request body type for
	// POST .../action/createSnapshot.
	MimeCreateSnapshotParams = "application/vnd.vmware.vcloud.createSnapshotParams+xml"
	// MimeCloneVAppParams is the request body type for
	// POST .../action/cloneVApp.
	MimeCloneVAppParams = "application/vnd.vmware.vcloud.cloneVAppParams+xml"
)

// CreateSnapshotParams requests a new VM snapshot.
type CreateSnapshotParams struct {
	XMLName     xml.Name `xml:"CreateSnapshotParams"`
	Xmlns       string   `xml:"xmlns,attr"`
	Name        string   `xml:"name,attr"`
	Memory      bool     `xml:"memory,attr"`
	Quiesce     bool     `xml:"quiesce,attr"`
	Description string   `xml:"Description,omitempty"`
}

// SnapshotSection is the read-only snapshot state of a VM. vCD keeps
// at most one current snapshot per VM.
type SnapshotSection struct {
	XMLName  xml.Name        `xml:"SnapshotSection"`
	Snapshot []*SnapshotItem `xml:"Snapshot"`
}

// SnapshotItem describes a single snapshot.
type SnapshotItem struct {
	Created   string `xml:"created,attr"`
	PoweredOn bool   `xml:"poweredOn,attr"`
	Size      int64  `xml:"size,attr"`
}

// MksTicket is a one-time console connection ticket for a VM.
type MksTicket struct {
	XMLName xml.Name `xml:"MksTicket"`
	Host    string   `xml:"Host"`
	Vmx     string   `xml:"Vmx"`
	Ticket  string   `xml:"Ticket"`
	Port    int      `xml:"Port"`
}

// CloneVAppParams requests a copy of an existing vApp into the VDC the
// request is posted to.
type CloneVAppParams struct {
	XMLName        xml.Name         `xml:"CloneVAppParams"`
	Xmlns          string           `xml:"xmlns,attr"`
	Name           string           `xml:"name,attr"`
	Deploy         bool             `xml:"deploy,attr"`
	PowerOn        bool             `xml:"powerOn,attr"`
	Description    string           `xml:"Description,omitempty"`
	Source         *types.Reference `xml:"Source"`
	IsSourceDelete bool             `xml:"IsSourceDelete"`
}
