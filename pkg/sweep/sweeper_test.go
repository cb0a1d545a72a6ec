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

package sweep

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldSweep(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	opts := Options{Prefix: "e2e-", MaxAge: 2 * time.Hour}

	tests := []struct {
		name     string
		resource string
		created  string
		want     bool
	}{
		{
			name:     "old test resource is swept",
			resource: "e2e-vapp-abc12",
			created:  "2026-08-31T08:00:00Z",
			want:     true,
		},
		{
			name:     "fresh test resource is kept",
			resource: "e2e-vapp-abc12",
			created:  "2026-08-31T11:30:00Z",
			want:     false,
		},
		{
			name:     "foreign resource is never touched",
			resource: "production-db",
			created:  "2020-01-01T00:00:00Z",
			want:     false,
		},
		{
			name:     "missing creation time counts as old",
			resource: "e2e-disk-def34",
			created:  "",
			want:     true,
		},
		{
			name:     "unparseable creation time counts as old",
			resource: "e2e-disk-def34",
			created:  "not-a-timestamp",
			want:     true,
		},
		{
			name:     "exactly at max age is swept",
			resource: "e2e-vapp-abc12",
			created:  "2026-08-31T10:00:00Z",
			want:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldSweep(tt.resource, tt.created, now, opts))
		})
	}
}

func TestShouldSweepEntityTimestampFormat(t *testing.T) {
	// Catalog items report creation time in the vCD entity format;
	// a freshly captured template must survive the sweep.
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	opts := Options{Prefix: "e2e-", MaxAge: 2 * time.Hour}

	assert.False(t, ShouldSweep("e2e-tmpl-abc12", "2026-08-31T11:55:00.000+0000", now, opts),
		"fresh catalog item must be kept")
	assert.True(t, ShouldSweep("e2e-tmpl-abc12", "2026-08-31T08:00:00.000+0000", now, opts),
		"aged catalog item must be swept")
}

func TestShouldSweepZeroMaxAge(t *testing.T) {
	opts := Options{Prefix: "e2e-"}
	assert.True(t, ShouldSweep("e2e-vapp-abc12", time.Now().Format(time.RFC3339), time.Now(), opts))
	assert.False(t, ShouldSweep("customer-vapp", "", time.Now(), opts))
}

func TestParseVCDTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "RFC3339",
			input: "2026-08-31T10:00:00Z",
			want:  time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "vCD entity format with offset",
			input: "2026-08-31T10:00:00.000+0000",
			want:  time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVCDTime(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s", got)
		})
	}
}

func TestParseVCDTimeRejectsGarbage(t *testing.T) {
	_, err := ParseVCDTime("")
	require.Error(t, err)

	_, err = ParseVCDTime("yesterday")
	require.Error(t, err)
}

func TestSummaryTotal(t *testing.T) {
	s := Summary{VApps: 2, Disks: 1, Networks: 3, Templates: 1, Skipped: 5}
	assert.Equal(t, 7, s.Total())
}
