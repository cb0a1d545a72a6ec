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

// Package sweep removes leftover test resources from a vCD
// organization. Interrupted test runs leave vApps, disks, networks and
// captured templates behind; the sweeper finds them by name prefix and
// age and deletes them.
package sweep

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/vmware/go-vcloud-director/v2/govcd"
	"github.com/vmware/go-vcloud-director/v2/types/v56"
	"go.uber.org/multierr"

	"github.com/deterok/vcd-e2e/pkg/logging"
	"github.com/deterok/vcd-e2e/pkg/metrics"
	"github.com/deterok/vcd-e2e/pkg/vcd"
)

// Options controls which resources a sweep run may touch.
type Options struct {
	// Prefix is the resource name prefix that marks test resources.
	// Resources without it are never touched.
	Prefix string
	// MaxAge is the minimum age before a resource is swept. Resources
	// whose creation time cannot be determined are treated as old.
	MaxAge time.Duration
	// DryRun logs what would be deleted without deleting.
	DryRun bool
}

// Summary counts what one sweep run did.
type Summary struct {
	VApps     int
	Disks     int
	Networks  int
	Templates int
	Skipped   int
}

// Total returns the number of resources swept across all kinds.
func (s Summary) Total() int {
	return s.VApps + s.Disks + s.Networks + s.Templates
}

// Sweeper deletes aged test resources from the configured org.
type Sweeper struct {
	client *vcd.Client
	log    *logging.Logger
	opts   Options
}

// New creates a sweeper over an authenticated client.
func New(client *vcd.Client, opts Options) *Sweeper {
	return &Sweeper{
		client: client,
		log:    logging.SweepLogger,
		opts:   opts,
	}
}

// Run sweeps every configured VDC and the configured catalog once. It
// keeps going past individual failures and returns them aggregated.
func (s *Sweeper) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	summary := Summary{}
	var errs error

	for _, vdcName := range s.vdcNames() {
		vdc, err := s.client.VDC(vdcName)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("resolving VDC %q: %w", vdcName, err))
			continue
		}
		if err := vdc.Refresh(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("refreshing VDC %q: %w", vdcName, err))
			continue
		}

		errs = multierr.Append(errs, s.sweepVApps(ctx, vdc, &summary))
		errs = multierr.Append(errs, s.sweepNetworks(ctx, vdc, &summary))
	}
	errs = multierr.Append(errs, s.sweepDisks(ctx, &summary))
	errs = multierr.Append(errs, s.sweepCatalogItems(&summary))

	status := "success"
	if errs != nil {
		status = "error"
	}
	metrics.RecordSweepRun(status, time.Since(start))

	s.log.Info("sweep finished",
		"vapps", summary.VApps, "disks", summary.Disks,
		"networks", summary.Networks, "templates", summary.Templates,
		"skipped", summary.Skipped, "duration", time.Since(start).String(),
		"dryRun", s.opts.DryRun)
	return summary, errs
}

func (s *Sweeper) vdcNames() []string {
	cfg := s.client.Config()
	names := []string{cfg.VDCName}
	if cfg.VDCName2 != "" && cfg.VDCName2 != cfg.VDCName {
		names = append(names, cfg.VDCName2)
	}
	return names
}

func (s *Sweeper) sweepVApps(ctx context.Context, vdc *govcd.Vdc, summary *Summary) error {
	var errs error
	for _, ref := range vdc.GetVappList() {
		if !strings.HasPrefix(ref.Name, s.opts.Prefix) {
			continue
		}

		vapp, err := vdc.GetVAppByName(ref.Name, true)
		if err != nil {
			if vcd.IsNotFound(err) {
				continue
			}
			errs = multierr.Append(errs, fmt.Errorf("getting vApp %q: %w", ref.Name, err))
			metrics.RecordSweepError("vapp")
			continue
		}

		if !ShouldSweep(vapp.VApp.Name, vapp.VApp.DateCreated, time.Now(), s.opts) {
			summary.Skipped++
			continue
		}
		if s.opts.DryRun {
			s.log.Info("would delete vApp", "name", vapp.VApp.Name, "created", vapp.VApp.DateCreated)
			summary.VApps++
			continue
		}

		s.log.Info("deleting vApp", "name", vapp.VApp.Name, "created", vapp.VApp.DateCreated)
		if task, err := vapp.Undeploy(); err == nil {
			// Powered-off vApps refuse undeploy; deletion handles those.
			_ = vcd.WaitTask(ctx, task)
		}
		task, err := vapp.Delete()
		if err == nil {
			err = vcd.WaitTask(ctx, task)
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("deleting vApp %q: %w", vapp.VApp.Name, err))
			metrics.RecordSweepError("vapp")
			continue
		}
		summary.VApps++
		metrics.RecordResourceSwept("vapp")
	}
	return errs
}

func (s *Sweeper) sweepDisks(ctx context.Context, summary *Summary) error {
	session, err := s.client.Session()
	if err != nil {
		return err
	}

	results, err := session.Client.QueryWithNotEncodedParams(nil, map[string]string{"type": "disk"})
	if err != nil {
		return fmt.Errorf("querying disks: %w", err)
	}

	records := lo.Filter(results.Results.DiskRecord, func(r *types.DiskRecordType, _ int) bool {
		return strings.HasPrefix(r.Name, s.opts.Prefix)
	})
	if len(records) == 0 {
		return nil
	}

	// The query is org-wide; the href on each record fully identifies
	// the disk, so the primary VDC handle serves for every fetch.
	vdc, err := s.client.VDC("")
	if err != nil {
		return err
	}

	var errs error
	for _, record := range records {
		// vCD exposes no creation timestamp on disk records or
		// entities; ShouldSweep treats the missing value as old.
		if !ShouldSweep(record.Name, "", time.Now(), s.opts) {
			summary.Skipped++
			continue
		}
		if s.opts.DryRun {
			s.log.Info("would delete disk", "name", record.Name)
			summary.Disks++
			continue
		}

		disk, err := vdc.GetDiskByHref(record.HREF)
		if err != nil {
			if vcd.IsNotFound(err) {
				continue
			}
			errs = multierr.Append(errs, fmt.Errorf("getting disk %q: %w", record.Name, err))
			metrics.RecordSweepError("disk")
			continue
		}

		s.log.Info("deleting disk", "name", record.Name)
		task, err := disk.Delete()
		if err == nil {
			err = vcd.WaitTask(ctx, task)
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("deleting disk %q: %w", record.Name, err))
			metrics.RecordSweepError("disk")
			continue
		}
		summary.Disks++
		metrics.RecordResourceSwept("disk")
	}
	return errs
}

func (s *Sweeper) sweepNetworks(ctx context.Context, vdc *govcd.Vdc, summary *Summary) error {
	var errs error
	for _, available := range vdc.Vdc.AvailableNetworks {
		for _, ref := range available.Network {
			// Org VDC network entities carry no creation timestamp;
			// ShouldSweep treats the missing value as old.
			if !ShouldSweep(ref.Name, "", time.Now(), s.opts) {
				if strings.HasPrefix(ref.Name, s.opts.Prefix) {
					summary.Skipped++
				}
				continue
			}
			if s.opts.DryRun {
				s.log.Info("would delete network", "name", ref.Name)
				summary.Networks++
				continue
			}

			network, err := vdc.GetOrgVdcNetworkByName(ref.Name, true)
			if err != nil {
				if vcd.IsNotFound(err) {
					continue
				}
				errs = multierr.Append(errs, fmt.Errorf("getting network %q: %w", ref.Name, err))
				metrics.RecordSweepError("network")
				continue
			}

			s.log.Info("deleting network", "name", ref.Name)
			task, err := network.Delete()
			if err == nil {
				err = vcd.WaitTask(ctx, task)
			}
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("deleting network %q: %w", ref.Name, err))
				metrics.RecordSweepError("network")
				continue
			}
			summary.Networks++
			metrics.RecordResourceSwept("network")
		}
	}
	return errs
}

func (s *Sweeper) sweepCatalogItems(summary *Summary) error {
	cfg := s.client.Config()
	if cfg.Catalog == "" {
		return nil
	}
	org, err := s.client.Org()
	if err != nil {
		return err
	}
	catalog, err := org.GetCatalogByName(cfg.Catalog, true)
	if err != nil {
		return fmt.Errorf("getting catalog %q: %w", cfg.Catalog, err)
	}

	var errs error
	for _, items := range catalog.Catalog.CatalogItems {
		for _, ref := range items.CatalogItem {
			if !strings.HasPrefix(ref.Name, s.opts.Prefix) {
				continue
			}

			item, err := catalog.GetCatalogItemByName(ref.Name, true)
			if err != nil {
				if vcd.IsNotFound(err) {
					continue
				}
				errs = multierr.Append(errs, fmt.Errorf("getting catalog item %q: %w", ref.Name, err))
				metrics.RecordSweepError("template")
				continue
			}

			// Catalog items do carry a creation timestamp, so the age
			// gate applies in full.
			if !ShouldSweep(ref.Name, item.CatalogItem.DateCreated, time.Now(), s.opts) {
				summary.Skipped++
				continue
			}
			if s.opts.DryRun {
				s.log.Info("would delete catalog item", "name", ref.Name, "created", item.CatalogItem.DateCreated)
				summary.Templates++
				continue
			}

			s.log.Info("deleting catalog item", "name", ref.Name)
			if err := item.Delete(); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("deleting catalog item %q: %w", ref.Name, err))
				metrics.RecordSweepError("template")
				continue
			}
			summary.Templates++
			metrics.RecordResourceSwept("template")
		}
	}
	return errs
}

// ShouldSweep decides whether a resource is fair game: the name must
// carry the prefix and the resource must be older than MaxAge. A
// creation time that is missing or unparseable counts as old, since
// the prefix alone already marks the resource as test-owned.
func ShouldSweep(name, created string, now time.Time, opts Options) bool {
	if !strings.HasPrefix(name, opts.Prefix) {
		return false
	}
	if opts.MaxAge <= 0 {
		return true
	}
	ts, err := ParseVCDTime(created)
	if err != nil {
		return true
	}
	return now.Sub(ts) >= opts.MaxAge
}

// ParseVCDTime parses the timestamp formats vCD uses in entity bodies
// and query records.
func ParseVCDTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	ts, err := time.Parse("2006-01-02T15:04:05.000Z0700", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return ts, nil
}
