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

// Package metrics exposes Prometheus metrics for the sweeper.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	SweepRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vcdsweep_runs_total",
			Help: "Total sweep runs by outcome.",
		},
		[]string{"status"},
	)

	ResourcesSwept = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vcdsweep_resources_swept_total",
			Help: "Total resources deleted by the sweeper, by kind.",
		},
		[]string{"kind"},
	)

	SweepErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vcdsweep_errors_total",
			Help: "Total sweep failures by resource kind.",
		},
		[]string{"kind"},
	)

	SweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vcdsweep_duration_seconds",
			Help:    "Duration of a full sweep run in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		SweepRuns,
		ResourcesSwept,
		SweepErrors,
		SweepDuration,
	)
}

// RecordSweepRun records one finished sweep run and its duration.
func RecordSweepRun(status string, duration time.Duration) {
	SweepRuns.WithLabelValues(status).Inc()
	SweepDuration.Observe(duration.Seconds())
}

// RecordResourceSwept counts one deleted resource of the given kind.
func RecordResourceSwept(kind string) {
	ResourcesSwept.WithLabelValues(kind).Inc()
}

// RecordSweepError counts one failed deletion of the given kind.
func RecordSweepError(kind string) {
	SweepErrors.WithLabelValues(kind).Inc()
}
