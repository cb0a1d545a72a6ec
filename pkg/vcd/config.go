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

// Package vcd holds the session layer of the suite: environment-driven
// configuration, an authenticated client over the vCloud Director SDK,
// and the handful of fixture-side request bindings the SDK does not
// model itself.
package vcd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries everything needed to talk to a vCD tenancy. Values
// come from VCD_* environment variables, falling back to the bare
// lower-case names older tooling used in its envfile (host, org,
// user, password, vdc_name, ...).
type Config struct {
	// Host is the vCD endpoint, with or without the https:// scheme.
	Host     string
	Org      string
	User     string
	Password string

	// Insecure skips TLS verification. Most lab endpoints are
	// self-signed, so it defaults to true.
	Insecure bool

	// APIVersion overrides the SDK's negotiated API version when set.
	APIVersion string

	// VDCName is the virtual datacenter all fixtures are placed in.
	VDCName string
	// VDCName2 is an optional second VDC for cross-VDC clone tests.
	VDCName2 string

	// Catalog and TemplateName identify the source template fixtures
	// are instantiated from.
	Catalog      string
	TemplateName string

	// StorageProfile is the profile new fixtures use; StorageProfile2
	// is an optional second profile for migration tests.
	StorageProfile  string
	StorageProfile2 string

	// EdgeGateway and NetworkCIDR parametrize the routed org VDC
	// network tests; both optional.
	EdgeGateway string
	NetworkCIDR string

	// TaskTimeout bounds every wait on an asynchronous vCD task.
	TaskTimeout time.Duration

	// MaxRetryTimeout is handed to the SDK for its internal retries,
	// in seconds.
	MaxRetryTimeout int
}

const (
	defaultTaskTimeout     = 10 * time.Minute
	defaultMaxRetryTimeout = 60
)

// LoadConfig reads the configuration from the environment. It does not
// validate; call Validate once it is known the caller actually needs a
// live session (tests skip instead of failing on missing credentials).
func LoadConfig() *Config {
	cfg := &Config{
		Host:            getenv("VCD_HOST", "host"),
		Org:             getenv("VCD_ORG", "org"),
		User:            getenv("VCD_USER", "user"),
		Password:        getenv("VCD_PASSWORD", "password"),
		APIVersion:      getenv("VCD_API_VERSION"),
		VDCName:         getenv("VCD_VDC", "vdc_name"),
		VDCName2:        getenv("VCD_VDC2", "vdc_name2"),
		Catalog:         getenv("VCD_CATALOG", "catalog"),
		TemplateName:    getenv("VCD_TEMPLATE", "template_name"),
		StorageProfile:  getenv("VCD_STORAGE_PROFILE", "storage_profile"),
		StorageProfile2: getenv("VCD_STORAGE_PROFILE2", "storage_profile2"),
		EdgeGateway:     getenv("VCD_EDGE_GATEWAY", "edge_gateway"),
		NetworkCIDR:     getenv("VCD_NETWORK_CIDR", "network_cidr"),
		Insecure:        true,
		TaskTimeout:     defaultTaskTimeout,
		MaxRetryTimeout: defaultMaxRetryTimeout,
	}

	if raw := getenv("VCD_INSECURE"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.Insecure = v
		}
	}
	if raw := getenv("VCD_TASK_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.TaskTimeout = d
		}
	}
	if raw := getenv("VCD_MAX_RETRY_TIMEOUT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.MaxRetryTimeout = n
		}
	}

	return cfg
}

// Validate reports every missing required field at once so a broken
// environment is fixed in one round trip.
func (c *Config) Validate() error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"VCD_HOST", c.Host},
		{"VCD_ORG", c.Org},
		{"VCD_USER", c.User},
		{"VCD_PASSWORD", c.Password},
		{"VCD_VDC", c.VDCName},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// HasCredentials reports whether enough is set to attempt a login.
func (c *Config) HasCredentials() bool {
	return c.Validate() == nil
}

// EndpointURL returns the API endpoint, normalizing a bare hostname
// into the https://<host>/api form the SDK expects.
func (c *Config) EndpointURL() string {
	host := strings.TrimSuffix(c.Host, "/")
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	if !strings.HasSuffix(host, "/api") {
		host += "/api"
	}
	return host
}

// getenv returns the first non-empty value among the given keys.
func getenv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
