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
	"net/url"
	"sync"

	"github.com/vmware/go-vcloud-director/v2/govcd"

	"github.com/deterok/vcd-e2e/pkg/httpclient"
	"github.com/deterok/vcd-e2e/pkg/logging"
)

// Client wraps an authenticated vCD session. The session and the
// org/VDC lookups behind it are established lazily and cached; all
// methods are safe for concurrent use.
type Client struct {
	cfg *Config
	log *logging.Logger

	mu      sync.RWMutex
	session *govcd.VCDClient
	org     *govcd.Org
	vdcs    map[string]*govcd.Vdc
}

// NewClient creates a client from the given configuration. No network
// traffic happens until the first accessor is called.
func NewClient(cfg *Config) *Client {
	return &Client{
		cfg:  cfg,
		log:  logging.ClientLogger,
		vdcs: map[string]*govcd.Vdc{},
	}
}

// Config returns the configuration the client was built from.
func (c *Client) Config() *Config {
	return c.cfg
}

// Session returns the authenticated SDK client, logging in on first use.
func (c *Client) Session() (*govcd.VCDClient, error) {
	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()
	if session != nil {
		return session, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		return c.session, nil
	}

	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	endpoint, err := url.ParseRequestURI(c.cfg.EndpointURL())
	if err != nil {
		return nil, fmt.Errorf("parsing vCD endpoint %q: %w", c.cfg.Host, err)
	}

	opts := []govcd.VCDClientOption{
		govcd.WithMaxRetryTimeout(c.cfg.MaxRetryTimeout),
		govcd.WithHttpUserAgent("vcd-e2e"),
	}
	if c.cfg.APIVersion != "" {
		opts = append(opts, govcd.WithAPIVersion(c.cfg.APIVersion))
	}

	session = govcd.NewVCDClient(*endpoint, c.cfg.Insecure, opts...)
	httpclient.Tune(&session.Client.Http, httpclient.DefaultRequestTimeout)

	c.log.Debug("authenticating", "endpoint", endpoint.String(), "org", c.cfg.Org, "user", c.cfg.User)
	if err := session.Authenticate(c.cfg.User, c.cfg.Password, c.cfg.Org); err != nil {
		return nil, fmt.Errorf("authenticating to %s as %s@%s: %w", endpoint, c.cfg.User, c.cfg.Org, err)
	}

	c.session = session
	return session, nil
}

// Org returns the organization the session is logged into.
func (c *Client) Org() (*govcd.Org, error) {
	c.mu.RLock()
	org := c.org
	c.mu.RUnlock()
	if org != nil {
		return org, nil
	}

	session, err := c.Session()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.org != nil {
		return c.org, nil
	}

	org, err = session.GetOrgByName(c.cfg.Org)
	if err != nil {
		return nil, fmt.Errorf("getting org %q: %w", c.cfg.Org, err)
	}
	c.org = org
	return org, nil
}

// VDC returns the named virtual datacenter, caching the lookup. An
// empty name resolves to the configured primary VDC.
func (c *Client) VDC(name string) (*govcd.Vdc, error) {
	if name == "" {
		name = c.cfg.VDCName
	}

	c.mu.RLock()
	vdc := c.vdcs[name]
	c.mu.RUnlock()
	if vdc != nil {
		return vdc, nil
	}

	org, err := c.Org()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if vdc := c.vdcs[name]; vdc != nil {
		return vdc, nil
	}

	vdc, err = org.GetVDCByName(name, true)
	if err != nil {
		return nil, fmt.Errorf("getting VDC %q: %w", name, err)
	}
	c.vdcs[name] = vdc
	return vdc, nil
}

// Disconnect logs the session out. The client is unusable afterwards.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil
	}
	err := c.session.Disconnect()
	c.session = nil
	c.org = nil
	c.vdcs = map[string]*govcd.Vdc{}
	if err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	return nil
}
