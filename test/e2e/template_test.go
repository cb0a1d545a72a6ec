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

func TestVAppTemplateCapture(t *testing.T) {
	s := SetupE2ETestSuite(t)

	vapp := s.instantiateVApp(t, randName("vapp"), vappOptions{})

	tmplName := randName("tmpl")
	template := s.captureTemplate(t, vapp, tmplName)
	require.NotNil(t, template.VAppTemplate)
	assert.Equal(t, tmplName, template.VAppTemplate.Name)

	catalog, err := s.Org.GetCatalogByName(s.Config.Catalog, true)
	require.NoError(t, err)

	t.Run("catalog item lookup", func(t *testing.T) {
		item, err := catalog.GetCatalogItemByName(tmplName, true)
		require.NoError(t, err)
		assert.Equal(t, tmplName, item.CatalogItem.Name)
	})

	t.Run("captured exactly once", func(t *testing.T) {
		count := 0
		for _, items := range catalog.Catalog.CatalogItems {
			for _, ref := range items.CatalogItem {
				if ref.Name == tmplName {
					count++
				}
			}
		}
		assert.Equal(t, 1, count, "expected one catalog item named %s", tmplName)
	})

	t.Run("delete", func(t *testing.T) {
		item, err := catalog.GetCatalogItemByName(tmplName, true)
		require.NoError(t, err)
		require.NoError(t, item.Delete())

		_, err = catalog.GetCatalogItemByName(tmplName, true)
		require.Error(t, err)
		assert.True(t, vcd.IsNotFound(err), "expected not-found, got: %v", err)
	})
}
