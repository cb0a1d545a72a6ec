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

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger("test-component")
	assert.NotNil(t, logger)
	assert.Equal(t, "test-component", logger.GetComponent())
}

func TestWithName(t *testing.T) {
	logger := NewLogger("base")
	childLogger := logger.WithName("child")
	assert.Equal(t, "base.child", childLogger.GetComponent())
}

func TestWithValues(t *testing.T) {
	logger := NewLogger("test")
	loggerWithValues := logger.WithValues("key", "value")
	assert.NotNil(t, loggerWithValues)
	assert.Equal(t, "test", loggerWithValues.GetComponent())
}

func TestComponentLevelOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_LEVEL_CLIENT", "debug")

	base := NewLogger("sweep")
	assert.False(t, base.shouldLog("info"))
	assert.True(t, base.shouldLog("error"))

	client := NewLogger("client")
	assert.True(t, client.shouldLog("debug"))
}

func TestShouldLogDefaultsToInfo(t *testing.T) {
	logger := &Logger{logLevel: "bogus"}
	assert.True(t, logger.shouldLog("info"))
	assert.True(t, logger.shouldLog("warn"))
	assert.False(t, logger.shouldLog("debug"))
}
