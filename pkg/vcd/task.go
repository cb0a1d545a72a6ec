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
	"context"
	"fmt"
	"time"

	"github.com/vmware/go-vcloud-director/v2/govcd"
)

// WaitTask blocks until the asynchronous vCD task completes or the
// context expires. The SDK surfaces task failures as errors carrying
// the vCD task message; those pass through verbatim.
func WaitTask(ctx context.Context, task govcd.Task) error {
	done := make(chan error, 1)
	go func() {
		done <- task.WaitTaskCompletion()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("waiting for task: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for task: %w", ctx.Err())
	}
}

// Poll invokes cond every interval until it reports done, fails, or
// the context expires. The first invocation happens immediately.
func Poll(ctx context.Context, interval time.Duration, cond func() (bool, error)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		done, err := cond()
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
