// Copyright 2025 Events Paradise
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/frostbyte73/core"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

var ErrAppExited = errors.New("application exited before becoming ready")

// WaitUntilReady polls url until the server answers, the context is
// canceled, or the exited fuse breaks (the app died first). Polling is
// rate limited rather than tight-looped.
func WaitUntilReady(ctx context.Context, url string, exited *core.Fuse) error {
	limiter := rate.NewLimiter(rate.Every(500*time.Millisecond), 1)
	client := &http.Client{Timeout: 2 * time.Second}

	for {
		if err := limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-exited.Watch():
			return ErrAppExited
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		if resp, err := client.Do(req); err == nil {
			resp.Body.Close()
			// any HTTP answer means the server is up
			return nil
		}
	}
}
