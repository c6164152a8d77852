// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across the pipeline.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for backoff between attempts.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxAttempts = 3

// DoWithRetry executes an HTTP request, treating transport errors and any
// non-200 status as failures. Failed requests are retried up to maxAttempts
// total tries with the delay doubling between attempts: 2 s, 4 s.
//
// When maxAttempts is 0 the default (3) is used. Failed response bodies are
// drained and closed before sleeping. If the context is cancelled during a
// backoff wait the function returns ctx.Err(). After the last attempt the
// last failure is returned so the caller can escalate it; a request that
// cannot reach the source never degrades into an empty success.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxAttempts int) (*http.Response, error) {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := RetryBaseDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode == http.StatusOK {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		lastErr = fmt.Errorf("%s returned HTTP %d", req.URL.Host, resp.StatusCode)
	}
	return nil, lastErr
}
