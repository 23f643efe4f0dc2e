// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for fetching release archives.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Download issues a single GET for url and copies the response body
// verbatim into w. It does not retry: any transport error or non-200
// status is returned to the caller. It returns the number of bytes written.
func Download(ctx context.Context, client *http.Client, url, userAgent string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("reading body from %s: %w", url, err)
	}
	return n, nil
}
