// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinclient

import (
	"net/url"
	"strings"
)

// detectCaptiveNetwork reports a *CaptiveNetworkError when the response was
// served by a host other than the one requested. Ports and paths are ignored.
func detectCaptiveNetwork(requested, final *url.URL) error {
	if requested == nil || final == nil {
		return nil
	}
	if strings.EqualFold(requested.Hostname(), final.Hostname()) {
		return nil
	}
	return &CaptiveNetworkError{OriginalURL: requested, FinalURL: final}
}
