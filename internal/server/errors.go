// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// errNoServersAreCreated means the config carries no HTTP listen
	// address, leaving nothing to serve.
	errNoServersAreCreated = errors.New("no servers are created: HTTP address is not configured")
)
