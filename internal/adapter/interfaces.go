// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer towards the upstream HR API.
//
// The primary abstraction is [PageFetcher], which issues exactly one
// paginated call and normalizes the heterogeneous response shapes into a
// [models.Page]. The package ships a resty-based implementation
// ([NewHTTPPageFetcher]).
//
// Failures are typed: [ErrNetwork] for transport problems, [*HTTPError] for
// non-2xx statuses (also matchable against the status sentinels with
// [errors.Is]) and [*ParseError] for bodies that are not JSON.
package adapter

import (
	"context"

	"github.com/MKhiriev/punch-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/page_fetcher_mock.go -package=mock

// PageFetcher performs one upstream page call.
type PageFetcher interface {
	// FetchPage requests page req.Page of size req.Size with req.Filters as
	// additional query parameters. A response without a recognizable record
	// list yields an empty page, not an error.
	FetchPage(ctx context.Context, req models.PageRequest) (models.Page, error)
}

// Diagnostics receives one entry per upstream exchange. Implementations must
// not panic into the caller or block it on failures.
type Diagnostics interface {
	Report(ctx context.Context, exchange models.Exchange)
}
