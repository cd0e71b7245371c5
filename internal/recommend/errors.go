// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package recommend

import (
	"errors"

	"github.com/hamadayuuki/irodori-api/internal/metrics"
)

var (
	// ErrInvalidType means the clothing type matched no known alias.
	ErrInvalidType = errors.New("invalid type")

	// ErrNoMatch means the query found no similar garment.
	ErrNoMatch = errors.New("no matching items found")

	// ErrUnknownSegment means no index is loaded for the resolved segment.
	ErrUnknownSegment = errors.New("model not available")

	// ErrInvalidRequest means a request field failed validation.
	ErrInvalidRequest = errors.New("invalid request")
)

// ErrorKind maps err to a stable outcome label for metrics and logs.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrInvalidType):
		return metrics.OutcomeInvalidType
	case errors.Is(err, ErrNoMatch):
		return metrics.OutcomeNoMatch
	case errors.Is(err, ErrUnknownSegment):
		return metrics.OutcomeUnknownSegment
	case errors.Is(err, ErrInvalidRequest):
		return metrics.OutcomeInvalidRequest
	default:
		return metrics.OutcomeError
	}
}

// IsClientError reports whether err was caused by the request rather than
// by the deployment.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrNoMatch)
}
