// ============================================================================
// meinTRANSKRIPTARCHIV (mTA) - Lokales Transkriptionsarchiv
// ============================================================================
//
// Package:     version
// Description: Central version management
// Author:      Mike Stoffels with Claude
// Created:     2026-08-14
// License:     MIT
// ============================================================================

package version

// Version constants
const (
	// Application version
	App = "0.1.0"

	// Archive schema version; bump on incompatible schema changes
	Schema = "1"
)
