// Package linkstat extracts same-site hyperlinks from a single page,
// normalizes and deduplicates them, and aggregates occurrence counts per
// anchor text for persistence and ranked querying.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, goquery/).
package linkstat
