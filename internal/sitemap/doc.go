// Package sitemap emits the sitemap document for the merged route set.
//
// Slugs are read from the persisted snapshot when it is available. A
// missing or unreadable snapshot triggers a live re-scan of the content
// sources; concurrent re-scans are coalesced. If the re-scan fails too the
// document degrades to the static routes. Emission never fails a request.
package sitemap
