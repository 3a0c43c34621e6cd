// Package catalog loads the repository catalog the dashboard displays.
//
// A catalog is a JSON document published next to the dashboard, either as a
// bare array of records or as an object with a "repositories" array. The
// same file can live at several places depending on how the site was
// deployed, so [Loader] walks an ordered list of [Candidate] locations and
// stops at the first one that answers with a structurally valid catalog.
//
// # Candidates
//
// [Locations.Candidates] produces, in order:
//
//  1. {origin}{base}/repos.json
//  2. {origin}{base}/data/repos_updated.json
//  3. {origin}/repos.json
//  4. {origin}/data/repos_updated.json
//  5. repos.json, relative to the local root
//  6. data/repos_updated.json, relative to the local root
//
// Explicit sources are tried before all of these. Without an origin only the
// local candidates remain.
//
// # Failure handling
//
// [Loader.Load] never returns an error to its caller. Every per-candidate
// failure is absorbed and the next candidate is tried. When all of them fail
// the [Result] carries an empty catalog and a SOURCE_UNAVAILABLE error whose
// user message is meant to be shown as a banner.
//
// # Lazy attempts
//
// [Loader.Attempts] exposes the fallback chain as an iter.Seq. Each candidate
// is fetched only when the consumer asks for the next attempt, so breaking
// out of the range loop guarantees no further requests:
//
//	for a := range loader.Attempts(ctx) {
//	    if a.Err == nil {
//	        use(a.Catalog)
//	        break
//	    }
//	}
package catalog
