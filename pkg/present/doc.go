// Package present derives display-only values from catalog records.
//
// Everything here is a pure function of a [catalog.Repository] and the
// current time: no network, no clock reads, no state. The derived values
// are never written back to the catalog.
//
//	v := present.Derive(repo, time.Now())
//	fmt.Println(v.Updated)    // "3 days ago"
//	fmt.Println(v.CloneHTTPS) // "https://github.com/acme/widget.git"
package present
