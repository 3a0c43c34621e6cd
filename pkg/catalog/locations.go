package catalog

import (
	"strings"

	"github.com/wronai/repodash/pkg/errors"
)

// Well-known catalog file names, relative to the site root.
const (
	PrimaryFile = "repos.json"
	LegacyFile  = "data/repos_updated.json"
)

// Kind says how a candidate location is fetched.
type Kind int

const (
	KindHTTP Kind = iota
	KindFile
)

func (k Kind) String() string {
	if k == KindHTTP {
		return "http"
	}
	return "file"
}

// Candidate is one location that may hold the catalog.
type Candidate struct {
	Location string
	Kind     Kind
}

func (c Candidate) String() string { return c.Location }

// Locations describes where a deployed dashboard may find its catalog.
type Locations struct {
	// Origin is the scheme and host the site is served from, for example
	// "https://wronai.github.io". Empty disables the HTTP candidates.
	Origin string

	// BasePath is the deployment prefix under Origin, for example
	// "/projects". Empty means the site lives at the origin root.
	BasePath string

	// Sources are explicit locations tried before the defaults. Values that
	// start with http:// or https:// are fetched over HTTP, anything else is
	// read from disk.
	Sources []string
}

// Validate checks the origin and base path.
func (l Locations) Validate() error {
	if l.Origin != "" {
		if err := errors.ValidateURL(l.Origin); err != nil {
			return err
		}
	}
	return errors.ValidateBasePath(l.BasePath)
}

// Candidates returns the ordered candidate list. Locations that coincide
// (an empty base path repeats the origin paths) are kept, so positions in
// the list are stable regardless of configuration.
func (l Locations) Candidates() []Candidate {
	var out []Candidate
	for _, s := range l.Sources {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, Candidate{Location: s, Kind: kindOf(s)})
		}
	}

	if origin := strings.TrimRight(l.Origin, "/"); origin != "" {
		base := strings.TrimRight(l.BasePath, "/")
		out = append(out,
			Candidate{Location: origin + base + "/" + PrimaryFile, Kind: KindHTTP},
			Candidate{Location: origin + base + "/" + LegacyFile, Kind: KindHTTP},
			Candidate{Location: origin + "/" + PrimaryFile, Kind: KindHTTP},
			Candidate{Location: origin + "/" + LegacyFile, Kind: KindHTTP},
		)
	}

	return append(out,
		Candidate{Location: PrimaryFile, Kind: KindFile},
		Candidate{Location: LegacyFile, Kind: KindFile},
	)
}

func kindOf(location string) Kind {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return KindHTTP
	}
	return KindFile
}
