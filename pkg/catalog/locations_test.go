package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCandidates(t *testing.T) {
	tests := []struct {
		name string
		loc  Locations
		want []Candidate
	}{
		{
			name: "origin and base path",
			loc:  Locations{Origin: "https://wronai.github.io/", BasePath: "/projects/"},
			want: []Candidate{
				{"https://wronai.github.io/projects/repos.json", KindHTTP},
				{"https://wronai.github.io/projects/data/repos_updated.json", KindHTTP},
				{"https://wronai.github.io/repos.json", KindHTTP},
				{"https://wronai.github.io/data/repos_updated.json", KindHTTP},
				{"repos.json", KindFile},
				{"data/repos_updated.json", KindFile},
			},
		},
		{
			name: "origin without base path keeps duplicates",
			loc:  Locations{Origin: "http://localhost:8080"},
			want: []Candidate{
				{"http://localhost:8080/repos.json", KindHTTP},
				{"http://localhost:8080/data/repos_updated.json", KindHTTP},
				{"http://localhost:8080/repos.json", KindHTTP},
				{"http://localhost:8080/data/repos_updated.json", KindHTTP},
				{"repos.json", KindFile},
				{"data/repos_updated.json", KindFile},
			},
		},
		{
			name: "no origin",
			loc:  Locations{BasePath: "/ignored"},
			want: []Candidate{
				{"repos.json", KindFile},
				{"data/repos_updated.json", KindFile},
			},
		},
		{
			name: "explicit sources first",
			loc:  Locations{Sources: []string{"https://cdn.example.com/repos.json", " ", "/srv/catalog.json"}},
			want: []Candidate{
				{"https://cdn.example.com/repos.json", KindHTTP},
				{"/srv/catalog.json", KindFile},
				{"repos.json", KindFile},
				{"data/repos_updated.json", KindFile},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.loc.Candidates()); diff != "" {
				t.Errorf("Candidates() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLocationsValidate(t *testing.T) {
	tests := []struct {
		name    string
		loc     Locations
		wantErr bool
	}{
		{"empty", Locations{}, false},
		{"origin and base", Locations{Origin: "https://wronai.github.io", BasePath: "/projects"}, false},
		{"bad origin", Locations{Origin: "wronai.github.io"}, true},
		{"bad base path", Locations{BasePath: "projects"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.loc.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
