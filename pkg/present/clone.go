package present

import "strings"

const hostMarker = "github.com/"

// CloneURLs derives the clone URLs for a repository web URL.
//
// The HTTPS form is always url + ".git". The SSH form needs the owner/repo
// path after "github.com/"; when the marker is missing, ssh is empty and ok
// is false so callers can leave the SSH block out instead of guessing.
func CloneURLs(url string) (https, ssh string, ok bool) {
	if url == "" {
		return "", "", false
	}
	https = url + ".git"

	_, path, found := strings.Cut(url, hostMarker)
	if !found || path == "" {
		return https, "", false
	}
	return https, "git@github.com:" + path + ".git", true
}
