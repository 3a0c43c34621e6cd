package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/wronai/repodash/pkg/cache"
	"github.com/wronai/repodash/pkg/errors"
)

// catalogServer serves fixed bodies per path and counts requests.
type catalogServer struct {
	*httptest.Server
	hits  map[string]*atomic.Int32
	total atomic.Int32
}

func newCatalogServer(t *testing.T, routes map[string]func(w http.ResponseWriter)) *catalogServer {
	t.Helper()
	s := &catalogServer{hits: map[string]*atomic.Int32{}}
	for path := range routes {
		s.hits[path] = &atomic.Int32{}
	}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.total.Add(1)
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		s.hits[r.URL.Path].Add(1)
		h(w)
	}))
	t.Cleanup(s.Close)
	return s
}

func body(s string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) { w.Write([]byte(s)) }
}

func status(code int) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) { w.WriteHeader(code) }
}

func httpCandidates(base string, paths ...string) []Candidate {
	out := make([]Candidate, len(paths))
	for i, p := range paths {
		out[i] = Candidate{Location: base + p, Kind: KindHTTP}
	}
	return out
}

func TestLoadFirstValidCandidateWins(t *testing.T) {
	srv := newCatalogServer(t, map[string]func(http.ResponseWriter){
		"/a":    status(http.StatusInternalServerError),
		"/b":    body(`{"repositories":{"not":"an array"}}`),
		"/c":    body(`not json`),
		"/d":    body(`{"repositories":[{"name":"d1"},{"name":"d2"}]}`),
		"/e":    body(`[{"name":"never"}]`),
		"/f":    body(`[{"name":"never"}]`),
		"/miss": status(http.StatusNotFound),
	})

	l := NewLoader(httpCandidates(srv.URL, "/miss", "/a", "/b", "/c", "/d", "/e", "/f"))
	res := l.Load(context.Background())

	if res.Failed() {
		t.Fatalf("Load() failed: %v", res.Err)
	}
	if diff := cmp.Diff([]string{"d1", "d2"}, res.Catalog.Names()); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}
	if res.Source.Location != srv.URL+"/d" {
		t.Errorf("Source = %q", res.Source.Location)
	}
	if res.Attempts != 5 {
		t.Errorf("Attempts = %d, want 5", res.Attempts)
	}
	if n := srv.hits["/e"].Load() + srv.hits["/f"].Load(); n != 0 {
		t.Errorf("candidates after the winner were requested %d times", n)
	}
	if n := srv.total.Load(); n != 5 {
		t.Errorf("total requests = %d, want 5", n)
	}
}

func TestLoadEmptyRepositoriesStopsSearch(t *testing.T) {
	srv := newCatalogServer(t, map[string]func(http.ResponseWriter){
		"/empty": body(`{"repositories":[]}`),
		"/full":  body(`[{"name":"x"}]`),
	})

	res := NewLoader(httpCandidates(srv.URL, "/empty", "/full")).Load(context.Background())

	if res.Failed() {
		t.Fatalf("empty-but-valid should not fail: %v", res.Err)
	}
	if len(res.Catalog) != 0 {
		t.Errorf("catalog has %d records, want 0", len(res.Catalog))
	}
	if srv.hits["/full"].Load() != 0 {
		t.Error("loader continued after an empty-but-valid catalog")
	}
}

func TestLoadAllCandidatesFail(t *testing.T) {
	srv := newCatalogServer(t, map[string]func(http.ResponseWriter){
		"/bad": body(`"just a string"`),
	})

	res := NewLoader(httpCandidates(srv.URL, "/bad", "/gone")).Load(context.Background())

	if !res.Failed() {
		t.Fatal("Load() should report failure")
	}
	if res.Catalog == nil || len(res.Catalog) != 0 {
		t.Errorf("failed load should return an empty, non-nil catalog, got %#v", res.Catalog)
	}
	if !errors.Is(res.Err, errors.ErrCodeSourceUnavailable) {
		t.Errorf("error code = %v, want SOURCE_UNAVAILABLE", errors.GetCode(res.Err))
	}
	msg := errors.UserMessage(res.Err)
	want := "All attempts to load repository data failed. Error loading from " + srv.URL + "/gone: 404 Not Found"
	if msg != want {
		t.Errorf("message = %q\nwant      %q", msg, want)
	}
}

func TestLoadNoCandidates(t *testing.T) {
	res := NewLoader(nil).Load(context.Background())
	if !res.Failed() || res.Attempts != 0 {
		t.Fatalf("Load() = %+v, want failure with zero attempts", res)
	}
	if !strings.Contains(errors.UserMessage(res.Err), "No catalog locations") {
		t.Errorf("message = %q", errors.UserMessage(res.Err))
	}
}

func TestAttemptsIsLazy(t *testing.T) {
	srv := newCatalogServer(t, map[string]func(http.ResponseWriter){
		"/one": body(`[]`),
		"/two": body(`[]`),
	})
	l := NewLoader(httpCandidates(srv.URL, "/one", "/two"))

	for a := range l.Attempts(context.Background()) {
		if !a.OK() {
			t.Fatalf("attempt failed: %v", a.Err)
		}
		break
	}
	if srv.hits["/two"].Load() != 0 {
		t.Error("breaking out of Attempts should stop further fetches")
	}
}

func TestAttemptsStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := 0
	for range NewLoader([]Candidate{{Location: "repos.json", Kind: KindFile}}).Attempts(ctx) {
		n++
	}
	if n != 0 {
		t.Errorf("got %d attempts on a cancelled context", n)
	}
}

func TestLoadFromFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "data", "repos_updated.json"), []byte(`[{"name":"legacy"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(Locations{}.Candidates(), WithFileSource(NewFileSource(root)))
	res := l.Load(context.Background())

	if res.Failed() {
		t.Fatalf("Load() failed: %v", res.Err)
	}
	if res.Source.Location != LegacyFile {
		t.Errorf("Source = %q, want %q", res.Source.Location, LegacyFile)
	}
	if diff := cmp.Diff([]string{"legacy"}, res.Catalog.Names()); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestOnAttemptSeesEachTriedCandidate(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "data", "repos_updated.json"), []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	var tried []string
	l := NewLoader(Locations{}.Candidates(),
		WithFileSource(NewFileSource(root)),
		WithOnAttempt(func(c Candidate) { tried = append(tried, c.Location) }),
	)
	l.Load(context.Background())

	if diff := cmp.Diff([]string{PrimaryFile, LegacyFile}, tried); diff != "" {
		t.Errorf("tried mismatch (-want +got):\n%s", diff)
	}
}

func TestFileSourceRejectsTraversal(t *testing.T) {
	_, err := NewFileSource(t.TempDir()).Fetch(context.Background(), "../secrets.json")
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("error = %v, want INVALID_PATH", err)
	}
}

func TestHTTPSourceServesFromCache(t *testing.T) {
	srv := newCatalogServer(t, map[string]func(http.ResponseWriter){
		"/repos.json": body(`[{"name":"cached"}]`),
	})
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := NewHTTPSource(WithCache(fc, time.Hour))
	cands := httpCandidates(srv.URL, "/repos.json")

	for i := range 3 {
		res := NewLoader(cands, WithHTTPSource(src)).Load(context.Background())
		if res.Failed() {
			t.Fatalf("run %d failed: %v", i, res.Err)
		}
	}
	if n := srv.total.Load(); n != 1 {
		t.Errorf("server saw %d requests, want 1", n)
	}
}

func TestHTTPSourceForgetsInvalidBodies(t *testing.T) {
	srv := newCatalogServer(t, map[string]func(http.ResponseWriter){
		"/repos.json": body(`{"repositories":"broken"}`),
	})
	fc, _ := cache.NewFileCache(t.TempDir())
	src := NewHTTPSource(WithCache(fc, time.Hour))
	cands := httpCandidates(srv.URL, "/repos.json")

	NewLoader(cands, WithHTTPSource(src)).Load(context.Background())
	NewLoader(cands, WithHTTPSource(src)).Load(context.Background())

	if n := srv.total.Load(); n != 2 {
		t.Errorf("server saw %d requests, want 2 (invalid body must not be cached)", n)
	}
}

func TestHTTPSourceRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	src := NewHTTPSource(WithRetries(2, time.Millisecond))
	res := NewLoader(httpCandidates(srv.URL, "/repos.json"), WithHTTPSource(src)).Load(context.Background())

	if res.Failed() {
		t.Fatalf("Load() failed: %v", res.Err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}
