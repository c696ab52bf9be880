package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bibcleaner/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailPage = `<html><body>
<pre>@inproceedings{DBLP:conf/bpm/Aalst11,
  author    = {Wil M. P. van der Aalst},
  title     = {Process Mining},
  crossref  = {DBLP:conf/bpm/2011},
  year      = {2011}
}</pre>
<pre>@proceedings{DBLP:conf/bpm/2011,
  title     = {Business Process Management},
  year      = {2011}
}</pre>
</body></html>`

func newIndexServer(t *testing.T) *httptest.Server {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/search" && strings.Contains(r.URL.Query().Get("q"), "Process Mining"):
			fmt.Fprintf(w, `<result><hits total="1"><hit><info><url>%s/rec/conf/bpm/Aalst11</url></info></hit></hits></result>`, srv.URL)
		case r.URL.Path == "/search":
			fmt.Fprint(w, `<result><hits total="0"></hits></result>`)
		case r.URL.Path == "/rec/conf/bpm/Aalst11.html":
			fmt.Fprint(w, detailPage)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCleanCommand(t *testing.T) {
	srv := newIndexServer(t)
	t.Setenv("DBLP_SEARCH_URL", srv.URL+"/search?q={query}&h={max}")
	t.Setenv("DBLP_INTERVAL_SECONDS", "0")
	t.Setenv("LOG_LEVEL", "error")

	dir := t.TempDir()
	source := filepath.Join(dir, "refs.bib")
	src := `% my references
@misc{mine, title = {Process Mining}, note = {keep}}
@misc{unknown, title = {Nothing Like This}}
`
	require.NoError(t, os.WriteFile(source, []byte(src), 0o600))

	out := filepath.Join(dir, "out")
	RootCmd.SetArgs([]string{"clean", source, "--output-dir", out, "--non-interactive", "first", "--config-dir", dir})
	require.NoError(t, RootCmd.ExecuteContext(context.Background()))

	regular, err := os.ReadFile(filepath.Join(out, "refs_cleaned.bib"))
	require.NoError(t, err)
	assert.Contains(t, string(regular), "% Cleaned version of refs.bib")
	assert.Contains(t, string(regular), "% my references")
	assert.Contains(t, string(regular), "@inproceedings{mine,")
	assert.Contains(t, string(regular), "note = {keep}")
	assert.Contains(t, string(regular), "% NOT CLEANED ENTRY (no results):\n\n@misc{unknown,")

	crossref, err := os.ReadFile(filepath.Join(out, "refs_cleaned_crossref.bib"))
	require.NoError(t, err)
	assert.Contains(t, string(crossref), "% Crossreference bibtex file!")
	assert.Contains(t, string(crossref), "@proceedings{DBLP:conf/bpm/2011,")
}

func TestCleanCommand_ParseErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "broken.bib")
	require.NoError(t, os.WriteFile(source, []byte("@misc{k,\n title = {open\n"), 0o600))

	RootCmd.SetArgs([]string{"clean", source, "--non-interactive", "original", "--config-dir", dir})
	err := RootCmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")

	_, statErr := os.Stat(filepath.Join(dir, "broken_cleaned.bib"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestEstimateFinish(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(60*time.Second), estimateFinish(now, 10, -1, 3*time.Second))
	assert.Equal(t, now.Add(12*time.Second), estimateFinish(now, 10, 2, 3*time.Second))
}

func TestRenderSummary(t *testing.T) {
	out := renderSummary(reconcile.Summary{Records: 3, Cleaned: 2, Skipped: 1})
	assert.Contains(t, out, "Cleaned")
	assert.Contains(t, out, "Not looked up")
}
