package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilenameFromDisposition(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{`attachment; filename="reporte_semanal.pdf"`, "reporte_semanal.pdf"},
		{`attachment; filename=report.pdf`, "report.pdf"},
		{`attachment`, DefaultReportFilename},
		{``, DefaultReportFilename},
		{`attachment; filename=""`, DefaultReportFilename},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FilenameFromDisposition(tc.header), "header %q", tc.header)
	}
}

func TestDownloadReport_RelaysBinaryAndFilename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/measurements/reports/trends/", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("station"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="tendencias_42.pdf"`)
		w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	q := url.Values{}
	q.Set("station", "42")
	rep, err := c.DownloadReport(context.Background(), "tok", CategoryTrends, q)
	require.NoError(t, err)
	assert.Equal(t, "tendencias_42.pdf", rep.Filename)
	assert.Equal(t, "application/pdf", rep.ContentType)
	assert.Equal(t, []byte("%PDF-1.7 fake"), rep.Data)
}

func TestDownloadReport_UnknownCategory(t *testing.T) {
	c := New("http://unused")
	_, err := c.DownloadReport(context.Background(), "tok", ReportCategory("WEEKLY"), nil)
	require.Error(t, err)
}

func TestDownloadReport_ErrorSurfacesAsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"no report for that period"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.DownloadReport(context.Background(), "tok", CategoryQuality, nil)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "no report for that period", apiErr.Message)
}
