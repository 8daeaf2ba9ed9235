package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// DefaultReportFilename is used when the backend sends no usable
// Content-Disposition header.
const DefaultReportFilename = "reporte_vrisa.pdf"

type ReportCategory string

const (
	CategoryQuality ReportCategory = "QUALITY"
	CategoryTrends  ReportCategory = "TRENDS"
	CategoryAlerts  ReportCategory = "ALERTS"
)

// pathSegment maps a category to its endpoint segment.
func (rc ReportCategory) pathSegment() (string, error) {
	switch rc {
	case CategoryQuality:
		return "air-quality", nil
	case CategoryTrends:
		return "trends", nil
	case CategoryAlerts:
		return "alerts", nil
	default:
		return "", fmt.Errorf("unknown report category %q", rc)
	}
}

// Report is a downloaded binary, already fully read. Reports are small
// (single-station PDFs), so buffering is fine.
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
}

var filenameRe = regexp.MustCompile(`filename="?([^";]+)"?`)

// DownloadReport bypasses the JSON path entirely: it streams the PDF and
// recovers the server-suggested filename from Content-Disposition.
func (c *Client) DownloadReport(ctx context.Context, token string, category ReportCategory, query url.Values) (*Report, error) {
	segment, err := category.pathSegment()
	if err != nil {
		return nil, err
	}
	path := "/measurements/reports/" + segment + "/"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path, query), nil)
	if err != nil {
		return nil, err
	}
	c.decorate(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vrisa api GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return nil, parseAPIError(resp.StatusCode, raw, path)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read report body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}

	return &Report{
		Filename:    FilenameFromDisposition(resp.Header.Get("Content-Disposition")),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// FilenameFromDisposition extracts the filename from a Content-Disposition
// header, stripping quotes. Falls back to DefaultReportFilename.
func FilenameFromDisposition(header string) string {
	if header == "" {
		return DefaultReportFilename
	}
	m := filenameRe.FindStringSubmatch(header)
	if len(m) != 2 {
		return DefaultReportFilename
	}
	name := strings.TrimSpace(strings.Trim(m[1], `"`))
	if name == "" {
		return DefaultReportFilename
	}
	return name
}
