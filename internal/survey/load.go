package survey

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// missingTokens are the cell values read as missing.
var missingTokens = []string{"", "NA", "NaN", "nan"}

// IsRemote reports whether location is fetched over HTTP rather than opened from disk.
func IsRemote(location string) bool {
	l := strings.ToLower(strings.TrimSpace(location))
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Open returns a reader over the dataset at location. URLs are fetched with a
// single GET; anything else is opened as a local file. There is no retry.
func Open(ctx context.Context, client *http.Client, location string) (io.ReadCloser, error) {
	if !IsRemote(location) {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("open csv: %w", err)
		}
		return f, nil
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")
	resp, err := client.Do(req)
	if err != nil {
		return nil, &UnreachableError{URL: location, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{URL: location, StatusCode: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(b))}
	}
	return resp.Body, nil
}

// Read parses a headed CSV into a Table. All columns are read as floats.
func Read(r io.Reader) (*Table, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.Float),
		dataframe.NaNValues(missingTokens),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse csv: %w", df.Err)
	}
	return &Table{df: df}, nil
}

// Load fetches (or opens) location and parses it into a Table.
func Load(ctx context.Context, client *http.Client, location string) (*Table, error) {
	rc, err := Open(ctx, client, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Read(rc)
}
