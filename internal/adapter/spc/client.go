// Package spc loads the Storm Prediction Center historical tornado dataset.
package spc

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jszwec/csvutil"

	"github.com/couchcryptid/tornado-map/internal/domain"
	"github.com/couchcryptid/tornado-map/internal/observability"
)

// ErrMissingColumn reports that the source dataset lacks a column the
// pipeline requires. Surfaces at load time rather than as a zero-filled
// field downstream.
var ErrMissingColumn = errors.New("required column missing")

// Client fetches and decodes the SPC tornado CSV from an HTTP URL or a
// local file path.
type Client struct {
	source     string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a dataset client. source is an http(s) URL or a path on
// disk.
func NewClient(source string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		source: source,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// FetchTornadoes retrieves the dataset and decodes it into tornado records.
// Transport failures and missing columns are fatal; individual rows that
// fail to parse are skipped with a warning so one bad line cannot sink the
// whole batch.
func (c *Client) FetchTornadoes(ctx context.Context) ([]domain.TornadoRecord, error) {
	start := time.Now()

	body, err := c.open(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	records, err := c.decode(body)
	if err != nil {
		return nil, err
	}

	c.metrics.FetchDuration.WithLabelValues("dataset").Observe(time.Since(start).Seconds())
	c.metrics.RecordsFetched.Add(float64(len(records)))
	c.logger.Info("tornado dataset loaded", "source", c.source, "records", len(records))
	return records, nil
}

func (c *Client) open(ctx context.Context) (io.ReadCloser, error) {
	if !strings.HasPrefix(c.source, "http://") && !strings.HasPrefix(c.source, "https://") {
		f, err := os.Open(c.source)
		if err != nil {
			return nil, fmt.Errorf("open dataset file: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.source, nil)
	if err != nil {
		return nil, fmt.Errorf("create dataset request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch dataset: status %d from %s", resp.StatusCode, c.source)
	}
	return resp.Body, nil
}

func (c *Client) decode(r io.Reader) ([]domain.TornadoRecord, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	if err := validateHeader(dec.Header()); err != nil {
		return nil, err
	}

	var records []domain.TornadoRecord
	for {
		var rec domain.TornadoRecord
		err := dec.Decode(&rec)
		if err == nil {
			records = append(records, rec)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if isRowError(err) {
			c.logger.Warn("skipping unparsable row", "error", err)
			c.metrics.RowsSkipped.Inc()
			continue
		}
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return records, nil
}

// validateHeader checks every required column is present before decoding.
func validateHeader(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = struct{}{}
	}
	for _, col := range domain.RequiredColumns {
		if _, ok := present[col]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return nil
}

// isRowError reports whether an error is scoped to one row (bad field value
// or malformed line) rather than the stream as a whole.
func isRowError(err error) bool {
	var typeErr *csvutil.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return true
	}
	var parseErr *csv.ParseError
	return errors.As(err, &parseErr)
}
