package printer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Job is the payload posted to the print sink for one physical print.
type Job struct {
	Printer  string `json:"printer"`
	Format   string `json:"format"`
	Paper    string `json:"paper"`
	Kind     string `json:"kind"`
	TicketID string `json:"ticket_id,omitempty"`
	OrderID  string `json:"order_id,omitempty"`
	Content  string `json:"content"`
	Copies   int    `json:"copies,omitempty"`
}

// SinkError reports a sink that answered but refused the job. A nil
// StatusCode means the transport itself failed after the retry.
type SinkError struct {
	StatusCode int
	Detail     string
}

func (e *SinkError) Error() string {
	if e.StatusCode == 0 {
		return "print sink unreachable: " + e.Detail
	}
	return fmt.Sprintf("print sink returned %d: %s", e.StatusCode, e.Detail)
}

// Sink delivers rendered tickets to a print endpoint.
type Sink interface {
	// Print sends one job. Delivery is confirmed only by a 2xx answer.
	Print(ctx context.Context, job *Job) error
	// Ping checks sink reachability and returns the device names it reports.
	Ping(ctx context.Context) ([]string, error)
}

// httpSink posts jobs to a print microservice over HTTP. A transport
// failure (dial, reset, timeout) gets exactly one retry after a short
// pause; an HTTP error status is final and never retried.
type httpSink struct {
	baseURL    string
	client     *http.Client
	retryDelay time.Duration
}

// NewHTTPSink creates a sink for the given base URL, e.g. "http://localhost:9100".
func NewHTTPSink(baseURL string, timeout, retryDelay time.Duration) Sink {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	if retryDelay <= 0 {
		retryDelay = 300 * time.Millisecond
	}
	return &httpSink{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: timeout},
		retryDelay: retryDelay,
	}
}

func (s *httpSink) Print(ctx context.Context, job *Job) error {
	if job.Format == "" {
		job.Format = "text"
	}
	body, err := json.Marshal(job)
	if err != nil {
		return &SinkError{Detail: "encode job: " + err.Error()}
	}

	resp, err := s.post(ctx, s.baseURL+"/print", body)
	if err != nil {
		select {
		case <-time.After(s.retryDelay):
		case <-ctx.Done():
			return &SinkError{Detail: ctx.Err().Error()}
		}
		resp, err = s.post(ctx, s.baseURL+"/print", body)
		if err != nil {
			return &SinkError{Detail: err.Error()}
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SinkError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (s *httpSink) post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.client.Do(req)
}

func (s *httpSink) Ping(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/printers", nil)
	if err != nil {
		return nil, &SinkError{Detail: err.Error()}
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &SinkError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &SinkError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	var payload struct {
		Printers []string `json:"printers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &SinkError{StatusCode: resp.StatusCode, Detail: "decode printer list: " + err.Error()}
	}
	return payload.Printers, nil
}

// readDetail captures a bounded slice of the response body for error
// messages.
func readDetail(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil || len(b) == 0 {
		return "(no body)"
	}
	return strings.TrimSpace(string(b))
}

// nullSink accepts every job without doing anything, for environments
// with no print service configured.
type nullSink struct{}

// NewNullSink creates a no-op sink.
func NewNullSink() Sink {
	return &nullSink{}
}

func (nullSink) Print(ctx context.Context, job *Job) error { return nil }

func (nullSink) Ping(ctx context.Context) ([]string, error) { return nil, nil }
