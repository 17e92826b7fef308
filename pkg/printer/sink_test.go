package printer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSink_PrintSuccess(t *testing.T) {
	var got Job
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/print", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, 2*time.Second, 10*time.Millisecond)
	err := sink.Print(context.Background(), &Job{
		Printer: "FRONT_58MM",
		Paper:   "58",
		Kind:    "sale",
		Content: "hola",
	})

	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "FRONT_58MM", got.Printer)
	assert.Equal(t, "text", got.Format, "format defaults to text")
	assert.Equal(t, "hola", got.Content)
}

func TestHTTPSink_PrintHTTPErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("printer offline"))
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, 2*time.Second, 10*time.Millisecond)
	err := sink.Print(context.Background(), &Job{Content: "x"})

	require.Error(t, err)
	var sinkErr *SinkError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, http.StatusServiceUnavailable, sinkErr.StatusCode)
	assert.Equal(t, "printer offline", sinkErr.Detail)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "an HTTP error status is final")
}

func TestHTTPSink_PrintRetriesTransportErrorOnce(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			// Drop the connection mid-request to force a transport error.
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, 2*time.Second, 10*time.Millisecond)
	err := sink.Print(context.Background(), &Job{Content: "x"})

	require.NoError(t, err, "second attempt should succeed")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestHTTPSink_PrintUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	sink := NewHTTPSink(srv.URL, time.Second, time.Millisecond)
	err := sink.Print(context.Background(), &Job{Content: "x"})

	require.Error(t, err)
	var sinkErr *SinkError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, 0, sinkErr.StatusCode)
}

func TestHTTPSink_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/printers", r.URL.Path)
		json.NewEncoder(w).Encode(map[string][]string{
			"printers": {"KITCHEN_80MM", "FRONT_58MM"},
		})
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, time.Second, time.Millisecond)
	printers, err := sink.Ping(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"KITCHEN_80MM", "FRONT_58MM"}, printers)
}

func TestHTTPSink_PingError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, time.Second, time.Millisecond)
	_, err := sink.Ping(context.Background())

	require.Error(t, err)
	var sinkErr *SinkError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, http.StatusInternalServerError, sinkErr.StatusCode)
}

func TestHTTPSink_PingMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html>not the print service</html>"))
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, time.Second, time.Millisecond)
	printers, err := sink.Ping(context.Background())

	require.Error(t, err, "a 2xx answer with an undecodable body is not a healthy sink")
	assert.Nil(t, printers)
	var sinkErr *SinkError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, http.StatusOK, sinkErr.StatusCode)
	assert.Contains(t, sinkErr.Detail, "decode printer list")
}

func TestNullSink(t *testing.T) {
	sink := NewNullSink()
	assert.NoError(t, sink.Print(context.Background(), &Job{Content: "x"}))

	printers, err := sink.Ping(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, printers)
}

func TestSinkError_Error(t *testing.T) {
	assert.Contains(t, (&SinkError{StatusCode: 502, Detail: "bad gateway"}).Error(), "502")
	assert.Contains(t, (&SinkError{Detail: "connection refused"}).Error(), "unreachable")
}
