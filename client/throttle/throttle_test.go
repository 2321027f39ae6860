package throttle

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewRoundTripper_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		rps    int
		burst  int
		expErr error
	}{
		{name: "zero rps", rps: 0, burst: 10, expErr: ErrMustNotBeZero},
		{name: "negative rps", rps: -5, burst: 10, expErr: ErrMustNotBeZero},
		{name: "zero burst", rps: 10, burst: 0, expErr: ErrMustNotBeZero},
		{name: "negative burst", rps: 10, burst: -1, expErr: ErrMustNotBeZero},
		{name: "valid", rps: 10, burst: 20},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rt, err := NewRoundTripper(tc.rps, tc.burst, nil, http.DefaultTransport)

			if tc.expErr != nil {
				if !errors.Is(err, tc.expErr) {
					t.Errorf("exp err %v; got: %v", tc.expErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("exp nil err, got: %v", err)
			}
			if rt == nil {
				t.Error("exp non-nil RoundTripper")
			}
		})
	}
}

func solrServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"responseHeader":{"status":0,"QTime":1},"status":"OK"}`))
	}))
	t.Cleanup(ts.Close)

	return ts
}

func TestRoundTrip_Behavior(t *testing.T) {
	testCases := []struct {
		name        string
		rps         int
		burst       int
		requests    int
		reqTimeout  time.Duration
		expFailures int
		minDuration time.Duration
		maxDuration time.Duration
	}{
		{
			name:        "within burst",
			rps:         5,
			burst:       5,
			requests:    5,
			maxDuration: 200 * time.Millisecond,
		},
		{
			name:        "beyond burst waits",
			rps:         10,
			burst:       4,
			requests:    7,
			reqTimeout:  time.Second,
			minDuration: 250 * time.Millisecond,
		},
		{
			name:        "beyond burst times out",
			rps:         5,
			burst:       2,
			requests:    5,
			reqTimeout:  50 * time.Millisecond,
			expFailures: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int32
			ts := solrServer(t, &calls)

			rt, err := NewRoundTripper(tc.rps, tc.burst, nil, http.DefaultTransport)
			if err != nil {
				t.Fatal(err)
			}
			hc := &http.Client{Transport: rt}

			var wg sync.WaitGroup
			errs := make([]error, tc.requests)
			start := time.Now()

			for i := range tc.requests {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()

					ctx := context.Background()
					if tc.reqTimeout > 0 {
						var cancel context.CancelFunc
						ctx, cancel = context.WithTimeout(ctx, tc.reqTimeout)
						defer cancel()
					}

					req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/solr/core/admin/ping", nil)
					if err != nil {
						errs[idx] = err
						return
					}

					resp, err := hc.Do(req)
					if err != nil {
						errs[idx] = err
						return
					}
					resp.Body.Close()
				}(i)
			}
			wg.Wait()
			duration := time.Since(start)

			var failures int
			for _, err := range errs {
				if err == nil {
					continue
				}
				failures++
				if !errors.Is(err, ErrWaitingFailed) {
					t.Errorf("exp ErrWaitingFailed, got: %v", err)
				}
			}

			if failures != tc.expFailures {
				t.Errorf("exp %d failed requests; got %d", tc.expFailures, failures)
			}
			if got := atomic.LoadInt32(&calls); int(got) != tc.requests-failures {
				t.Errorf("exp %d server calls; got %d", tc.requests-failures, got)
			}
			if tc.minDuration > 0 && duration < tc.minDuration {
				t.Errorf("exp throttled duration >= %v; got %v", tc.minDuration, duration)
			}
			if tc.maxDuration > 0 && duration > tc.maxDuration {
				t.Errorf("exp duration <= %v; got %v", tc.maxDuration, duration)
			}
		})
	}
}

func TestRoundTrip_CancelledContext(t *testing.T) {
	var calls int32
	ts := solrServer(t, &calls)

	rt, err := NewRoundTripper(10, 1, nil, http.DefaultTransport)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL, nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = rt.RoundTrip(req)
	if !errors.Is(err, ErrContextEnded) {
		t.Errorf("exp ErrContextEnded, got: %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("exp context.Canceled, got: %v", err)
	}
	if calls != 0 {
		t.Errorf("exp no server calls, got %d", calls)
	}
}

func TestRoundTrip_LogsExhaustion(t *testing.T) {
	var calls int32
	ts := solrServer(t, &calls)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	rt, err := NewRoundTripper(5, 1, func() *slog.Logger { return logger }, nil)
	if err != nil {
		t.Fatal(err)
	}

	for range 2 {
		req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, ts.URL+"/solr/core/select", nil)
		if err != nil {
			t.Fatal(err)
		}
		resp, err := rt.RoundTrip(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}

	out := buf.String()
	for _, want := range []string{"solr throttle tokens exhausted", "solr throttle wait complete", "path=/solr/core/select"} {
		if !strings.Contains(out, want) {
			t.Errorf("exp log output to contain %q, got:\n%s", want, out)
		}
	}
}
