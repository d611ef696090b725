package sampler_test

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/fanpath-project/fanpath/internal/sampler"
)

func TestSampler_Sample(t *testing.T) {
	body := strings.Repeat("x", 4096)
	server := httptest.NewTLSServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))
	defer server.Close()

	s := &sampler.Sampler{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	record, err := s.Sample(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	if record.URL != server.URL {
		t.Errorf("unexpected URL: %s (want %s)", record.URL, server.URL)
	}
	if record.SizeDownloaded != int64(len(body)) {
		t.Errorf("unexpected body size: %d (want %d)",
			record.SizeDownloaded, len(body))
	}
	if record.Redirects != 0 {
		t.Errorf("unexpected redirect count: %d", record.Redirects)
	}

	// Timings are cumulative offsets from request start, so they must be
	// non-decreasing in phase order.
	phases := []struct {
		name  string
		value float64
	}{
		{"dns_lookup_time", record.DNSLookupTime},
		{"tcp_connect_time", record.TCPConnectTime},
		{"tls_handshake_time", record.TLSHandshakeTime},
		{"time_to_first_byte", record.TimeToFirstByte},
		{"total_time", record.TotalTime},
	}
	// httptest servers resolve to a literal IP, so the DNS phase may be
	// zero; every later phase must be positive.
	for _, p := range phases[1:] {
		if p.value <= 0 {
			t.Errorf("%s is not positive: %f", p.name, p.value)
		}
	}
	for i := 1; i < len(phases); i++ {
		if phases[i].value < phases[i-1].value {
			t.Errorf("%s (%f) < %s (%f): phases must be non-decreasing",
				phases[i].name, phases[i].value,
				phases[i-1].name, phases[i-1].value)
		}
	}
}

func TestSampler_SampleRedirects(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+"/hop", http.StatusFound)
	})
	mux.HandleFunc("/hop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+"/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("done"))
	})

	record, err := sampler.New().Sample(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if record.Redirects != 2 {
		t.Errorf("unexpected redirect count: %d (want 2)", record.Redirects)
	}
	if record.URL != server.URL+"/final" {
		t.Errorf("URL is not the final effective URL: %s", record.URL)
	}
	if record.SizeDownloaded != int64(len("done")) {
		t.Errorf("unexpected body size: %d", record.SizeDownloaded)
	}
}

func TestSampler_SampleHTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "not here", http.StatusNotFound)
		}))
	defer server.Close()

	// A completed request is a valid sample regardless of status code.
	record, err := sampler.New().Sample(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("sample failed on HTTP error status: %v", err)
	}
	if record.TotalTime <= 0 {
		t.Errorf("total_time is not positive: %f", record.TotalTime)
	}
}

func TestSampler_SampleTransportFailure(t *testing.T) {
	// A closed server gives a connection error. The record must still
	// come back, with unreached phases at zero.
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {}))
	target := server.URL
	server.Close()

	record, err := sampler.New().Sample(context.Background(), target)
	if err == nil {
		t.Fatal("expected a transport error, got nil")
	}
	if record == nil {
		t.Fatal("record must be returned even on failure")
	}
	if record.URL != target {
		t.Errorf("unexpected URL on failure: %s", record.URL)
	}
	if record.TimeToFirstByte != 0 || record.SizeDownloaded != 0 {
		t.Errorf("unreached phases must be zero: ttfb=%f size=%d",
			record.TimeToFirstByte, record.SizeDownloaded)
	}
	if record.TotalTime <= 0 {
		t.Errorf("total_time must still be recorded: %f", record.TotalTime)
	}
}

func TestRecordName(t *testing.T) {
	now := time.Now()
	name := sampler.RecordName(now)

	re := regexp.MustCompile(`^[0-9]+_perf\.json$`)
	if !re.MatchString(name) {
		t.Errorf("record name %q does not match %s", name, re)
	}
	ts, err := strconv.ParseInt(strings.TrimSuffix(name, "_perf.json"), 10, 64)
	if err != nil {
		t.Fatalf("cannot parse timestamp prefix: %v", err)
	}
	if ts != now.Unix() {
		t.Errorf("timestamp prefix %d does not match %d", ts, now.Unix())
	}
}
