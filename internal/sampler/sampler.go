// Package sampler performs a single HTTP GET and records a per-phase timing
// breakdown of the request.
package sampler

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"strconv"
	"time"

	"github.com/fanpath-project/fanpath/pkg/perf/model"
	"github.com/fanpath-project/fanpath/pkg/perf/spec"
	"github.com/fanpath-project/fanpath/pkg/version"
)

// Sampler samples the load time of a URL.
type Sampler struct {
	// Transport is the http.RoundTripper used for the request. If nil,
	// http.DefaultTransport is used. There is deliberately no timeout:
	// the sample measures whatever the network does, for as long as it
	// takes.
	Transport http.RoundTripper
}

// New creates a Sampler using the default transport.
func New() *Sampler {
	return &Sampler{}
}

// Sample GETs the target URL once and returns the timing record.
//
// The record is always returned, even on failure: phases that completed
// before a transport error keep their measured offsets and everything past
// the failure point is left at zero, so a failed sample serializes into the
// same template as a successful one. HTTP error statuses are not failures;
// the page responded and its timings are valid.
func (s *Sampler) Sample(ctx context.Context, target string) (*model.Record, error) {
	record := &model.Record{URL: target}
	start := time.Now()

	// Hooks re-fire on every connection in a redirect chain. Recording
	// elapsed-since-start and letting the last value win keeps every
	// field a cumulative offset, so the monotonic ordering of the record
	// holds across redirects.
	trace := &httptrace.ClientTrace{
		DNSDone: func(httptrace.DNSDoneInfo) {
			record.DNSLookupTime = time.Since(start).Seconds()
		},
		ConnectDone: func(network, addr string, err error) {
			record.TCPConnectTime = time.Since(start).Seconds()
		},
		TLSHandshakeDone: func(tls.ConnectionState, error) {
			record.TLSHandshakeTime = time.Since(start).Seconds()
		},
		GotFirstResponseByte: func() {
			record.TimeToFirstByte = time.Since(start).Seconds()
		},
	}

	req, err := http.NewRequestWithContext(
		httptrace.WithClientTrace(ctx, trace), http.MethodGet, target, nil)
	if err != nil {
		return record, fmt.Errorf("invalid target URL: %w", err)
	}
	req.Header.Set("User-Agent", "fanperf/"+version.Version)

	client := &http.Client{
		Transport: s.Transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= spec.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", spec.MaxRedirects)
			}
			record.Redirects = len(via)
			record.URL = req.URL.String()
			return nil
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		record.TotalTime = time.Since(start).Seconds()
		return record, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	record.URL = resp.Request.URL.String()

	n, err := io.Copy(io.Discard, resp.Body)
	record.SizeDownloaded = n
	record.TotalTime = time.Since(start).Seconds()
	if err != nil {
		return record, fmt.Errorf("reading response body: %w", err)
	}
	return record, nil
}

// RecordName returns the filename for a record written at the given time.
// Two runs within the same second collide and the later write wins; there is
// no de-duplication.
func RecordName(now time.Time) string {
	return strconv.FormatInt(now.Unix(), 10) + spec.FileSuffix
}
