// Package geoloc resolves traceroute hop addresses to geographic
// coordinates using the ipinfo.io API and writes them as CSV for the
// downstream trajectory plots.
package geoloc

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jellydator/ttlcache/v3"

	"github.com/fanpath-project/fanpath/pkg/version"
)

const (
	// DefaultBaseURL is the lookup service endpoint. One GET per IP; the
	// response is JSON and the "loc" field, when present, is
	// "latitude,longitude".
	DefaultBaseURL = "https://ipinfo.io"

	// cacheTTL bounds how long a lookup response is reused. Router
	// addresses do not move, so this mostly caps memory on long runs.
	cacheTTL = 30 * time.Minute
)

// Location is one resolved hop address.
type Location struct {
	IP        string
	Latitude  string
	Longitude string
}

// Client queries the lookup service, caching responses per IP so a path that
// crosses the same router twice hits the API once.
type Client struct {
	// BaseURL is the lookup service to query. Defaults to ipinfo.io.
	BaseURL string
	// HTTPClient is the client used for lookups. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	cache *ttlcache.Cache[string, string]
}

// NewClient returns a Client for the default lookup service.
func NewClient() *Client {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, string](cacheTTL),
	)
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
		cache:      cache,
	}
}

// ipinfoResponse is the subset of the lookup response we consume.
type ipinfoResponse struct {
	IP  string `json:"ip"`
	Loc string `json:"loc"`
}

// Lookup returns the "latitude,longitude" string for ip, or the empty string
// when the service has no location for it (private ranges, bogons).
func (c *Client) Lookup(ctx context.Context, ip string) (string, error) {
	if item := c.cache.Get(ip); item != nil {
		return item.Value(), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/"+ip, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "fangeo/"+version.Version)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("lookup of %s failed: %w", ip, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lookup of %s failed: %s", ip, resp.Status)
	}

	var data ipinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("cannot decode lookup response for %s: %w", ip, err)
	}
	c.cache.Set(ip, data.Loc, ttlcache.DefaultTTL)
	return data.Loc, nil
}

// LocateAll looks up every IP and returns the resolved locations in input
// order. IPs the service has no location for are logged and skipped; a
// transport failure aborts the run.
func (c *Client) LocateAll(ctx context.Context, ips []string) ([]Location, error) {
	locations := make([]Location, 0, len(ips))
	for _, ip := range ips {
		loc, err := c.Lookup(ctx, ip)
		if err != nil {
			return nil, err
		}
		lat, lon, ok := strings.Cut(loc, ",")
		if !ok {
			log.Warn("no location for hop, skipping", "ip", ip)
			continue
		}
		locations = append(locations, Location{
			IP:        ip,
			Latitude:  lat,
			Longitude: lon,
		})
	}
	return locations, nil
}

// ReadHops reads a traceroute record and returns its unique responding
// addresses in hop order. Blank hops are dropped and any '*' padding left by
// unanswered probes is trimmed.
func ReadHops(filepath string) ([]string, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var ips []string
	for _, line := range strings.Split(string(content), "\n") {
		ip := strings.Trim(strings.TrimSpace(line), "*")
		if ip == "" {
			continue
		}
		if _, ok := seen[ip]; ok {
			continue
		}
		seen[ip] = struct{}{}
		ips = append(ips, ip)
	}
	return ips, nil
}

// WriteCSV writes the locations to filepath with an ip,latitude,longitude
// header. The parent directory is created if missing.
func WriteCSV(filepath string, locations []Location) error {
	if err := os.MkdirAll(path.Dir(filepath), 0755); err != nil {
		return err
	}
	fp, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer fp.Close()

	w := csv.NewWriter(fp)
	if err := w.Write([]string{"ip", "latitude", "longitude"}); err != nil {
		return err
	}
	for _, loc := range locations {
		if err := w.Write([]string{loc.IP, loc.Latitude, loc.Longitude}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return fp.Close()
}
