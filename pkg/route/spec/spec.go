// Package spec contains constants for the traceroute hop extractor.
package spec

import "time"

const (
	// TargetHost is the fixed destination of every path trace.
	TargetHost = "fandom.com"

	// ProbeDelay is the fixed delay between consecutive probes. TCP-mode
	// traceroute with a generous inter-probe delay traverses firewalls
	// better and is gentler on intermediate routers.
	ProbeDelay = 500 * time.Millisecond

	// OutputDir is the directory where traceroute records are saved. It
	// must exist before the extractor runs.
	OutputDir = "assets/trcrt-out"

	// FilePrefix is prepended to the run label to form the record
	// filename, e.g. fanrt_24h.txt.
	FilePrefix = "fanrt_"

	// CSVDir is the directory where hop geolocation CSVs are saved.
	CSVDir = "assets/csv"

	// CSVPrefix is prepended to the run label to form the geolocation
	// CSV filename, e.g. loc_ipv4_24h.csv.
	CSVPrefix = "loc_ipv4_"
)
