// Package spec contains constants for the HTTP timing sampler.
package spec

const (
	// TargetURL is the page whose load time we sample.
	TargetURL = "https://www.fandom.com/"

	// DataDir is the directory where timing records are saved. It must
	// exist before the sampler runs.
	DataDir = "perf-data"

	// FileSuffix is appended to the unix timestamp to form the record
	// filename, e.g. 1735689600_perf.json.
	FileSuffix = "_perf.json"

	// MaxRedirects is the maximum number of redirects followed during a
	// sample before the request is aborted.
	MaxRedirects = 10
)
