// Package model contains the archival data format for timing samples.
package model

// Record is the struct that is serialized as JSON to disk as the archival
// record of one HTTP timing sample.
//
// All timing fields are cumulative offsets, in seconds, from the start of
// the request. Since each phase completes after the previous one, the values
// are non-decreasing in field order. A phase that never happened (e.g. the
// TLS handshake on a cleartext URL, or anything past the point of a
// transport failure) is left at zero.
type Record struct {
	// URL is the final effective URL, after following redirects.
	URL string `json:"url"`
	// DNSLookupTime is the offset at which name resolution completed.
	DNSLookupTime float64 `json:"dns_lookup_time"`
	// TCPConnectTime is the offset at which the TCP connection was
	// established.
	TCPConnectTime float64 `json:"tcp_connect_time"`
	// TLSHandshakeTime is the offset at which the TLS handshake
	// completed, or zero if the connection was cleartext.
	TLSHandshakeTime float64 `json:"tls_handshake_time"`
	// TimeToFirstByte is the offset at which the first response byte
	// was received.
	TimeToFirstByte float64 `json:"time_to_first_byte"`
	// TotalTime is the offset at which the response body was fully read.
	TotalTime float64 `json:"total_time"`
	// Redirects is the number of redirects that were followed.
	Redirects int `json:"redirects"`
	// SizeDownloaded is the size of the (final) response body in bytes.
	SizeDownloaded int64 `json:"size_downloaded"`
}
