// Package tracer invokes the system traceroute in TCP mode and extracts the
// per-hop router addresses from its output.
//
// Path probing is left to the external tool: TCP-mode traceroute needs raw
// socket privileges and decades of quirk handling that there is no value in
// reimplementing here. This package only runs it and parses what it prints.
package tracer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/fanpath-project/fanpath/pkg/route/spec"
)

// ipv4Pattern matches a whole token shaped like a dotted quad: four 1-3
// digit decimal groups separated by dots.
var ipv4Pattern = regexp.MustCompile(`^[0-9]{1,3}(\.[0-9]{1,3}){3}$`)

// Run executes a TCP-mode traceroute to host with the configured inter-probe
// delay and numeric output, and returns its raw standard output. The tool's
// standard error passes through to ours, so privilege failures and other
// diagnostics reach the operator verbatim.
//
// Raw socket access is required; without it traceroute exits non-zero and
// Run returns the corresponding *exec.ExitError.
func Run(ctx context.Context, host string) (string, error) {
	delay := strconv.FormatFloat(spec.ProbeDelay.Seconds(), 'f', -1, 64)
	cmd := exec.CommandContext(ctx, "traceroute", "-T", "-n", "-z", delay, host)
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("traceroute %s: %w", host, err)
	}
	return string(out), nil
}

// ExtractHops parses raw traceroute output into one value per hop.
//
// The first line is the column header and is discarded. For every remaining
// line the whitespace-separated tokens are scanned left to right and the
// first dotted-quad token is taken; a hop whose probes all went unanswered
// ("* * *") yields an empty string, preserving the hop index of later lines.
func ExtractHops(output string) []string {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) <= 1 {
		return nil
	}
	hops := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		hops = append(hops, firstIPv4(line))
	}
	return hops
}

func firstIPv4(line string) string {
	for _, token := range strings.Fields(line) {
		if ipv4Pattern.MatchString(token) {
			return token
		}
	}
	return ""
}

// RecordName returns the filename for the traceroute record of the given
// run label. Labels are not validated and repeated labels overwrite.
func RecordName(label string) string {
	return spec.FilePrefix + label + ".txt"
}
