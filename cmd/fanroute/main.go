// fanroute traces the network path to the target host and writes the
// per-hop router addresses, one per line, to the traceroute output
// directory under the run label given as the first argument.
//
// TCP-mode probing needs raw socket access, so this is typically run with
// elevated privileges.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/exec"
	"path"

	"github.com/charmbracelet/log"
	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/rtx"

	"github.com/fanpath-project/fanpath/internal/persistence"
	"github.com/fanpath-project/fanpath/internal/tracer"
	"github.com/fanpath-project/fanpath/pkg/route/spec"
)

var (
	flagHost = flag.String("host", spec.TargetHost,
		"Host to trace the path to")
	flagOutDir = flag.String("outdir", spec.OutputDir,
		"Directory to write traceroute records to (must exist)")
)

func main() {
	flag.Parse()
	rtx.Must(flagx.ArgsFromEnv(flag.CommandLine), "failed to parse flags")
	log.SetReportTimestamp(true)

	// The label names the output file and nothing more. It is not
	// validated; an empty label just makes for an odd filename.
	label := flag.Arg(0)

	log.Info("Tracing path", "host", *flagHost, "label", label)
	output, err := tracer.Run(context.Background(), *flagHost)
	if err != nil {
		log.Error("Traceroute failed", "host", *flagHost, "error", err)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}

	hops := tracer.ExtractHops(output)
	df, err := persistence.WriteLines(
		path.Join(*flagOutDir, tracer.RecordName(label)), hops)
	rtx.Must(err, "failed to write traceroute record")

	log.Info("Traceroute record written", "path", df.Path, "hops", len(hops))
}
