// fanperf samples the load time of the target page once and writes the
// timing breakdown to the data directory as a JSON record named by the
// current unix timestamp.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/rtx"

	"github.com/fanpath-project/fanpath/internal/persistence"
	"github.com/fanpath-project/fanpath/internal/sampler"
	"github.com/fanpath-project/fanpath/pkg/perf/spec"
)

var (
	flagURL = flag.String("url", spec.TargetURL,
		"URL to sample")
	flagDataDir = flag.String("datadir", spec.DataDir,
		"Directory to write timing records to (must exist)")
)

func main() {
	flag.Parse()
	rtx.Must(flagx.ArgsFromEnv(flag.CommandLine), "failed to parse flags")
	log.SetReportTimestamp(true)

	runID := uuid.NewString()
	log.Info("Starting sample", "run", runID, "url", *flagURL)

	record, sampleErr := sampler.New().Sample(context.Background(), *flagURL)

	// The record is written even when the request failed at the
	// transport level: unreached phases hold zeros and the downstream
	// processing treats them as such.
	df, err := persistence.WriteJSONFile(*flagDataDir,
		sampler.RecordName(time.Now()), record)
	rtx.Must(err, "failed to write timing record")

	if sampleErr != nil {
		log.Error("Sample failed", "run", runID, "error", sampleErr)
		os.Exit(1)
	}
	log.Info("Sample complete", "run", runID, "path", df.Path,
		"total_time", record.TotalTime, "size", record.SizeDownloaded)
}
