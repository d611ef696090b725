// fangeo resolves the router addresses of a previously recorded traceroute
// run to geographic coordinates and writes them as a CSV consumed by the
// trajectory map plots.
package main

import (
	"context"
	"flag"
	"path"

	"github.com/charmbracelet/log"
	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/rtx"

	"github.com/fanpath-project/fanpath/internal/geoloc"
	"github.com/fanpath-project/fanpath/internal/tracer"
	"github.com/fanpath-project/fanpath/pkg/route/spec"
)

var (
	flagTrcrtDir = flag.String("trcrtdir", spec.OutputDir,
		"Directory holding traceroute records")
	flagCSVDir = flag.String("csvdir", spec.CSVDir,
		"Directory to write geolocation CSVs to (created if missing)")
)

func main() {
	flag.Parse()
	rtx.Must(flagx.ArgsFromEnv(flag.CommandLine), "failed to parse flags")
	log.SetReportTimestamp(true)

	label := flag.Arg(0)
	recordPath := path.Join(*flagTrcrtDir, tracer.RecordName(label))

	ips, err := geoloc.ReadHops(recordPath)
	rtx.Must(err, "cannot read traceroute record")
	log.Info("Resolving hop locations", "record", recordPath, "ips", len(ips))

	locations, err := geoloc.NewClient().LocateAll(context.Background(), ips)
	rtx.Must(err, "hop location lookup failed")

	csvPath := path.Join(*flagCSVDir, spec.CSVPrefix+label+".csv")
	rtx.Must(geoloc.WriteCSV(csvPath, locations), "cannot write geolocation CSV")

	log.Info("Geolocation CSV written", "path", csvPath, "rows", len(locations))
}
