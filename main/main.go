package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/xtal"
	"github.com/phil-mansfield/xtal/brillouin"
	"github.com/phil-mansfield/xtal/centering"
	"github.com/phil-mansfield/xtal/diffract"
	"github.com/phil-mansfield/xtal/io"
	"github.com/phil-mansfield/xtal/lattice"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var (
		planStr, peaksStr string
		exampleConfig     string
	)
	vars := map[string]*string{
		"Plan":          &planStr,
		"Peaks":         &peaksStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&planStr, "Plan", "",
		"Configuration file for [Plan] mode, which computes the reciprocal "+
			"lattice, Brillouin zone and theta cuts of a crystal.",
	)
	flag.StringVar(
		&peaksStr, "Peaks", "",
		"Configuration file for [Peaks] mode, which tabulates the Bragg "+
			"angles of a list of reflections.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. Accepted arguments are 'Plan' and 'Peaks'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Plan":
		con, err := io.ReadPlanConfig(planStr)
		if err != nil {
			log.Fatal(err.Error())
		}

		fg := setupFiles(&con.SharedConfig)
		defer fg.Close()
		planMain(con)

	case "Peaks":
		con, err := io.ReadPeaksConfig(peaksStr)
		if err != nil {
			log.Fatal(err.Error())
		}

		fg := setupFiles(&con.SharedConfig)
		defer fg.Close()
		peaksMain(con)

	case "ExampleConfig":
		switch exampleConfig {
		case "Plan":
			fmt.Println(io.ExamplePlanFile)
		case "Peaks":
			fmt.Println(io.ExamplePeaksFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'Plan' and 'Peaks'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but xtal only accepts one "+
				"flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// setupFiles redirects the log and starts the profiler if the config asks
// for them.
func setupFiles(con *io.SharedConfig) *FileGroup {
	fg := &FileGroup{}
	var err error

	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		if err = pprof.StartCPUProfile(fg.prof); err != nil {
			log.Fatal(err.Error())
		}
	}

	return fg
}

// output returns the file that summaries should be written to and a
// function which closes it.
func output(con *io.SharedConfig) (*os.File, func()) {
	if !con.ValidOutput() {
		return os.Stdout, func() {}
	}

	f, err := os.Create(con.Output)
	if err != nil {
		log.Fatal(err.Error())
	}
	return f, func() {
		if err := f.Close(); err != nil {
			log.Fatal(err.Error())
		}
	}
}

// planMain runs xtal.Plan on a [Plan] config and writes every requested
// output file.
func planMain(con *io.PlanConfig) {
	req, err := con.Request()
	if err != nil {
		log.Fatal(err.Error())
	}

	log.Printf(
		"Planning a = %g, b = %g, c = %g, alpha = %g, beta = %g, gamma = %g "+
			"with %s radiation", req.A, req.B, req.C,
		req.Alpha, req.Beta, req.Gamma, req.Radiation,
	)

	res, err := xtal.Plan(req)
	if err != nil {
		log.Fatal(err.Error())
	}
	log.Printf(
		"Built %s Brillouin zone with %d vertices and %d edges",
		res.Centering, len(res.Vertices), len(res.Edges),
	)

	f, closeFile := output(&con.SharedConfig)
	if err = io.WriteSummary(f, &req, res); err != nil {
		log.Fatal(err.Error())
	}
	closeFile()

	if con.ValidThetaCutScript() {
		sf, err := os.Create(con.ThetaCutScript)
		if err != nil {
			log.Fatal(err.Error())
		}
		if err = io.WriteThetaCutScript(sf, res.ThetaCut); err != nil {
			log.Fatal(err.Error())
		}
		if err = sf.Close(); err != nil {
			log.Fatal(err.Error())
		}
		log.Printf("Wrote theta cut script to %s", con.ThetaCutScript)
	}

	if con.ValidThetaCutPlot() {
		io.PlotThetaCut(res.ThetaCut, con.ThetaCutPlot)
		plt.Execute()
		log.Printf("Wrote theta cut plot to %s", con.ThetaCutPlot)
	}

	if con.ValidZoneFile() {
		zf, err := os.Create(con.ZoneFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		if err = io.WriteZone(zf, &req, res); err != nil {
			log.Fatal(err.Error())
		}
		if err = zf.Close(); err != nil {
			log.Fatal(err.Error())
		}
		log.Printf("Wrote zone to %s", con.ZoneFile)
	}

	if con.ValidZoneSTL() {
		writeSTL(con, req)
	}
}

// writeSTL rebuilds the zone of req as a polyhedron and writes its surface.
func writeSTL(con *io.PlanConfig, req xtal.Request) {
	l, err := lattice.New(req.A, req.B, req.C, req.Alpha, req.Beta, req.Gamma)
	if err != nil {
		log.Fatal(err.Error())
	}

	sym := centering.P
	if req.SpaceGroup != 0 {
		sym, err = centering.For(req.SpaceGroup)
	} else if req.Centering != "" {
		sym, err = centering.ParseSymbol(string(req.Centering))
	}
	if err != nil {
		log.Fatal(err.Error())
	}

	z, err := brillouin.FromLattice(l, sym, brillouin.Shell(con.Shell))
	if err != nil {
		log.Fatal(err.Error())
	}

	if err = io.WriteZoneSTL(con.ZoneSTL, z.Triangles()); err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Wrote %d triangles to %s", len(z.Triangles()), con.ZoneSTL)
}

// peaksMain tabulates Bragg angles for a [Peaks] config.
func peaksMain(con *io.PeaksConfig) {
	l, err := lattice.New(con.A, con.B, con.C, con.Alpha, con.Beta, con.Gamma)
	if err != nil {
		log.Fatal(err.Error())
	}

	lambda, err := con.Radiation().Lambda()
	if err != nil {
		log.Fatal(err.Error())
	}

	hkls := diffract.AluminumReflections
	if con.ValidReflections() {
		hkls, err = io.ReadReflections(con.Reflections)
		if err != nil {
			log.Fatal(err.Error())
		}
	}
	log.Printf("Tabulating %d reflections at %.3f A", len(hkls), lambda)

	peaks, err := diffract.PeakTable(l, lambda, hkls)
	if err != nil {
		log.Fatal(err.Error())
	}

	f, closeFile := output(&con.SharedConfig)
	if err = io.WritePeaks(f, lambda, peaks); err != nil {
		log.Fatal(err.Error())
	}
	closeFile()
}
