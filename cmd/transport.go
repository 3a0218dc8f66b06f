package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/photonmc/photonmc/format"
	"github.com/photonmc/photonmc/transport"
	"github.com/photonmc/photonmc/transport/trace"
)

var transportCmd = &cobra.Command{
	Use:   "transport",
	Short: "Run the photon transport kernel",
}

var (
	deckPath     string
	outPath      string
	totalMove    int
	minStep      float64
	lmax         float64
	workers      int
	accumModeArg string
	seed         int64
	traceLevel   string
)

var transportRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Load a deck, run the transport kernel, and write the fluence dump",
	Run: func(cmd *cobra.Command, args []string) {
		deckFile, err := os.Open(deckPath)
		if err != nil {
			logrus.Fatalf("opening deck: %v", err)
		}
		defer deckFile.Close()

		deck, err := format.LoadDeck(deckFile)
		if err != nil {
			logrus.Fatalf("loading deck: %v", err)
		}

		if !trace.IsValidLevel(traceLevel) {
			logrus.Fatalf("invalid trace level: %s", traceLevel)
		}

		accumMode, err := parseAccumMode(accumModeArg)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		materials := deck.MaterialTable()
		medium, err := transport.NewMediumGrid(deck.Grid.Nx, deck.Grid.Ny, deck.Grid.Nz, materials)
		if err != nil {
			logrus.Fatalf("building medium grid: %v", err)
		}

		p0, c0 := deck.Source.Vec3s()
		cfg := transport.Config{
			NumPhotons: deck.NumPhotons,
			TotalMove:  totalMove,
			MinStep:    minStep,
			Lmax:       lmax,
			Source:     p0,
			SourceDir:  c0,
			MaxWorkers: workers,
			AccumMode:  accumMode,
			Seed:       seed,
		}

		kernel, err := transport.NewKernel(cfg, medium)
		if err != nil {
			logrus.Fatalf("building kernel: %v", err)
		}
		kernel.WithTrace(trace.NewPhotonTrace(trace.Config{Level: trace.Level(traceLevel)}))

		logrus.Infof("transport: loaded deck %s, grid %dx%dx%d, %d photons", deckPath, deck.Grid.Nx, deck.Grid.Ny, deck.Grid.Nz, deck.NumPhotons)

		accum, stats, err := kernel.Run()
		if err != nil {
			logrus.Fatalf("transport run failed: %v", err)
		}

		outFile, err := os.Create(outPath)
		if err != nil {
			logrus.Fatalf("creating output file: %v", err)
		}
		defer outFile.Close()

		if err := format.WriteFluenceDump(outFile, accum); err != nil {
			logrus.Fatalf("writing fluence dump: %v", err)
		}

		stats.Print()
		logrus.Info("transport run complete.")
	},
}

func parseAccumMode(s string) (transport.AccumMode, error) {
	switch s {
	case "atomic", "":
		return transport.AccumAtomic, nil
	case "shadow":
		return transport.AccumShadow, nil
	default:
		return 0, fmt.Errorf("unknown --accum value %q (want atomic or shadow)", s)
	}
}

func init() {
	transportRunCmd.Flags().StringVar(&deckPath, "deck", "", "Path to the YAML input deck (required)")
	transportRunCmd.Flags().StringVar(&outPath, "out", "", "Path to write the fluence dump (required)")
	transportRunCmd.Flags().IntVar(&totalMove, "totalmove", 1000, "Max micro-steps per photon before giving up")
	transportRunCmd.Flags().Float64Var(&minStep, "minstep", 0.1, "Voxel traversal step size")
	transportRunCmd.Flags().Float64Var(&lmax, "lmax", 1e4, "Residual free-flight cap that triggers relaunch")
	transportRunCmd.Flags().IntVar(&workers, "workers", transport.DefaultMaxWorkers, "Worker pool size")
	transportRunCmd.Flags().StringVar(&accumModeArg, "accum", "atomic", "Fluence accumulation strategy (atomic, shadow)")
	transportRunCmd.Flags().Int64Var(&seed, "seed", 1, "Master RNG seed")
	transportRunCmd.Flags().StringVar(&traceLevel, "trace", "none", "Photon-path trace level (none, events)")

	_ = transportRunCmd.MarkFlagRequired("deck")
	_ = transportRunCmd.MarkFlagRequired("out")
}
