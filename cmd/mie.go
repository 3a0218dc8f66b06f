package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/photonmc/photonmc/format"
	"github.com/photonmc/photonmc/mie"
)

var mieCmd = &cobra.Command{
	Use:   "mie",
	Short: "Precompute Mie scattering lookup tables",
}

var (
	mieX      float64
	mieSweep  string
	mieMReal  float64
	mieMImag  float64
	mieAngles int
	mieOut    string
	mieMode   string

	miePolyMeanR, miePolyCV, miePolyNMed float64
	mieLambda                            float64
	mieWMLc, mieWMD                      float64
)

var mieLutCmd = &cobra.Command{
	Use:   "lut",
	Short: "Compute a Mie (or polydisperse / Whittle-Matern) Mueller-matrix LUT and write it to disk",
	Run: func(cmd *cobra.Command, args []string) {
		mu := mie.UniformCosines(mieAngles)

		var tables []mie.MuellerTable
		switch mieMode {
		case "mie":
			xs, err := sizeParameters()
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			m := complex(mieMReal, mieMImag)
			for _, x := range xs {
				table, _, _, err := mie.Mie(x, m, mu)
				if err != nil {
					logrus.Fatalf("mie.Mie(x=%v): %v", x, err)
				}
				tables = append(tables, table)
			}
		case "poly":
			m := complex(mieMReal, mieMImag)
			table, _, _, err := mie.MiePoly(miePolyMeanR, miePolyCV, miePolyNMed, mieLambda, m, mu)
			if err != nil {
				logrus.Fatalf("mie.MiePoly: %v", err)
			}
			tables = []mie.MuellerTable{table}
		case "whittle":
			table, _, err := mie.WhittleMattern(mieWMLc, mieWMD, mieLambda, mu)
			if err != nil {
				logrus.Fatalf("mie.WhittleMattern: %v", err)
			}
			tables = []mie.MuellerTable{table}
		default:
			logrus.Fatalf("unknown --mode %s (want mie, poly, or whittle)", mieMode)
		}

		outFile, err := os.Create(mieOut)
		if err != nil {
			logrus.Fatalf("creating output file: %v", err)
		}
		defer outFile.Close()

		if err := format.WriteMieLUT(outFile, tables); err != nil {
			logrus.Fatalf("writing Mie LUT: %v", err)
		}

		logrus.Infof("mie: wrote %d table(s) of %d angles each to %s", len(tables), mieAngles, mieOut)
	},
}

// sizeParameters resolves the --x / --sweep flags into the list of size
// parameters to run through mie.Mie.
func sizeParameters() ([]float64, error) {
	if mieSweep != "" {
		data, err := os.ReadFile(mieSweep)
		if err != nil {
			return nil, err
		}
		var xs []float64
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			x, err := strconv.ParseFloat(line, 64)
			if err != nil {
				return nil, err
			}
			xs = append(xs, x)
		}
		return xs, nil
	}
	return []float64{mieX}, nil
}

func init() {
	mieLutCmd.Flags().Float64Var(&mieX, "x", 0, "Single Mie size parameter")
	mieLutCmd.Flags().StringVar(&mieSweep, "sweep", "", "Path to a newline-separated list of size parameters")
	mieLutCmd.Flags().Float64Var(&mieMReal, "m-real", 1.0, "Real part of the relative refractive index")
	mieLutCmd.Flags().Float64Var(&mieMImag, "m-imag", 0, "Imaginary part of the relative refractive index (<= 0)")
	mieLutCmd.Flags().IntVar(&mieAngles, "angles", 181, "Number of angular cosines to sample")
	mieLutCmd.Flags().StringVar(&mieOut, "out", "", "Path to write the LUT (required)")
	mieLutCmd.Flags().StringVar(&mieMode, "mode", "mie", "Computation mode: mie, poly, or whittle")

	mieLutCmd.Flags().Float64Var(&miePolyMeanR, "mean-r", 0.5, "poly mode: mean sphere radius")
	mieLutCmd.Flags().Float64Var(&miePolyCV, "cv", 0.05, "poly mode: size distribution coefficient of variation")
	mieLutCmd.Flags().Float64Var(&miePolyNMed, "n-med", 1.33, "poly mode: surrounding medium refractive index")
	mieLutCmd.Flags().Float64Var(&mieLambda, "lambda", 0.633, "poly/whittle mode: free-space wavelength")

	mieLutCmd.Flags().Float64Var(&mieWMLc, "lc", 1.0, "whittle mode: correlation length")
	mieLutCmd.Flags().Float64Var(&mieWMD, "fractal-d", 2.5, "whittle mode: fractal dimension")

	_ = mieLutCmd.MarkFlagRequired("out")
}
