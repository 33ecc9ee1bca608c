package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mecodix/dontsee/internal/cli/output"
	"github.com/mecodix/dontsee/pkg/imaging"
	"github.com/mecodix/dontsee/pkg/stego"
	"github.com/mecodix/dontsee/pkg/worker"
)

var scanInput string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Check whether an image carries a concealed message",
	Long: `Scan reads the carrier's 16-bit signature and reports "locked", "open" or
"none". It never touches the payload and needs no password.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanInput, "input", "i", "", "image to scan")
	_ = scanCmd.MarkFlagRequired("input")
}

func runScan(cmd *cobra.Command, args []string) error {
	pix, width, height, err := imaging.LoadCarrier(scanInput)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	w := startWorker(ctx)

	resp, err := w.Do(ctx, worker.Request{
		Op: worker.OpScan, Pixels: pix, Width: width, Height: height,
	}, nil)
	if err != nil {
		return err
	}

	switch res := resp.(type) {
	case worker.ScanResult:
		output.KeyValues(cmd.OutOrStdout(), [][2]string{
			{"Signature", res.Signature.String()},
			{"Dimensions", fmt.Sprintf("%dx%d", width, height)},
			{"Capacity", fmt.Sprintf("%d bytes", stego.MaxPayloadBytes(width, height))},
		})
	case worker.ErrorResult:
		return workerFailure(res)
	}
	return nil
}
