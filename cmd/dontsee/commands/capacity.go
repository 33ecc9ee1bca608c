package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mecodix/dontsee/internal/cli/output"
	"github.com/mecodix/dontsee/pkg/imaging"
	"github.com/mecodix/dontsee/pkg/stego"
)

var (
	capacityInput  string
	capacityWidth  int
	capacityHeight int
)

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Predict how many bytes an image can hold",
	Long: `Capacity computes the maximum message size from image dimensions alone,
without scanning pixels: three usable bits per pixel minus the 272-bit
header and the 128-bit authentication tag.

Examples:
  dontsee capacity -i photo.png
  dontsee capacity --width 1920 --height 1080`,
	RunE: runCapacity,
}

func init() {
	capacityCmd.Flags().StringVarP(&capacityInput, "input", "i", "", "image to measure")
	capacityCmd.Flags().IntVar(&capacityWidth, "width", 0, "carrier width in pixels")
	capacityCmd.Flags().IntVar(&capacityHeight, "height", 0, "carrier height in pixels")
}

func runCapacity(cmd *cobra.Command, args []string) error {
	width, height := capacityWidth, capacityHeight
	if capacityInput != "" {
		var err error
		_, width, height, err = imaging.LoadCarrier(capacityInput)
		if err != nil {
			return err
		}
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("give either --input or both --width and --height")
	}

	output.Table(cmd.OutOrStdout(),
		[]string{"Width", "Height", "Channels", "Capacity (bytes)"},
		[][]string{{
			fmt.Sprintf("%d", width),
			fmt.Sprintf("%d", height),
			fmt.Sprintf("%d", stego.CapacityChannels(width, height)),
			fmt.Sprintf("%d", stego.MaxPayloadBytes(width, height)),
		}})
	return nil
}
