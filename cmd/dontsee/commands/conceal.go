package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mecodix/dontsee/internal/logger"
	"github.com/mecodix/dontsee/pkg/imaging"
	"github.com/mecodix/dontsee/pkg/stego"
	"github.com/mecodix/dontsee/pkg/worker"
)

var (
	concealInput   string
	concealOutput  string
	concealMessage string
	concealFile    string
	concealPass    string
	concealAsk     bool
)

var concealCmd = &cobra.Command{
	Use:   "conceal",
	Short: "Embed a message in a carrier image",
	Long: `Conceal encrypts a message and embeds it in the least-significant bits of
the carrier image. The output is always PNG, regardless of input format.

With --password (or --ask-password) the carrier is marked locked and the
message cannot be recovered without the password. Without one the carrier
is marked open: anyone can reveal it, but tampering is still detected.

Examples:
  # Embed a message without a password
  dontsee conceal -i photo.png -o carrier.png -m "meet at noon"

  # Embed a file's contents, prompting for a password
  dontsee conceal -i photo.jpg -o carrier.png -f note.txt --ask-password`,
	RunE: runConceal,
}

func init() {
	concealCmd.Flags().StringVarP(&concealInput, "input", "i", "", "carrier image (PNG or JPEG)")
	concealCmd.Flags().StringVarP(&concealOutput, "output", "o", "", "output PNG path")
	concealCmd.Flags().StringVarP(&concealMessage, "message", "m", "", "message text to embed")
	concealCmd.Flags().StringVarP(&concealFile, "file", "f", "", "read message from file (- for stdin)")
	concealCmd.Flags().StringVarP(&concealPass, "password", "p", "", "password protecting the message")
	concealCmd.Flags().BoolVar(&concealAsk, "ask-password", false, "prompt for the password interactively")
	_ = concealCmd.MarkFlagRequired("input")
	_ = concealCmd.MarkFlagRequired("output")
}

func runConceal(cmd *cobra.Command, args []string) error {
	message, err := readMessage(concealMessage, concealFile)
	if err != nil {
		return err
	}
	password, err := resolvePassword(concealPass, concealAsk, true)
	if err != nil {
		return err
	}

	pix, width, height, err := imaging.LoadCarrier(concealInput)
	if err != nil {
		return err
	}

	capacity := stego.MaxPayloadBytes(width, height)
	logger.Debug("carrier loaded",
		"path", concealInput, "width", width, "height", height, "capacity_bytes", capacity)
	if len(message) > capacity {
		return fmt.Errorf("message of %d bytes exceeds carrier capacity of %d bytes", len(message), capacity)
	}

	ctx, cancel := signalContext()
	defer cancel()
	w := startWorker(ctx)

	resp, err := w.Do(ctx, worker.Request{
		Op:        worker.OpEncode,
		Pixels:    pix,
		Width:     width,
		Height:    height,
		Plaintext: message,
		Password:  password,
	}, func(percent int) {
		logger.Debug("embedding", "percent", percent)
	})
	if err != nil {
		return err
	}

	switch res := resp.(type) {
	case worker.EncodeResult:
		if err := imaging.SavePNG(concealOutput, res.Pixels, width, height); err != nil {
			return err
		}
	case worker.ErrorResult:
		return workerFailure(res)
	}

	logger.Info("message concealed",
		"output", concealOutput, "bytes", len(message), "locked", password != "")
	return nil
}
