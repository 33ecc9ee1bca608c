package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mecodix/dontsee/pkg/imaging"
	"github.com/mecodix/dontsee/pkg/worker"
)

var (
	revealInput  string
	revealOutput string
	revealPass   string
	revealAsk    bool
)

var revealCmd = &cobra.Command{
	Use:   "reveal",
	Short: "Extract a concealed message from a carrier image",
	Long: `Reveal reads the carrier's header, collects the scattered ciphertext and
decrypts it. Locked carriers need the password they were concealed with; a
wrong password and a damaged carrier are indistinguishable by design.

Examples:
  dontsee reveal -i carrier.png
  dontsee reveal -i carrier.png --ask-password -o message.txt`,
	RunE: runReveal,
}

func init() {
	revealCmd.Flags().StringVarP(&revealInput, "input", "i", "", "carrier image")
	revealCmd.Flags().StringVarP(&revealOutput, "output", "o", "", "write message to file instead of stdout")
	revealCmd.Flags().StringVarP(&revealPass, "password", "p", "", "password the message was concealed with")
	revealCmd.Flags().BoolVar(&revealAsk, "ask-password", false, "prompt for the password interactively")
	_ = revealCmd.MarkFlagRequired("input")
}

func runReveal(cmd *cobra.Command, args []string) error {
	password, err := resolvePassword(revealPass, revealAsk, false)
	if err != nil {
		return err
	}

	pix, width, height, err := imaging.LoadCarrier(revealInput)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	w := startWorker(ctx)

	resp, err := w.Do(ctx, worker.Request{
		Op:       worker.OpDecode,
		Pixels:   pix,
		Width:    width,
		Height:   height,
		Password: password,
	}, nil)
	if err != nil {
		return err
	}

	switch res := resp.(type) {
	case worker.DecodeResult:
		if revealOutput != "" {
			return os.WriteFile(revealOutput, []byte(res.Text), 0o600)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	case worker.ErrorResult:
		return workerFailure(res)
	}
	return nil
}
