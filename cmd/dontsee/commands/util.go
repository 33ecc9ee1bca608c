package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mecodix/dontsee/internal/cli/prompt"
	"github.com/mecodix/dontsee/pkg/worker"
)

// signalContext returns a context canceled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// startWorker launches a codec worker tied to ctx.
func startWorker(ctx context.Context) *worker.Worker {
	w := worker.New(cfg.Worker.QueueDepth, nil)
	go w.Run(ctx)
	return w
}

// readMessage resolves the message to conceal from --message, --file or
// stdin, in that order of preference.
func readMessage(message, file string) (string, error) {
	switch {
	case message != "":
		return message, nil
	case file == "-":
		data, err := readAllStdin()
		return string(data), err
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read message file: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("no message given: use --message, --file, or --file -")
	}
}

func readAllStdin() ([]byte, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}

// resolvePassword returns the password from the flag, or prompts for it
// when --ask-password is set. confirm adds a second prompt, for conceal.
func resolvePassword(password string, ask, confirm bool) (string, error) {
	if !ask {
		return password, nil
	}
	if confirm {
		return prompt.PasswordWithConfirmation("Password", "Confirm password")
	}
	return prompt.Password("Password")
}

// workerFailure converts a protocol error response into a CLI error.
func workerFailure(res worker.ErrorResult) error {
	return fmt.Errorf("%s: %s", res.Kind, res.Message)
}
