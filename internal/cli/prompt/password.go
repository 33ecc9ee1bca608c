// Package prompt provides interactive terminal prompts for the CLI.
package prompt

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

// ErrPasswordMismatch indicates passwords don't match.
var ErrPasswordMismatch = errors.New("passwords do not match")

// ErrAborted indicates the user interrupted the prompt.
var ErrAborted = errors.New("prompt aborted")

// Password prompts for a password input with masking.
func Password(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Mask:  '*',
	}
	result, err := p.Run()
	return result, wrapError(err)
}

// PasswordWithConfirmation prompts for a password and a confirmation and
// rejects mismatches. Used before concealing, where a typo would lock the
// message away for good.
func PasswordWithConfirmation(label, confirmLabel string) (string, error) {
	password, err := Password(label)
	if err != nil {
		return "", err
	}
	confirm, err := Password(confirmLabel)
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", ErrPasswordMismatch
	}
	return password, nil
}

func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
		return ErrAborted
	}
	return fmt.Errorf("prompt: %w", err)
}
