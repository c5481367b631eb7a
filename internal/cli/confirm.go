package cli

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// confirmTagCreation guards --create-tag with a single huh confirmation
// prompt, mirroring internal/tui/add's use of huh for user confirmation,
// generalized from "add a changeset" to "about to mutate git tags, are you
// sure?". It is skipped outright when stdout is not a terminal (CI runs,
// piped output), matching the original implementation's non-interactive
// CI-first posture.
func confirmTagCreation(cmd *cobra.Command) (bool, error) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return true, nil
	}

	var confirmed bool
	err := huh.NewConfirm().
		Title("Create the computed tag(s)?").
		Affirmative("Yes, tag it").
		Negative("No, report only").
		Value(&confirmed).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}

	return confirmed, nil
}
