package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner runs load under a spinner titled title. Off a terminal load
// runs directly. The load function receives a context that is cancelled if
// the spinner is interrupted.
func RunWithSpinner(ctx context.Context, title string, load func(context.Context) error) error {
	if !IsTTY() {
		return load(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var loadErr error
	err := spinner.New().
		Title(title).
		Action(func() {
			loadErr = load(ctx)
		}).
		Run()
	if err != nil {
		return fmt.Errorf("running spinner: %w", err)
	}
	return loadErr
}
