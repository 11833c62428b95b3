package reset

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/smartboard/pkg/configstore"
	"tableflip.dev/smartboard/pkg/store"
)

// Reset restores the default layout. Without Yes it asks first.
type Reset struct {
	Persistence store.Persistence
	Yes         bool
	// Confirm asks the user. It defaults to a promptui confirmation.
	Confirm func(label string) (bool, error)
	Out     io.Writer
}

func (r *Reset) Do(ctx context.Context) error {
	if r.Persistence == nil {
		return errors.New("can not reset, no persistence")
	}
	out := r.Out
	if out == nil {
		out = color.Output
	}

	if !r.Yes {
		confirm := r.Confirm
		if confirm == nil {
			confirm = promptConfirm
		}
		ok, err := confirm("Reset every widget to its default layout")
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(out, color.New(color.Faint).Sprint("Nothing changed."))
			return nil
		}
	}

	s := configstore.Open(r.Persistence)
	defer s.Dispose()
	if err := s.Reset(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, color.GreenString("Layout reset to defaults."))
	return nil
}

func promptConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
