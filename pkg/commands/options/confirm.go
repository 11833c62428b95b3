package options

import (
	"github.com/spf13/cobra"
)

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
}

func AddYesArg(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Do not ask for confirmation.")
}
