package options

import (
	"github.com/spf13/cobra"
)

// TransferOptions
type TransferOptions struct {
	Format string
	Out    string
}

func AddFormatArg(cmd *cobra.Command, o *TransferOptions) {
	cmd.Flags().StringVar(&o.Format, "format", "",
		"File format, json or toml. Defaults to the file extension, then json.")
}

func AddOutArg(cmd *cobra.Command, o *TransferOptions) {
	cmd.Flags().StringVarP(&o.Out, "out", "o", "",
		"Write to a file instead of stdout.")
}
