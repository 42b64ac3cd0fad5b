package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/hanzi-ids/internal/app"
)

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "idsload", app.BuildVersion())
			return err
		},
	}
}
