package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	var short bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show accelctl version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Println(Version)
				return nil
			}
			switch flagOutput {
			case "json":
				getPrinter().JSON(map[string]string{
					"version":    Version,
					"commit":     Commit,
					"build_date": BuildDate,
				})
			default:
				fmt.Printf("accelctl %s (commit %s, built %s)\n", Version, Commit, BuildDate)
			}
			return nil
		},
	}

	versionCmd.Flags().BoolVar(&short, "short", false, "Print the bare version string")
	rootCmd.AddCommand(versionCmd)
}
