package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zenrouter/accelctl/internal/exitcodes"
	"github.com/zenrouter/accelctl/internal/logs"
)

func init() {
	var (
		follow bool
		lines  int
	)

	logsCmd := &cobra.Command{
		Use:   "logs [accel|webui]",
		Short: "Show component logs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := parseComponent(args)
			if err != nil {
				return err
			}
			cfg := loadCfg()
			svc := logs.New(cfg.LogFolder)

			if !follow {
				out, err := svc.ReadLast(string(comp), lines)
				if err != nil {
					return exitcodes.PreconditionError(fmt.Sprintf("log file not found: %s", svc.Path(string(comp))))
				}
				for _, line := range out {
					fmt.Println(line)
				}
				return nil
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigs
				cancel()
			}()

			if term.IsTerminal(int(os.Stdout.Fd())) && !flagQuiet {
				getPrinter().Info(fmt.Sprintf("Following %s (Ctrl+C to stop)", svc.Path(string(comp))))
			}
			if err := svc.Follow(ctx, string(comp), func(line string) { fmt.Println(line) }); err != nil {
				return exitcodes.PreconditionError(err.Error())
			}
			return nil
		},
	}

	logsCmd.Flags().BoolVarP(&follow, "follow", "f", false, "Stream new lines until interrupted")
	logsCmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	rootCmd.AddCommand(logsCmd)
}
