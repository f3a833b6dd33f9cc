package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/gammadia/nyancat/flags"
	"github.com/gammadia/nyancat/log"
	"github.com/gammadia/nyancat/stream"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Versioning information set at build time
var version, commit = "dev", "n/a"

// exitCodeError makes the process exit with code without printing anything.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

var nyancatCmd = &cobra.Command{
	Use:   "nyancat",
	Short: "Nyan Cat flies over your test results.",
	Long: "Reads test results from stdin and draws Nyan Cat and its rainbow trail.\n\n" +
		"  go test -json ./... | nyancat --format json\n" +
		"  printf '..F.S.E' | nyancat --total 7",
	Args: cobra.NoArgs,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := flags.Bind(cmd.Flags()); err != nil {
			return err
		}
		if viper.GetBool(flags.NoColor) {
			color.NoColor = true
		}
		return log.Init(cmd.ErrOrStderr())
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		decoder, err := stream.NewDecoder(viper.GetString(flags.Format), cmd.InOrStdin())
		if err != nil {
			return err
		}

		failed, err := report(cmd, decoder, "Waiting for test results")
		if err != nil {
			return err
		}
		if failed > 0 {
			return exitCodeError{1}
		}
		return nil
	},
}

func init() {
	nyancatCmd.AddCommand(completionCmd)
	nyancatCmd.AddCommand(runCmd)
	nyancatCmd.AddCommand(versionCmd)

	flags.Register(nyancatCmd.PersistentFlags())
	nyancatCmd.Flags().String(flags.Format, stream.FormatCodes, fmt.Sprintf("input format %v", stream.Formats))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	nyancatCmd.SetOut(os.Stdout)
	if err := nyancatCmd.ExecuteContext(ctx); err != nil {
		var exitErr exitCodeError
		if errors.As(err, &exitErr) {
			stop()
			os.Exit(exitErr.code)
		}
		lo.Must(fmt.Fprintln(os.Stderr, color.HiRedString(fmt.Sprint(err))))
		stop()
		os.Exit(1)
	}
}
