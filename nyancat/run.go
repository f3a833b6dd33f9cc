package main

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/fatih/color"
	"github.com/gammadia/nyancat/flags"
	"github.com/gammadia/nyancat/log"
	"github.com/gammadia/nyancat/stream"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- COMMAND [ARGS...]",
	Short: "Run a test command and draw its results",
	Example: "  nyancat run -- go test -json ./...\n" +
		"  nyancat run --format verbose -- go test -v ./reporter",
	Args: cobra.MinimumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		command := shellescape.QuoteCommand(args)
		log.Info("Running test command", "command", command)
		if !lo.Must(cmd.Flags().GetBool("quiet")) {
			cmd.PrintErrln(color.HiCyanString(formatCommandLine(args, 80)))
		}

		child := exec.CommandContext(cmd.Context(), args[0], args[1:]...)
		child.Stdin = cmd.InOrStdin()
		var stderr bytes.Buffer
		child.Stderr = &stderr
		stdout, err := child.StdoutPipe()
		if err != nil {
			return fmt.Errorf("failed to attach to '%s': %w", command, err)
		}

		decoder, err := stream.NewDecoder(viper.GetString(flags.Format), stdout)
		if err != nil {
			return err
		}

		if err := child.Start(); err != nil {
			return fmt.Errorf("failed to start '%s': %w", command, err)
		}

		failed, reportErr := report(cmd, decoder, "Running "+args[0])
		if reportErr != nil {
			// Nobody reads its output anymore
			_ = child.Process.Kill()
		}
		waitErr := child.Wait()

		if stderr.Len() > 0 && (waitErr != nil || reportErr != nil) {
			cmd.PrintErr(stderr.String())
		}
		if reportErr != nil {
			return reportErr
		}

		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			log.Debug("Test command failed", "command", command, "exitCode", exitErr.ExitCode())
			if cmd.Context().Err() != nil {
				return nil
			}
			return exitCodeError{lo.Ternary(exitErr.ExitCode() > 0, exitErr.ExitCode(), 1)}
		}
		if waitErr != nil {
			return fmt.Errorf("failed to run '%s': %w", command, waitErr)
		}
		if failed > 0 {
			return exitCodeError{1}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().String(flags.Format, stream.FormatJSON, fmt.Sprintf("output format of the test command %v", stream.Formats))
	runCmd.Flags().BoolP("quiet", "q", false, "do not print the command before running it")
}

// formatCommandLine quotes args for display, breaking lines with shell
// continuations so that none exceeds maxWidth.
func formatCommandLine(args []string, maxWidth int) string {
	if len(args) == 0 {
		return ""
	}

	const indent = "$ "
	const continuation = "    "

	var lines []string
	line := indent + shellescape.Quote(args[0])
	for _, arg := range args[1:] {
		arg = shellescape.Quote(arg)
		if len(line)+1+len(arg)+2 > maxWidth {
			lines = append(lines, line+" \\")
			line = continuation + arg
		} else {
			line += " " + arg
		}
	}
	lines = append(lines, line)

	return strings.Join(lines, "\n")
}
