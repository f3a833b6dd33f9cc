package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gammadia/nyancat/flags"
	"github.com/gammadia/nyancat/log"
	"github.com/gammadia/nyancat/nyancat/ui"
	"github.com/gammadia/nyancat/reporter"
	"github.com/gammadia/nyancat/stream"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type recvResult struct {
	event stream.Event
	err   error
}

// tally is what the feed loop learned about the run.
type tally struct {
	tests    int
	failed   int
	failures []string
}

// receive decodes events in the background. The channel delivers every event
// followed by exactly one error (io.EOF on a clean end).
func receive(d stream.Decoder) <-chan recvResult {
	ch := make(chan recvResult, 1)
	go func() {
		for {
			event, err := d.Next()
			ch <- recvResult{event, err}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

// replay feeds already collected events.
func replay(events []stream.Event) <-chan recvResult {
	ch := make(chan recvResult, len(events)+1)
	for _, event := range events {
		ch <- recvResult{event: event}
	}
	ch <- recvResult{err: io.EOF}
	return ch
}

// collect drains the channel, stopping early if ctx is cancelled. The spinner
// shows how many results arrived so far.
func collect(ctx context.Context, ch <-chan recvResult, spinner *ui.Spinner) ([]stream.Event, error) {
	var events []stream.Event
	for {
		select {
		case <-ctx.Done():
			return events, ctx.Err()
		case result := <-ch:
			if errors.Is(result.err, io.EOF) {
				return events, nil
			}
			if result.err != nil {
				return events, result.err
			}
			events = append(events, result.event)
			spinner.UpdateMessage(fmt.Sprintf("Collected %d results", len(events)))
		}
	}
}

// runFeedLoop records every received event until the stream ends or ctx is
// cancelled. onFirstEvent runs once, right before the first result is drawn.
func runFeedLoop(ctx context.Context, ch <-chan recvResult, r *reporter.Renderer, onFirstEvent func() error) (tally, error) {
	var t tally
	for {
		select {
		case <-ctx.Done():
			return t, ctx.Err()

		case result := <-ch:
			if errors.Is(result.err, io.EOF) {
				return t, nil
			}
			if result.err != nil {
				return t, result.err
			}

			if t.tests == 0 && onFirstEvent != nil {
				if err := onFirstEvent(); err != nil {
					return t, err
				}
			}

			t.tests++
			log.DebugContext(ctx, "Result received", "mark", result.event.Mark, "test", result.event.Test)
			if m := result.event.Mark; m == reporter.Fail || m == reporter.Error {
				t.failed++
				if failure := result.event.Failure(); failure != "" {
					t.failures = append(t.failures, failure)
				}
			}

			if err := r.Record(result.event.Mark); err != nil {
				return t, fmt.Errorf("failed to draw progress: %w", err)
			}
		}
	}
}

// report draws the progress of the events produced by decoder, then the
// summary. It returns the number of failed examples.
func report(cmd *cobra.Command, decoder stream.Decoder, waitingMsg string) (int, error) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	started := time.Now()

	events := receive(decoder)
	total := viper.GetInt(flags.Total)

	spinner := ui.NewSpinner(cmd.ErrOrStderr(), waitingMsg)
	if total <= 0 {
		collected, err := collect(ctx, events, spinner)
		if err != nil {
			if ctx.Err() != nil {
				spinner.Clear()
				return 0, nil
			}
			spinner.Fail()
			return 0, err
		}
		total = len(collected)
		spinner.Success(fmt.Sprintf("Collected %d results", total))
		events = replay(collected)
	}

	var outFile *os.File
	if f, ok := out.(*os.File); ok {
		outFile = f
	}
	renderer := reporter.New(out, reporter.Config{
		Total:     total,
		TermWidth: ui.TermWidth(outFile, viper.GetInt(flags.Width)),
		NoColor:   viper.GetBool(flags.NoColor),
		Logger:    log.With("component", "reporter"),
	})

	t, err := runFeedLoop(ctx, events, renderer, func() error {
		spinner.Clear()
		return renderer.Start(viper.GetString(flags.Label))
	})
	if err != nil {
		spinner.Clear()
		if releaseErr := renderer.Release(); releaseErr != nil {
			log.Debug("Failed to release progress block", "error", releaseErr)
		}
		if ctx.Err() != nil {
			log.Info("Interrupted", "recorded", t.tests, "total", total)
			return t.failed, nil
		}
		return t.failed, err
	}

	if t.tests == 0 {
		spinner.Warn("No test results received")
		return 0, nil
	}

	if err := renderer.Release(); err != nil {
		return t.failed, fmt.Errorf("failed to draw progress: %w", err)
	}
	log.Debug("Run complete", "tests", t.tests, "failed", t.failed, "expected", total)

	// Go tests have no assertion counter, every checked example counts as one.
	err = renderer.Finish(reporter.Summary{
		Tests:      t.tests,
		Assertions: t.tests,
		Elapsed:    time.Since(started),
		Failures:   t.failures,
	})
	if err != nil {
		return t.failed, fmt.Errorf("failed to print summary: %w", err)
	}
	return t.failed, nil
}
