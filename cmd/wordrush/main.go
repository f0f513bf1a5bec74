package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"wordrush/internal/constants"
	"wordrush/internal/dispatch"
	fxmodules "wordrush/internal/fx"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.StopTimeout(constants.ShutdownTimeout),
		fx.Invoke(runPump),
	).Run()
}

// runPump wires the event loop: newline-delimited JSON advance events on
// stdin, notices as JSON lines on stdout. This stands in for the rollup
// host; there is no network listener.
func runPump(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	dispatcher *dispatch.Dispatcher,
	logger zerolog.Logger,
) {
	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info().Msg("event pump starting")
			g.Go(func() error {
				defer shutdowner.Shutdown()
				return pump(gctx, dispatcher, os.Stdin, os.Stdout, logger)
			})
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()

			done := make(chan error, 1)
			go func() { done <- g.Wait() }()

			select {
			case err := <-done:
				if err != nil && err != context.Canceled {
					logger.Error().Err(err).Msg("event pump failed")
					return err
				}
			case <-stopCtx.Done():
				logger.Warn().Dur("timeout", constants.ShutdownTimeout).Msg("event pump did not drain in time")
			}
			logger.Info().Msg("event pump stopped")
			return nil
		},
	})
}

func pump(ctx context.Context, dispatcher *dispatch.Dispatcher, in io.Reader, out io.Writer, logger zerolog.Logger) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	enc := json.NewEncoder(out)

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		var ev dispatch.AdvanceEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			logger.Warn().Err(err).Msg("skipping unparseable input line")
			continue
		}

		notices, err := dispatcher.Advance(ev)
		if err != nil {
			// Rejections are per-event; the pump keeps going.
			continue
		}
		for _, n := range notices {
			if err := enc.Encode(n); err != nil {
				return err
			}
		}
	}

	if err := sc.Err(); err != nil {
		return err
	}
	logger.Info().Msg("input closed")
	return nil
}
