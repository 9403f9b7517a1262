package main

import (
	"context"
	"errors"
	"leonardo-backend/lib/restyutil"
	"leonardo-backend/lib/scrapers/vplan"
	"leonardo-backend/lib/serviceutil"
	"leonardo-backend/lib/telemetry"
	"log/slog"
	"os"
)

func InitTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	tel, err := telemetry.SetupFromEnv(ctx, "leonardo-server")
	if errors.Is(err, os.ErrNotExist) {
		slog.WarnContext(ctx, "telemetry.json5 not found, traces and metrics are not exported")
	} else if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	go func() {
		<-ctx.Done()
		err := tel.Shutdown(context.Background())
		if err != nil {
			slog.Warn("shutdown telemetry", "err", err)
		}
	}()
	telemetry.InstrumentPerfStats(ctx)

	if !verbose {
		return
	}

	output, err := restyutil.NewFilesystemOutput("<dev_state>/resty/vplan")
	if err != nil {
		slog.WarnContext(ctx, "resty message dumps disabled", "err", err)
		return
	}
	vplan.SetRestyInstrumentOutput(output)
}
