package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"banks-etl/cmd/banks-etl/commands"
	"banks-etl/lib/serviceutil"
	"banks-etl/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	telemetry.InitSlog(false)
	tel, err := telemetry.SetupFromEnv(ctx, "banks-etl")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to setup telemetry", "err", err)
	}

	code := commands.ExecuteContext(ctx)

	err = tel.Shutdown(context.Background())
	if err != nil {
		slog.Warn("failed to shutdown telemetry", "err", err)
	}
	os.Exit(code)
}
