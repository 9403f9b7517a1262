package main

import (
	"context"
	"leonardo-backend/cmd/leonardo-cli/commands"
	"leonardo-backend/lib/serviceutil"
	"leonardo-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	tel, _ := telemetry.SetupFromEnv(ctx, "leonardo-cli")
	defer tel.Shutdown(context.Background())

	commands.ExecuteContext(ctx)
}
