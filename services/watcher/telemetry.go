package watcher

import "leonardo-backend/lib/telemetry"

var tracer = telemetry.Tracer("leonardo.services.watcher")
var meter = telemetry.Meter("leonardo.services.watcher")
var changesDetected, _ = meter.Int64Counter("watcher.changes_detected")
