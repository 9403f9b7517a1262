package timetable

import "leonardo-backend/lib/telemetry"

var tracer = telemetry.Tracer("leonardo.services.timetable")
var meter = telemetry.Meter("leonardo.services.timetable")
var snapshotsBuilt, _ = meter.Int64Counter("timetable.snapshots_built")
