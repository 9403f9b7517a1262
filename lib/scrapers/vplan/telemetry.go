package vplan

import (
	"leonardo-backend/lib/restyutil"
	"leonardo-backend/lib/telemetry"
)

var tracer = telemetry.Tracer("leonardo.lib.scrapers.vplan")
var meter = telemetry.Meter("leonardo.lib.scrapers.vplan")
var pagesFetched, _ = meter.Int64Counter("timetable.pages_fetched")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput makes every client created afterwards dump its
// HTTP messages to `out` when debug logging is enabled.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
