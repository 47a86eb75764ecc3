// Package logger provides structured JSON-lines logging and run metrics for rlol.
//
// Every entry is one JSON object carrying a timestamp, level, message and
// optional fields. Logs go to stderr by default so command output on stdout
// stays machine-readable.
//
// Metrics track counters (datasets fetched, bytes read, rows decoded),
// gauges and timings (fetch latency) with min/max/average aggregation.
//
// Example usage:
//
//	log := logger.With(logger.Fields{"load_id": id})
//	log.Info("Fetched dataset", logger.Fields{
//	    "dataset": "schedule",
//	    "bytes":   4096,
//	})
//
//	m := logger.NewMetrics()
//	m.AddCounter("fetch.bytes", 4096)
//	m.RecordTiming("fetch.duration", elapsed)
package logger
