package common

const (
	RedisStreamSignalJobs = "signal.jobs"
	RedisStreamScanTask   = "signal.scan.task"

	RedisStreamGroup    = "signal-group"
	RedisStreamConsumer = "signal-consumer"

	// DART-style report codes for financial statements.
	ReportCodeQ1     = "11013"
	ReportCodeHalf   = "11012"
	ReportCodeQ3     = "11014"
	ReportCodeAnnual = "11011"

	EventCatalystCreated = "catalyst.created"
	EventCatalystExpired = "catalyst.expired"
	EventSignalConfirmed = "signal.confirmed"
)
