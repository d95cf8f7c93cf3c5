package telemetry

// Event names
const (
	EventAnalysisRun     = "analysis_run"
	EventRecordCreated   = "record_created"
	EventNotificationOut = "notification_sent"
	EventServerStarted   = "server_started"
)

// AnalysisRun builds the properties of an analysis_run event.
func AnalysisRun(operation string, records int) Properties {
	return Properties{
		"operation": operation,
		"records":   records,
	}
}
