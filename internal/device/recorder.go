package device

import "time"

// Field names used when reporting fallbacks.
const (
	FieldResolution = "resolution"
	FieldDensity    = "density"
	FieldCarrier    = "carrier"
	FieldAppVersion = "app_version"
	FieldStore      = "store"
)

// Recorder receives instrumentation events from DeviceInfo.
type Recorder interface {
	// RecordFallback is called each time a host query could not answer and
	// a default was substituted for field.
	RecordFallback(field string)

	// RecordSnapshot is called after a snapshot has been collected.
	RecordSnapshot(elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordFallback(string)        {}
func (nopRecorder) RecordSnapshot(time.Duration) {}
