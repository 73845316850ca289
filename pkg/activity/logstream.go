package activity

import "strings"

// Predicate passed to `log stream` on macOS. The CMIO subsystem logs an
// AVCaptureSession start/stop line whenever any application begins or ends
// a capture session.
const logStreamPredicate = `subsystem == "com.apple.cmio" AND (eventMessage CONTAINS "AVCaptureSession_Tundra startRunning" || eventMessage CONTAINS "AVCaptureSession_Tundra stopRunning")`

const (
	sessionStartMarker = "AVCaptureSession_Tundra startRunning"
	sessionStopMarker  = "AVCaptureSession_Tundra stopRunning"
)

// classifyLogLine maps one line of `log stream` output to an event kind.
// The banner line `log` prints before any results is ignored, as is any
// line matching neither marker.
func classifyLogLine(line string) (EventKind, bool) {
	if strings.HasPrefix(line, "Filtering the log data") {
		return "", false
	}
	if strings.Contains(line, sessionStartMarker) {
		return GlobalActive, true
	}
	if strings.Contains(line, sessionStopMarker) {
		return GlobalInactive, true
	}
	return "", false
}
