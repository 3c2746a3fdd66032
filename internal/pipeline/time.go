package pipeline

import "time"

// TimeLayout is the stamp format for stage start/end times: a local
// datetime without seconds, matching the values earlier releases stored.
const TimeLayout = "2006-01-02T15:04"

// timeNow is swapped out by tests for deterministic stamps.
var timeNow = time.Now

func nowStamp() string {
	return timeNow().Format(TimeLayout)
}
