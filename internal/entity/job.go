package entity

import (
	"encoding/json"
	"time"
)

// JobType identifies a recurring pipeline job.
type JobType string

const (
	JobTypeCatalystDetect JobType = "catalyst_detect"
	JobTypeCatalystTrack  JobType = "catalyst_track"
	JobTypeUniverseScan   JobType = "universe_scan"
	JobTypeFlowCollect    JobType = "flow_collect"
	JobTypeDisclosureSync JobType = "disclosure_sync"
	JobTypeValueScreen    JobType = "value_screen"
)

// Job is one unit of work published by the scheduler and consumed off the
// Redis stream.
type Job struct {
	Type       JobType         `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}
