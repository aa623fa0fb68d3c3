package model

import "time"

type IntakeJobStatus string

const (
	IntakeJobStatusRequested  IntakeJobStatus = "Requested"
	IntakeJobStatusProcessing IntakeJobStatus = "Processing"
	IntakeJobStatusComplete   IntakeJobStatus = "Complete"
	IntakeJobStatusFailed     IntakeJobStatus = "Failed"
)

// IsTerminal reports whether a run has finished with this status.
func (s IntakeJobStatus) IsTerminal() bool {
	return s == IntakeJobStatusComplete || s == IntakeJobStatusFailed
}

type InventoryIntakeJob struct {
	BaseModel
	RetailerID          string          `db:"retailer_id" json:"retailer_id"`
	RetailerLocationID  string          `db:"retailer_location_id" json:"retailer_location_id"`
	SnapshotHour        time.Time       `db:"snapshot_hour" json:"snapshot_hour"`
	ParentBatchJobID    *string         `db:"parent_batch_job_id" json:"parent_batch_job_id"`
	SimulatorResponseID *string         `db:"simulator_response_id" json:"simulator_response_id"`
	Status              IntakeJobStatus `db:"status" json:"status"`
	StatusDetails       *string         `db:"status_details" json:"status_details"`
}

type InventoryIntakeJobCreate struct {
	RetailerLocationID  string
	SnapshotHour        time.Time
	ParentBatchJobID    *string
	SimulatorResponseID *string
}

type SalesIntakeJob struct {
	BaseModel
	RetailerID          string          `db:"retailer_id" json:"retailer_id"`
	RetailerLocationID  string          `db:"retailer_location_id" json:"retailer_location_id"`
	StartTime           time.Time       `db:"start_time" json:"start_time"`
	EndTime             *time.Time      `db:"end_time" json:"end_time"`
	ParentBatchJobID    *string         `db:"parent_batch_job_id" json:"parent_batch_job_id"`
	SimulatorResponseID *string         `db:"simulator_response_id" json:"simulator_response_id"`
	Status              IntakeJobStatus `db:"status" json:"status"`
	StatusDetails       *string         `db:"status_details" json:"status_details"`
}

type SalesIntakeJobCreate struct {
	RetailerLocationID  string
	StartTime           time.Time
	EndTime             *time.Time
	ParentBatchJobID    *string
	SimulatorResponseID *string
}

// IntakeJobStatusUpdate is applied by both job kinds.
type IntakeJobStatusUpdate struct {
	Status        IntakeJobStatus
	StatusDetails *string
}
