package model

import "time"

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"

	ReportStatusInitiated    = "initiated"
	ReportStatusInDiscussion = "in discussion"
	ReportStatusWorking      = "working"
	ReportStatusAccepted     = "accepted"
	ReportStatusRejected     = "rejected"
)

type ProjectReport struct {
	ID                string `json:"id"`
	UserID            string `json:"userId"`
	ProjectID         string `json:"projectId"`
	SelectedAsset     string `json:"selectedAsset"`
	IsDraft           bool   `json:"isDraft"`
	Severity          string `json:"severity"`
	ReportTitle       string `json:"reportTitle"`
	ReportDescription string `json:"reportDescription"`
	Points            int    `json:"points"` // only meaningful once accepted
	IsAccepted        bool   `json:"isAccepted"`
	Status            string `json:"status"`
	Lifecycle
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReportWithUser decorates a report with its reporter's display name.
type ReportWithUser struct {
	ProjectReport
	UserFirstName string `json:"userFirstName"`
	UserLastName  string `json:"userLastName"`
}

// ReportWithProject decorates a report with the name of the project it was
// filed against.
type ReportWithProject struct {
	ProjectReport
	ProjectName string `json:"projectName"`
}
