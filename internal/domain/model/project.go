package model

import "time"

type Project struct {
	ID                 string    `json:"id"`
	ProjectName        string    `json:"projectName"`
	Slug               string    `json:"slug"`
	CompanyID          string    `json:"companyId"`
	ProjectDescription string    `json:"projectDescription"`
	MinPrice           float64   `json:"minPrice"`
	MaxPrice           float64   `json:"maxPrice"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	StartTime          string    `json:"startTime"`
	EndTime            string    `json:"endTime"`
	ServiceType        string    `json:"serviceType"`
	IsProject          bool      `json:"isProject"` // project vs program
	IsPublished        bool      `json:"isPublished"`
	MaxPoints          int       `json:"maxPoints"`
	Lifecycle
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProjectWithReportCount decorates a project with the number of reports
// submitted against it, computed at read time.
type ProjectWithReportCount struct {
	Project
	ReportCount int `json:"reportCount"`
}

// ProjectOption is the trimmed shape used by dropdown listings.
type ProjectOption struct {
	ID          string `json:"id"`
	ProjectName string `json:"projectName"`
	Slug        string `json:"slug"`
}

// ProjectDetails bundles a project with its sections ordered by rank.
type ProjectDetails struct {
	Project
	Sections []ProjectSection `json:"sections"`
}
