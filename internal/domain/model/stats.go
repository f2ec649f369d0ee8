package model

// LeaderboardEntry ranks a researcher by earnings across accepted, published,
// non-deleted reports.
type LeaderboardEntry struct {
	UserID          string `json:"userId"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ProfilePhoto    string `json:"profilePhoto,omitempty"`
	AcceptedReports int    `json:"acceptedReports"`
	BountiesEarned  int    `json:"bountiesEarned"`
}

// DashboardStats is the admin overview, recomputed on every request.
type DashboardStats struct {
	PublishedProjects   int `json:"publishedProjects"`
	UnpublishedProjects int `json:"unpublishedProjects"`
	PublishedPrograms   int `json:"publishedPrograms"`
	UnpublishedPrograms int `json:"unpublishedPrograms"`

	Researchers int `json:"researchers"`
	Companies   int `json:"companies"`
	Admins      int `json:"admins"`

	DraftReports     int `json:"draftReports"`
	PublishedReports int `json:"publishedReports"`
	AcceptedReports  int `json:"acceptedReports"`
}
