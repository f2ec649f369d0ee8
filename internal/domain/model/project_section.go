package model

import "time"

const (
	SectionTypeText  = "text"
	SectionTypeList  = "list"
	SectionTypeStats = "stats"

	RankDirectionUp   = "up"
	RankDirectionDown = "down"
)

// ProjectSection is one block of a project's public page. Ranks are a dense
// 1..N permutation across the non-deleted sections of a project, and at most
// one non-deleted section per project carries the asset flag.
type ProjectSection struct {
	ID           string     `json:"id"`
	SectionTitle string     `json:"sectionTitle"`
	SectionType  string     `json:"sectionType"`
	SectionText  string     `json:"sectionText,omitempty"`
	SectionList  StringList `json:"sectionList"`
	IsAsset      bool       `json:"isAsset"`
	Rank         int        `json:"rank"`
	ProjectID    string     `json:"projectId"`
	Lifecycle
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RankSwap reports the two sections whose ranks were exchanged.
type RankSwap struct {
	CurrentSection  *ProjectSection `json:"currentSection"`
	AdjacentSection *ProjectSection `json:"adjacentSection"`
}
