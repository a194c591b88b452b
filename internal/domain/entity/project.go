package entity

import "gorm.io/datatypes"

// Project 포트폴리오 프로젝트
type Project struct {
	Record
	Name                   string            `gorm:"not null" json:"name" validate:"required"`
	Tagline                *string           `json:"tagline"`
	Slug                   string            `gorm:"uniqueIndex;not null" json:"slug"`
	Description            *string           `gorm:"type:text" json:"description"`
	Tools                  datatypes.JSON    `json:"tools"`
	Domain                 string            `gorm:"not null" json:"domain" validate:"required"`
	ProjectType            string            `gorm:"not null" json:"project_type" validate:"required"`
	Role                   string            `gorm:"not null" json:"role" validate:"required"`
	Client                 *string           `json:"client"`
	GithubLink             *string           `json:"github_link"`
	PostmanLink            *string           `json:"postman_link"`
	LiveLink               *string           `json:"live_link"`
	GoogleDriveLink        *string           `json:"google_drive_link"`
	FigmaLink              *string           `json:"figma_link"`
	TechnicalDetails       datatypes.JSONMap `json:"technical_details"`
	ChallengesAndSolutions datatypes.JSONMap `json:"challenges_and_solutions"`
}

func (Project) TableName() string { return "projects" }

func (Project) DeletionMode() DeletionMode { return SoftDelete }

var projectQuery = QuerySpec{
	Filters: fields("domain", "slug", "project_type", "role", "client"),
	Search:  fields("name", "tagline"),
	Sorts:   fields("name", "domain", "project_type"),
	Writable: fields(
		"name", "tagline", "slug", "description", "tools", "domain", "project_type", "role", "client",
		"github_link", "postman_link", "live_link", "google_drive_link", "figma_link",
		"technical_details", "challenges_and_solutions", "position",
	),
	SlugColumn:   "slug",
	DefaultSort:  "position",
	DefaultOrder: "asc",
}

func (Project) QuerySpec() QuerySpec { return projectQuery }
