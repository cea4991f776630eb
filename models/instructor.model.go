package models

import "time"

// InstructorStatus defines the approval state of an instructor profile
type InstructorStatus string

const (
	InstructorStatusPending  InstructorStatus = "PENDING"
	InstructorStatusActive   InstructorStatus = "ACTIVE"
	InstructorStatusInactive InstructorStatus = "INACTIVE"
	InstructorStatusRejected InstructorStatus = "REJECTED"
)

// Instructor is the remote instructor profile record
type Instructor struct {
	ID       uint             `json:"id"`
	UserID   uint             `json:"userId"`
	Name     string           `json:"name"`
	Bio      string           `json:"bio"`
	Email    string           `json:"email"`
	Phone    string           `json:"phone"`
	PhotoURL string           `json:"photoUrl"`
	Status   InstructorStatus `json:"status"`
}

// Education is one entry of an instructor's education history
type Education struct {
	ID           uint   `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartYear    int    `json:"startYear"`
	EndYear      int    `json:"endYear"`
}

// Experience is one entry of an instructor's work history
type Experience struct {
	ID        uint       `json:"id"`
	Company   string     `json:"company"`
	Position  string     `json:"position"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Summary   string     `json:"summary"`
}

// Skill is a single instructor skill tag
type Skill struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// SocialLink is a single instructor social profile reference
type SocialLink struct {
	ID       uint   `json:"id"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// InstructorDetail merges the profile with its nested collections, which the
// upstream serves as separate queries
type InstructorDetail struct {
	Instructor  Instructor   `json:"instructor"`
	Educations  []Education  `json:"educations"`
	Experiences []Experience `json:"experiences"`
	Skills      []Skill      `json:"skills"`
	SocialLinks []SocialLink `json:"socialLinks"`
}
