package models

import "time"

// Submission kinds
const (
	KindInnovator    = "innovator"
	KindCollaborator = "collaborator"
)

// Submission statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Project stages (descriptive tag, not a state machine)
const (
	StageIdea      = "idea"
	StagePrototype = "prototype"
	StageLaunched  = "launched"
	StageScaling   = "scaling"
)

type Submission struct {
	SubmissionID       uint       `gorm:"primaryKey;autoIncrement;column:submission_id" json:"submission_id"`
	Kind               string     `gorm:"column:kind;type:varchar(20);not null;uniqueIndex:uq_submissions_kind_email;uniqueIndex:uq_submissions_kind_phone" json:"kind"`
	Name               string     `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email              string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_submissions_kind_email" json:"email"`
	Phone              string     `gorm:"column:phone;type:varchar(50);not null;uniqueIndex:uq_submissions_kind_phone" json:"phone"`
	Organization       *string    `gorm:"column:organization;type:varchar(255)" json:"organization,omitempty"`
	ProjectTitle       string     `gorm:"column:project_title;type:varchar(500);not null" json:"project_title"`
	ProjectDescription *string    `gorm:"column:project_description;type:text" json:"project_description,omitempty"`
	Stage              string     `gorm:"column:stage;type:varchar(20);not null;default:idea" json:"stage"`
	Status             string     `gorm:"column:status;type:varchar(20);not null;default:pending;index" json:"status"`
	Visible            bool       `gorm:"column:visible;not null;default:false;index" json:"visible"`
	ModerationNote     *string    `gorm:"column:moderation_note;type:text" json:"moderation_note,omitempty"`
	ImageID            *uint      `gorm:"column:image_id" json:"image_id,omitempty"`
	CreateAt           time.Time  `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt           time.Time  `gorm:"column:update_at;autoUpdateTime" json:"update_at"`
	ModeratedAt        *time.Time `gorm:"column:moderated_at" json:"moderated_at,omitempty"`

	// Relations
	Image        *Image           `gorm:"foreignKey:ImageID" json:"image,omitempty"`
	ProjectFiles []SubmissionFile `gorm:"foreignKey:SubmissionID" json:"project_files,omitempty"`
}

func (Submission) TableName() string { return "submissions" }

// IsVisible reports whether the submission belongs on the public listing.
// Visible is derived state: true iff the status is approved.
func (s *Submission) IsVisible() bool { return s.Status == StatusApproved }
