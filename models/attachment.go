package models

import "time"

// Image is the relational record of a profile image stored in the object
// store. A row is created only after the object write succeeded.
type Image struct {
	ImageID      uint      `gorm:"primaryKey;autoIncrement;column:image_id" json:"image_id"`
	FileKey      string    `gorm:"column:file_key;type:varchar(512);not null;unique" json:"file_key"`
	FileURL      string    `gorm:"column:file_url;type:varchar(1024);not null" json:"file_url"`
	MimeType     string    `gorm:"column:mime_type;type:varchar(100);not null" json:"mime_type"`
	FileSize     int64     `gorm:"column:file_size;not null" json:"file_size"`
	OriginalName string    `gorm:"column:original_name;type:varchar(255);not null" json:"original_name"`
	CreateAt     time.Time `gorm:"column:create_at;autoCreateTime" json:"create_at"`
}

func (Image) TableName() string { return "images" }

// ProjectFile mirrors Image for project document uploads.
type ProjectFile struct {
	ProjectFileID uint      `gorm:"primaryKey;autoIncrement;column:project_file_id" json:"project_file_id"`
	FileKey       string    `gorm:"column:file_key;type:varchar(512);not null;unique" json:"file_key"`
	FileURL       string    `gorm:"column:file_url;type:varchar(1024);not null" json:"file_url"`
	MimeType      string    `gorm:"column:mime_type;type:varchar(100);not null" json:"mime_type"`
	FileSize      int64     `gorm:"column:file_size;not null" json:"file_size"`
	OriginalName  string    `gorm:"column:original_name;type:varchar(255);not null" json:"original_name"`
	CreateAt      time.Time `gorm:"column:create_at;autoCreateTime" json:"create_at"`
}

func (ProjectFile) TableName() string { return "project_files" }

// SubmissionFile links a project file to its owning submission and carries
// per-file metadata.
type SubmissionFile struct {
	SubmissionFileID uint      `gorm:"primaryKey;autoIncrement;column:submission_file_id" json:"submission_file_id"`
	SubmissionID     uint      `gorm:"column:submission_id;not null;index" json:"submission_id"`
	ProjectFileID    uint      `gorm:"column:project_file_id;not null;index" json:"project_file_id"`
	Label            *string   `gorm:"column:label;type:varchar(255)" json:"label,omitempty"`
	DisplayOrder     int       `gorm:"column:display_order;not null;default:0" json:"display_order"`
	CreateAt         time.Time `gorm:"column:create_at;autoCreateTime" json:"create_at"`

	ProjectFile *ProjectFile `gorm:"foreignKey:ProjectFileID" json:"project_file,omitempty"`
}

func (SubmissionFile) TableName() string { return "submission_files" }
