package services

import (
	"context"
	"io"
	"log"
	"time"

	"innovation-registry-api/cache"
	"innovation-registry-api/config"
	"innovation-registry-api/models"
	"innovation-registry-api/storage"

	"gorm.io/gorm"
)

// AttachmentUpload is one raw binary blob taken from the multipart request.
type AttachmentUpload struct {
	Filename string
	MimeType string
	Size     int64
	Reader   io.Reader
	Label    *string
}

// SubmissionInput carries a full registration payload: text fields plus an
// optional profile image and zero or more project files.
type SubmissionInput struct {
	Kind               string
	Name               string
	Email              string
	Phone              string
	Organization       *string
	ProjectTitle       string
	ProjectDescription *string
	Stage              string
	Image              *AttachmentUpload
	Files              []AttachmentUpload
}

// SubmissionService orchestrates the registration pipeline across the object
// store and the relational store. The two backends fail independently; the
// relational transaction is the durability boundary, object-store writes
// before it are compensated on failure and object-store deletes after it are
// best effort.
type SubmissionService struct {
	db           *gorm.DB
	store        storage.ObjectStore
	cache        cache.Cache
	storeTimeout time.Duration
}

// NewSubmissionService wires the service. Nil handles fall back to the
// process-wide ones owned by the bootstrap.
func NewSubmissionService(db *gorm.DB, store storage.ObjectStore, c cache.Cache) *SubmissionService {
	if db == nil {
		db = config.DB
	}
	if store == nil {
		store = config.Store
	}
	if c == nil && config.RDB != nil {
		c = cache.NewRedisCache(config.RDB)
	}
	return &SubmissionService{db: db, store: store, cache: c, storeTimeout: config.StorageTimeout}
}

// Submit runs the full registration pipeline:
// validation gate -> upload coordinator -> transactional writer, with
// compensating cleanup of every uploaded object when anything after the
// first successful upload fails. Notifications fire only after commit and
// never change the result.
func (s *SubmissionService) Submit(ctx context.Context, input *SubmissionInput) (*models.Submission, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	// Accumulator of object keys written so far. Sole source of truth for
	// compensation, appended after each individual upload.
	var uploaded []string

	image, files, err := s.uploadAttachments(ctx, input, &uploaded)
	if err != nil {
		s.cleanupUploads(uploaded)
		return nil, err
	}

	submission, err := s.createSubmission(ctx, input, image, files)
	if err != nil {
		s.cleanupUploads(uploaded)
		return nil, err
	}

	// New submissions enter as pending and are not publicly visible, so the
	// listing cache stays untouched here.
	s.notifySubmissionReceived(submission)

	return submission, nil
}

// Moderate applies an approve/reject decision. Re-applying the same decision
// is allowed. Cache invalidation and notifications run strictly after the
// update committed.
func (s *SubmissionService) Moderate(ctx context.Context, id uint, status, note string) (*models.Submission, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, ErrInvalidStatus
	}

	var submission models.Submission
	if err := s.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrSubmissionNotFound
		}
		return nil, &PersistenceError{Err: err}
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       status,
		"visible":      status == models.StatusApproved,
		"moderated_at": now,
		"update_at":    now,
	}
	if note != "" {
		updates["moderation_note"] = note
	}

	if err := s.db.WithContext(ctx).Model(&models.Submission{}).
		Where("submission_id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}

	submission.Status = status
	submission.Visible = status == models.StatusApproved
	submission.ModeratedAt = &now
	if note != "" {
		submission.ModerationNote = &note
	}

	s.invalidateListing(ctx)
	s.notifyModerated(&submission)

	return &submission, nil
}

// Delete removes a submission and everything it owns. Relational rows go
// first, in one transaction and in dependency order; object-store keys are
// collected up front and deleted best-effort only after the transaction
// committed, so a failed transaction never leaves dangling references.
func (s *SubmissionService) Delete(ctx context.Context, id uint) error {
	var submission models.Submission
	if err := s.db.WithContext(ctx).
		Preload("Image").
		Preload("ProjectFiles.ProjectFile").
		First(&submission, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrSubmissionNotFound
		}
		return &PersistenceError{Err: err}
	}

	// Collect every object key before touching anything.
	var keys []string
	var fileIDs []uint
	if submission.Image != nil {
		keys = append(keys, submission.Image.FileKey)
	}
	for _, link := range submission.ProjectFiles {
		fileIDs = append(fileIDs, link.ProjectFileID)
		if link.ProjectFile != nil {
			keys = append(keys, link.ProjectFile.FileKey)
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Children before parents: join rows, project files, the
		// submission itself, then the image it references.
		if err := tx.Where("submission_id = ?", id).Delete(&models.SubmissionFile{}).Error; err != nil {
			return err
		}
		if len(fileIDs) > 0 {
			if err := tx.Where("project_file_id IN ?", fileIDs).Delete(&models.ProjectFile{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.Submission{}, id).Error; err != nil {
			return err
		}
		if submission.ImageID != nil {
			if err := tx.Delete(&models.Image{}, *submission.ImageID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &PersistenceError{Err: err}
	}

	s.cleanupUploads(keys)
	s.invalidateListing(ctx)

	return nil
}

// invalidateListing drops the public listing cache entry. The next read
// recomputes it; a failure here only widens the staleness window.
func (s *SubmissionService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ListingCacheKey); err != nil {
		log.Printf("listing cache invalidate failed: %v", err)
	}
}
