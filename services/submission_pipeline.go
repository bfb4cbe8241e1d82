package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"innovation-registry-api/models"
	"innovation-registry-api/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxAttachmentSize = 10 << 20 // 10 MiB

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

var allowedFileTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"image/png":  true,
	"image/jpeg": true,
}

// validate is the pre-flight gate: attachment type and size checks plus a
// duplicate-identity lookup. It performs no object-store or write I/O, so a
// rejection here leaves nothing to clean up. The duplicate lookup is an
// optimization only; the unique constraints checked inside the transaction
// remain the safety mechanism.
func (s *SubmissionService) validate(ctx context.Context, input *SubmissionInput) error {
	if input.Image != nil {
		if !allowedImageTypes[input.Image.MimeType] {
			return ErrInvalidAttachmentType
		}
		if input.Image.Size > maxAttachmentSize {
			return ErrAttachmentTooLarge
		}
	}
	for i := range input.Files {
		if !allowedFileTypes[input.Files[i].MimeType] {
			return ErrInvalidAttachmentType
		}
		if input.Files[i].Size > maxAttachmentSize {
			return ErrAttachmentTooLarge
		}
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Submission{}).
		Where("kind = ? AND email = ?", input.Kind, input.Email).
		Count(&count).Error; err != nil {
		return &PersistenceError{Err: err}
	}
	if count > 0 {
		return ErrDuplicateEmail
	}

	if err := s.db.WithContext(ctx).Model(&models.Submission{}).
		Where("kind = ? AND phone = ?", input.Kind, input.Phone).
		Count(&count).Error; err != nil {
		return &PersistenceError{Err: err}
	}
	if count > 0 {
		return ErrDuplicatePhone
	}

	return nil
}

// uploadedAttachment is the location descriptor of one stored blob.
type uploadedAttachment struct {
	storage.ObjectInfo
	MimeType     string
	Size         int64
	OriginalName string
	Label        *string
}

// uploadAttachments writes every blob to the object store, sequentially, in
// input order. Each successful write appends its key to *uploaded before the
// next write starts, so a failure on upload k still lets the caller roll
// back uploads 1..k-1.
func (s *SubmissionService) uploadAttachments(ctx context.Context, input *SubmissionInput, uploaded *[]string) (*uploadedAttachment, []uploadedAttachment, error) {
	var image *uploadedAttachment
	if input.Image != nil {
		att, err := s.putAttachment(ctx, input.Kind, "images", input.Image, uploaded)
		if err != nil {
			return nil, nil, err
		}
		image = att
	}

	files := make([]uploadedAttachment, 0, len(input.Files))
	for i := range input.Files {
		att, err := s.putAttachment(ctx, input.Kind, "files", &input.Files[i], uploaded)
		if err != nil {
			return nil, nil, err
		}
		files = append(files, *att)
	}

	return image, files, nil
}

// putAttachment writes one blob under a freshly generated key. Each call has
// its own timeout; a timed-out upload counts as a failed upload.
func (s *SubmissionService) putAttachment(ctx context.Context, kind, role string, att *AttachmentUpload, uploaded *[]string) (*uploadedAttachment, error) {
	key := objectKey(kind, role, att.Filename)

	putCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	info, err := s.store.Put(putCtx, key, att.Reader, att.Size, att.MimeType)
	if err != nil {
		return nil, &UploadError{Key: key, Err: err}
	}
	*uploaded = append(*uploaded, info.Key)

	return &uploadedAttachment{
		ObjectInfo:   info,
		MimeType:     att.MimeType,
		Size:         att.Size,
		OriginalName: att.Filename,
		Label:        att.Label,
	}, nil
}

// objectKey builds a never-reused key: kind/role/<uuid>_<original name>.
func objectKey(kind, role, filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s/%s/%s_%s", kind, role, uuid.New().String(), base)
}

// createSubmission opens the single relational transaction that records the
// submission and its attachment rows, referencing only objects that are
// already written. Any constraint violation aborts the whole transaction
// with no partial rows; a duplicate-key abort surfaces as the identity
// error, matching what the submitter actually did wrong.
func (s *SubmissionService) createSubmission(ctx context.Context, input *SubmissionInput, image *uploadedAttachment, files []uploadedAttachment) (*models.Submission, error) {
	stage := input.Stage
	if stage == "" {
		stage = models.StageIdea
	}

	submission := models.Submission{
		Kind:               input.Kind,
		Name:               input.Name,
		Email:              input.Email,
		Phone:              input.Phone,
		Organization:       input.Organization,
		ProjectTitle:       input.ProjectTitle,
		ProjectDescription: input.ProjectDescription,
		Stage:              stage,
		Status:             models.StatusPending,
		Visible:            false,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if image != nil {
			img := models.Image{
				FileKey:      image.Key,
				FileURL:      image.URL,
				MimeType:     image.MimeType,
				FileSize:     image.Size,
				OriginalName: image.OriginalName,
			}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
			submission.ImageID = &img.ImageID
		}

		if err := tx.Create(&submission).Error; err != nil {
			return err
		}

		for i := range files {
			file := models.ProjectFile{
				FileKey:      files[i].Key,
				FileURL:      files[i].URL,
				MimeType:     files[i].MimeType,
				FileSize:     files[i].Size,
				OriginalName: files[i].OriginalName,
			}
			if err := tx.Create(&file).Error; err != nil {
				return err
			}
			link := models.SubmissionFile{
				SubmissionID:  submission.SubmissionID,
				ProjectFileID: file.ProjectFileID,
				Label:         files[i].Label,
				DisplayOrder:  i,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if dup := duplicateIdentityError(err); dup != nil {
			return nil, dup
		}
		return nil, &PersistenceError{Err: err}
	}

	return &submission, nil
}

// cleanupUploads best-effort deletes every tracked key. Failures are logged
// and never escalated; the caller reports the original pipeline error, not
// the cleanup outcome. Deleting an already-absent key is a no-op, so the
// cleanup can run again safely. Uses a fresh context per delete so a
// canceled request context cannot stop the compensation.
func (s *SubmissionService) cleanupUploads(keys []string) {
	for _, key := range keys {
		ctx, cancel := context.WithTimeout(context.Background(), s.storeTimeout)
		if err := s.store.Delete(ctx, key); err != nil {
			log.Printf("compensating cleanup failed for object %s: %v", key, err)
		}
		cancel()
	}
}
