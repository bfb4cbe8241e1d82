package services

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"innovation-registry-api/cache"
	"innovation-registry-api/config"
	"innovation-registry-api/models"

	"gorm.io/gorm"
)

// ListingCacheKey is the single key holding the rendered public listing.
const ListingCacheKey = "public:listing:v1"

func listingTTL() time.Duration {
	if secs, _ := strconv.Atoi(os.Getenv("LISTING_CACHE_TTL_SECONDS")); secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 5 * time.Minute
}

// ListingService serves the moderated public listing through a read-through
// cache.
type ListingService struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewListingService(db *gorm.DB, c cache.Cache) *ListingService {
	if db == nil {
		db = config.DB
	}
	if c == nil && config.RDB != nil {
		c = cache.NewRedisCache(config.RDB)
	}
	return &ListingService{db: db, cache: c}
}

// publicSubmission is the public projection of an approved submission.
// Contact details stay private.
type publicSubmission struct {
	SubmissionID       uint       `json:"submission_id"`
	Kind               string     `json:"kind"`
	Name               string     `json:"name"`
	Organization       *string    `json:"organization,omitempty"`
	ProjectTitle       string     `json:"project_title"`
	ProjectDescription *string    `json:"project_description,omitempty"`
	Stage              string     `json:"stage"`
	ImageURL           *string    `json:"image_url,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
}

// PublicListing returns the listing as a rendered JSON document, from cache
// when warm.
func (s *ListingService) PublicListing(ctx context.Context) (string, error) {
	if s.cache == nil {
		return s.produce(ctx)
	}
	return s.cache.GetOrSet(ctx, ListingCacheKey, listingTTL(), s.produce)
}

func (s *ListingService) produce(ctx context.Context) (string, error) {
	var submissions []models.Submission
	if err := s.db.WithContext(ctx).
		Preload("Image").
		Where("visible = ?", true).
		Order("moderated_at DESC, submission_id DESC").
		Find(&submissions).Error; err != nil {
		return "", &PersistenceError{Err: err}
	}

	items := make([]publicSubmission, 0, len(submissions))
	for _, sub := range submissions {
		item := publicSubmission{
			SubmissionID:       sub.SubmissionID,
			Kind:               sub.Kind,
			Name:               sub.Name,
			Organization:       sub.Organization,
			ProjectTitle:       sub.ProjectTitle,
			ProjectDescription: sub.ProjectDescription,
			Stage:              sub.Stage,
			ApprovedAt:         sub.ModeratedAt,
		}
		if sub.Image != nil {
			url := sub.Image.FileURL
			item.ImageURL = &url
		}
		items = append(items, item)
	}

	payload, err := json.Marshal(map[string]interface{}{
		"success": true,
		"data":    items,
		"total":   len(items),
	})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}
