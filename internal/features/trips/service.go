package trips

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xyz-asif/travlr/internal/pkg/cloudinary"
	"github.com/xyz-asif/travlr/internal/pkg/logger"
	"github.com/xyz-asif/travlr/internal/pkg/pagination"
	"github.com/xyz-asif/travlr/internal/pkg/validator"
	apperrors "github.com/xyz-asif/travlr/pkg/errors"
)

// ErrDuplicateCode is returned when a trip code is already taken.
var ErrDuplicateCode = fmt.Errorf("%w: trip code already exists", apperrors.ErrDuplicate)

// Store persists trips. Implementations return apperrors.ErrNotFound for an
// unknown code and apperrors.ErrDuplicate on a unique-index violation.
type Store interface {
	FindByCode(ctx context.Context, code string) (*Trip, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Insert(ctx context.Context, trip *Trip) error
	UpdateByCode(ctx context.Context, code string, trip Trip) (*Trip, error)
	List(ctx context.Context, startAfter *time.Time) ([]Trip, error)
	Search(ctx context.Context, query string, skip, limit int64) ([]Trip, int64, error)
}

// ImageUploader stores trip images. Satisfied by *cloudinary.Service.
type ImageUploader interface {
	UploadImage(ctx context.Context, file io.Reader, publicID string) (*cloudinary.UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

type Service struct {
	store    Store
	uploader ImageUploader
	now      func() time.Time
}

// NewService builds a trip service. uploader may be nil when image storage
// is not configured.
func NewService(store Store, uploader ImageUploader) *Service {
	return &Service{store: store, uploader: uploader, now: time.Now}
}

// Now is the clock used for derived fields.
func (s *Service) Now() time.Time {
	return s.now()
}

// List returns every trip, or only those starting after now.
func (s *Service) List(ctx context.Context, upcomingOnly bool) ([]Trip, error) {
	var after *time.Time
	if upcomingOnly {
		now := s.now()
		after = &now
	}

	list, err := s.store.List(ctx, after)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return list, nil
}

// Get returns one trip by code.
func (s *Service) Get(ctx context.Context, code string) (*Trip, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.ErrNotFound
	}
	return s.store.FindByCode(ctx, code)
}

// Create validates req and inserts it. A missing image gets DefaultImage.
func (s *Service) Create(ctx context.Context, req TripRequest) (*Trip, error) {
	if req.Image == nil {
		req.Image = StringPtr(DefaultImage)
	}

	trip, err := ValidateTrip(req)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.ExistsByCode(ctx, trip.Code)
	if err != nil {
		return nil, fmt.Errorf("check trip code: %w", err)
	}
	if exists {
		return nil, ErrDuplicateCode
	}

	if err := s.store.Insert(ctx, &trip); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("insert trip: %w", err)
	}

	logger.Info("trip %s created", trip.Code)
	return &trip, nil
}

// Update merges patch onto the trip stored under code and validates the
// result. Submitting the stored values again leaves the record untouched.
func (s *Service) Update(ctx context.Context, code string, patch TripRequest) (*Trip, error) {
	stored, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	trip, err := ValidateTrip(MergeTrip(*stored, patch))
	if err != nil {
		return nil, err
	}

	if trip.SameContent(*stored) {
		return stored, nil
	}

	if trip.Code != stored.Code {
		exists, err := s.store.ExistsByCode(ctx, trip.Code)
		if err != nil {
			return nil, fmt.Errorf("check trip code: %w", err)
		}
		if exists {
			return nil, ErrDuplicateCode
		}
	}

	updated, err := s.store.UpdateByCode(ctx, stored.Code, trip)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, err
		case errors.Is(err, apperrors.ErrDuplicate):
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("update trip: %w", err)
	}

	logger.Info("trip %s updated", updated.Code)
	return updated, nil
}

// Search runs a text search over name, description and resort.
func (s *Service) Search(ctx context.Context, query string, page *pagination.Request) ([]Trip, *pagination.Pagination, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil, apperrors.NewFieldError("q", apperrors.ReasonRequired, "Search query is required")
	}

	list, total, err := s.store.Search(ctx, query, page.Skip(), int64(page.Limit))
	if err != nil {
		return nil, nil, fmt.Errorf("search trips: %w", err)
	}
	return list, pagination.New(page.Page, page.Limit, total), nil
}

// AttachImage uploads file and makes the hosted URL the trip's image.
func (s *Service) AttachImage(ctx context.Context, code string, file io.Reader) (*Trip, error) {
	if s.uploader == nil {
		return nil, cloudinary.ErrNotConfigured
	}

	stored, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	result, err := s.uploader.UploadImage(ctx, file, strings.ToLower(stored.Code))
	if err != nil {
		return nil, err
	}

	if !validator.HasAllowedExtension(result.URL, AllowedImageExtensions) {
		if delErr := s.uploader.Delete(ctx, result.PublicID); delErr != nil {
			logger.Warn("failed to remove rejected image %s: %v", result.PublicID, delErr)
		}
		return nil, apperrors.NewFieldError("image", apperrors.ReasonInvalidImageExtension,
			fmt.Sprintf("Image must end with one of: %s", strings.Join(AllowedImageExtensions, ", ")))
	}

	return s.Update(ctx, stored.Code, TripRequest{Image: StringPtr(result.URL)})
}
