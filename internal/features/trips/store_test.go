package trips

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/travlr/internal/pkg/cloudinary"
	apperrors "github.com/xyz-asif/travlr/pkg/errors"
)

// memoryStore is an in-memory Store with the same error contract as Repository.
type memoryStore struct {
	mu      sync.Mutex
	trips   map[string]Trip
	writes  int
	listErr error
}

var _ Store = (*memoryStore)(nil)

func newMemoryStore() *memoryStore {
	return &memoryStore{trips: map[string]Trip{}}
}

func (m *memoryStore) FindByCode(_ context.Context, code string) (*Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[code]
	if !ok {
		return nil, fmt.Errorf("trip %q: %w", code, apperrors.ErrNotFound)
	}
	return &t, nil
}

func (m *memoryStore) ExistsByCode(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.trips[code]
	return ok, nil
}

func (m *memoryStore) Insert(_ context.Context, trip *Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[trip.Code]; ok {
		return apperrors.ErrDuplicate
	}
	trip.ID = primitive.NewObjectID()
	trip.CreatedAt = time.Now()
	trip.UpdatedAt = trip.CreatedAt
	m.trips[trip.Code] = *trip
	m.writes++
	return nil
}

func (m *memoryStore) UpdateByCode(_ context.Context, code string, trip Trip) (*Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.trips[code]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if _, taken := m.trips[trip.Code]; taken && trip.Code != code {
		return nil, apperrors.ErrDuplicate
	}
	trip.ID = stored.ID
	trip.CreatedAt = stored.CreatedAt
	trip.UpdatedAt = time.Now()
	delete(m.trips, code)
	m.trips[trip.Code] = trip
	m.writes++
	return &trip, nil
}

func (m *memoryStore) List(_ context.Context, startAfter *time.Time) ([]Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	list := []Trip{}
	for _, t := range m.trips {
		if startAfter == nil || t.Start.After(*startAfter) {
			list = append(list, t)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Start.Equal(list[j].Start) {
			return list[i].Start.Before(list[j].Start)
		}
		return list[i].Code < list[j].Code
	})
	return list, nil
}

func (m *memoryStore) Search(ctx context.Context, query string, skip, limit int64) ([]Trip, int64, error) {
	all, err := m.List(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	q := strings.ToLower(query)
	var hits []Trip
	for _, t := range all {
		text := strings.ToLower(t.Name + " " + t.Description + " " + t.Resort)
		if strings.Contains(text, q) {
			hits = append(hits, t)
		}
	}
	total := int64(len(hits))
	if skip >= total {
		return []Trip{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return hits[skip:end], total, nil
}

// fakeUploader records uploads and returns a URL with the configured format.
type fakeUploader struct {
	format  string
	deleted []string
}

func (f *fakeUploader) UploadImage(_ context.Context, file io.Reader, publicID string) (*cloudinary.UploadResult, error) {
	if _, err := io.ReadAll(file); err != nil {
		return nil, err
	}
	id := "travlr/trips/" + publicID
	return &cloudinary.UploadResult{
		URL:      "https://res.cloudinary.com/demo/image/upload/v1/" + id + "." + f.format,
		PublicID: id,
		Format:   f.format,
	}, nil
}

func (f *fakeUploader) Delete(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}
