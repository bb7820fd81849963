package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
	"athletrack/backend/internal/storage"
)

const (
	exportFormatVersion = "1.0"
	exportToolName      = "athletrack"
	exportContentType   = "application/json"
)

// ExportDocument is the serialized form of everything a user owns.
type ExportDocument struct {
	Version     string              `json:"version"`
	ExportedAt  time.Time           `json:"exportedAt"`
	Tool        string              `json:"tool"`
	UserID      int64               `json:"userId"`
	Exercises   []domain.Exercise   `json:"exercises"`
	Workouts    []domain.Workout    `json:"workouts"`
	BodyMetrics []domain.BodyMetric `json:"bodyMetrics"`
}

// ExportResult points at the uploaded document.
type ExportResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ExportService interface {
	// BuildDocument collects the caller's private exercises, workouts and body metrics.
	BuildDocument(ctx context.Context, userID int64) (*ExportDocument, error)
	// Export uploads the document and returns a presigned download link.
	Export(ctx context.Context, userID int64) (*ExportResult, error)
}

type exportService struct {
	exerciseRepo repository.ExerciseRepository
	workoutRepo  repository.WorkoutRepository
	metricRepo   repository.BodyMetricRepository
	fileStorage  storage.FileStorage
	linkExpiry   time.Duration
	now          func() time.Time
}

func NewExportService(
	exerciseRepo repository.ExerciseRepository,
	workoutRepo repository.WorkoutRepository,
	metricRepo repository.BodyMetricRepository,
	fileStorage storage.FileStorage,
) ExportService {
	return &exportService{
		exerciseRepo: exerciseRepo,
		workoutRepo:  workoutRepo,
		metricRepo:   metricRepo,
		fileStorage:  fileStorage,
		linkExpiry:   storage.DefaultPresignedURLExpiry,
		now:          time.Now,
	}
}

func (s *exportService) BuildDocument(ctx context.Context, userID int64) (*ExportDocument, error) {
	visible, err := s.exerciseRepo.ListVisible(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	own := make([]domain.Exercise, 0, len(visible))
	for _, ex := range visible {
		if ex.OwnedBy(userID) {
			own = append(own, ex)
		}
	}

	workouts, err := s.workoutRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	metrics, err := s.metricRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list body metrics: %w", err)
	}

	return &ExportDocument{
		Version:     exportFormatVersion,
		ExportedAt:  s.now().UTC(),
		Tool:        exportToolName,
		UserID:      userID,
		Exercises:   own,
		Workouts:    workouts,
		BodyMetrics: metrics,
	}, nil
}

func (s *exportService) Export(ctx context.Context, userID int64) (*ExportResult, error) {
	if s.fileStorage == nil {
		return nil, storage.ErrStorageNotConfigured
	}

	doc, err := s.BuildDocument(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}

	key := fmt.Sprintf("exports/%d/%s-%s.json", userID, doc.ExportedAt.Format("20060102T150405Z"), uuid.NewString())
	if err := s.fileStorage.PutObject(ctx, key, exportContentType, body); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, s.linkExpiry)
	if err != nil {
		// Without a link the object is unreachable, so do not leave it behind.
		if delErr := s.fileStorage.DeleteObject(ctx, key); delErr != nil {
			log.Warnf("export: failed to remove orphaned object %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("presign export: %w", err)
	}

	return &ExportResult{
		Key:       key,
		URL:       url,
		ExpiresAt: s.now().Add(s.linkExpiry).UTC(),
	}, nil
}
