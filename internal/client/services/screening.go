package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/respirex/respirex-client/internal/client/api"
	"github.com/respirex/respirex-client/internal/client/models"
	"github.com/respirex/respirex-client/internal/filex"
)

// ScreeningService drives the TB screening flow: X-ray submission, result
// history, and report retrieval.
type ScreeningService interface {
	// Submit reads the X-ray image at imagePath and sends it with the
	// symptom answers for prediction.
	Submit(ctx context.Context, imagePath string, symptoms map[string]any) (*models.TestResult, error)

	History(ctx context.Context) ([]models.TestResult, error)

	// SaveReport downloads the PDF report for a screening into the local
	// reports directory and returns the saved path.
	SaveReport(ctx context.Context, id int64) (string, error)

	EmailReport(ctx context.Context, id int64) error

	Stats(ctx context.Context) (*models.Stats, error)
}

type screeningService struct {
	client api.Client
}

func NewScreeningService(client api.Client) ScreeningService {
	return &screeningService{client: client}
}

func (s *screeningService) Submit(ctx context.Context, imagePath string, symptoms map[string]any) (*models.TestResult, error) {
	image, err := filex.ReadImage(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read x-ray: %w", err)
	}

	result, err := s.client.Predict(ctx, image, filepath.Base(imagePath), symptoms)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	return result, nil
}

func (s *screeningService) History(ctx context.Context) ([]models.TestResult, error) {
	results, err := s.client.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return results, nil
}

func (s *screeningService) SaveReport(ctx context.Context, id int64) (string, error) {
	data, err := s.client.Report(ctx, id)
	if err != nil {
		return "", fmt.Errorf("download report: %w", err)
	}

	dir, err := filex.EnsureSubDir("reports")
	if err != nil {
		return "", err
	}

	return filex.SaveReport(dir, fmt.Sprintf("report_%d.pdf", id), data)
}

func (s *screeningService) EmailReport(ctx context.Context, id int64) error {
	if err := s.client.EmailReport(ctx, id); err != nil {
		return fmt.Errorf("email report: %w", err)
	}
	return nil
}

func (s *screeningService) Stats(ctx context.Context) (*models.Stats, error) {
	stats, err := s.client.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return stats, nil
}
