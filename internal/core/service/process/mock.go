package process

import (
	"context"

	"hazard-watch/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) ProcessAndStore(ctx context.Context, localPath, originalName string, id domain.Identity) (*domain.ProcessResult, error) {
	args := m.Called(ctx, localPath, originalName, id)
	var res *domain.ProcessResult
	if args.Get(0) != nil {
		res = args.Get(0).(*domain.ProcessResult)
	}
	return res, args.Error(1)
}

type MockDetector struct {
	mock.Mock
}

func (m *MockDetector) Detect(ctx context.Context, localPath string, confidence float64) (*domain.DetectionReport, error) {
	args := m.Called(ctx, localPath, confidence)
	var report *domain.DetectionReport
	if args.Get(0) != nil {
		report = args.Get(0).(*domain.DetectionReport)
	}
	return report, args.Error(1)
}
