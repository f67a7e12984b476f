package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bommerge/internal/domain"
	"bommerge/internal/service"
)

// MockMergeService is a mock implementation of service.MergeService.
type MockMergeService struct {
	mock.Mock
}

func (m *MockMergeService) Merge(ctx context.Context, files []service.FilePayload) (*domain.MergeResult, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MergeResult), args.Error(1)
}

func (m *MockMergeService) Export(rows []domain.MergedRow) ([]byte, error) {
	args := m.Called(rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
