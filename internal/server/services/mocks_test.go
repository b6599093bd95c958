package services_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/maynagashev/ignitecall/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1) //nolint:errcheck // Acceptable for mocks
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1) //nolint:errcheck // Acceptable for mocks
}

type MockTimeIntervalRepository struct {
	mock.Mock
}

func (m *MockTimeIntervalRepository) ReplaceTimeIntervals(
	ctx context.Context,
	userID int64,
	intervals []models.TimeInterval,
) error {
	return m.Called(ctx, userID, intervals).Error(0)
}

func (m *MockTimeIntervalRepository) ListTimeIntervals(
	ctx context.Context,
	userID int64,
) ([]models.TimeInterval, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TimeInterval), args.Error(1) //nolint:errcheck // Acceptable for mocks
}

type MockSchedulingRepository struct {
	mock.Mock
}

func (m *MockSchedulingRepository) CreateScheduling(ctx context.Context, s *models.Scheduling) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSchedulingRepository) ListSchedulingsBetween(
	ctx context.Context,
	userID int64,
	from, to time.Time,
) ([]models.Scheduling, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Scheduling), args.Error(1) //nolint:errcheck // Acceptable for mocks
}

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) UploadFile(
	ctx context.Context,
	objectKey string,
	reader io.Reader,
	size int64,
	contentType string,
) error {
	args := m.Called(ctx, objectKey, reader, size, contentType)
	_, _ = io.Copy(io.Discard, reader)
	return args.Error(0)
}

func (m *MockFileStorage) DownloadFile(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	args := m.Called(ctx, objectKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1) //nolint:errcheck // Acceptable for mocks
}
