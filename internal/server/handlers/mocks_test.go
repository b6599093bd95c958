package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/maynagashev/ignitecall/models"
)

// MockUserService is a mock implementation of UserService interface.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, name, username string) (*models.User, error) {
	args := m.Called(ctx, name, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1) //nolint:errcheck // Acceptable for mocks
}

func (m *MockUserService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1) //nolint:errcheck // Acceptable for mocks
}

func (m *MockUserService) SetTimeIntervals(ctx context.Context, userID int64, intervals []models.TimeInterval) error {
	return m.Called(ctx, userID, intervals).Error(0)
}

// MockScheduleService is a mock implementation of ScheduleService interface.
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) Availability(
	ctx context.Context,
	username string,
	date time.Time,
) (*models.Availability, error) {
	args := m.Called(ctx, username, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Availability), args.Error(1) //nolint:errcheck // Acceptable for mocks
}

func (m *MockScheduleService) BlockedDates(
	ctx context.Context,
	username string,
	year int,
	month time.Month,
) (*models.BlockedDates, error) {
	args := m.Called(ctx, username, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlockedDates), args.Error(1) //nolint:errcheck // Acceptable for mocks
}

func (m *MockScheduleService) Schedule(
	ctx context.Context,
	username string,
	req models.CreateSchedulingRequest,
) (*models.Scheduling, error) {
	args := m.Called(ctx, username, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Scheduling), args.Error(1) //nolint:errcheck // Acceptable for mocks
}

func (m *MockScheduleService) Invite(ctx context.Context, schedulingID string) (io.ReadCloser, error) {
	args := m.Called(ctx, schedulingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1) //nolint:errcheck // Acceptable for mocks
}

type stubSessions struct {
	token string
	err   error
}

func (s stubSessions) Issue(_ int64) (string, error) { return s.token, s.err }

func (s stubSessions) TTL() time.Duration { return time.Hour }
