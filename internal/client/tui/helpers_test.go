package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/ignitecall/models"
)

// MockAPIClient - мок api.Client.
type MockAPIClient struct {
	mock.Mock
	token string
}

func (m *MockAPIClient) CreateUser(ctx context.Context, name, username string) (*models.User, error) {
	args := m.Called(ctx, name, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAPIClient) GetProfile(ctx context.Context, username string) (*models.PublicProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PublicProfile), args.Error(1)
}

func (m *MockAPIClient) SetTimeIntervals(ctx context.Context, intervals []models.TimeInterval) error {
	args := m.Called(ctx, intervals)
	return args.Error(0)
}

func (m *MockAPIClient) GetAvailability(
	ctx context.Context,
	username string,
	date time.Time,
) (*models.Availability, error) {
	args := m.Called(ctx, username, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Availability), args.Error(1)
}

func (m *MockAPIClient) GetBlockedDates(
	ctx context.Context,
	username string,
	year int,
	month time.Month,
) (*models.BlockedDates, error) {
	args := m.Called(ctx, username, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlockedDates), args.Error(1)
}

func (m *MockAPIClient) Schedule(
	ctx context.Context,
	username string,
	req models.CreateSchedulingRequest,
) (*models.Scheduling, error) {
	args := m.Called(ctx, username, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Scheduling), args.Error(1)
}

func (m *MockAPIClient) SetAuthToken(token string) {
	m.token = token
}

func (m *MockAPIClient) AuthToken() string {
	return m.token
}

// testNow - среда, 14 октября 2026, 10:30 UTC.
//
//nolint:gochecknoglobals // Фиксированное время для тестов
var testNow = time.Date(2026, time.October, 14, 10, 30, 0, 0, time.UTC)

// newTestModel создает модель с мок-клиентом и фиксированным временем.
func newTestModel(t *testing.T) (*model, *MockAPIClient) {
	t.Helper()
	client := new(MockAPIClient)
	m := initModel(client, nil, time.UTC)
	m.now = func() time.Time { return testNow }
	return m, client
}

// pressKey отправляет в модель нажатие специальной клавиши.
func pressKey(m *model, key tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: key})
	return cmd
}

// pressRune отправляет в модель нажатие символьной клавиши.
func pressRune(m *model, r rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return cmd
}

// typeText вводит текст в поле с фокусом.
func typeText(m *model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// runCmd выполняет команду и возвращает ее сообщение.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

// runBatch выполняет все команды пакета и возвращает их сообщения.
func runBatch(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	msg := runCmd(t, cmd)
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	msgs := make([]tea.Msg, 0, len(batch))
	for _, c := range batch {
		if c != nil {
			msgs = append(msgs, c())
		}
	}
	return msgs
}
