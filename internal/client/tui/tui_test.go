package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/ignitecall/internal/client/session"
)

func TestRestoreSession(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Save(context.Background(), session.Session{
		Username: "john",
		Token:    "saved-token",
		SavedAt:  testNow,
	}))

	client := new(MockAPIClient)
	m := initModel(client, store, time.UTC)
	m.restoreSession()

	assert.Equal(t, "saved-token", client.AuthToken())
	require.NotNil(t, m.registeredUser)
	assert.Equal(t, "john", m.registeredUser.Username)
}

func TestRestoreSession_NoFile(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	client := new(MockAPIClient)
	m := initModel(client, store, time.UTC)

	m.restoreSession()

	assert.Empty(t, client.AuthToken())
	assert.Nil(t, m.registeredUser)
}

func TestUpdate_GlobalMessages(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.IsType(t, tea.QuitMsg{}, runCmd(t, cmd))

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)

	m.setStatusMessage("Готово")
	m.Update(clearStatusMsg{seq: m.statusSeq})
	assert.Empty(t, m.status)
}

func TestUpdate_StaleClearStatusIgnored(t *testing.T) {
	m, _ := newTestModel(t)

	m.setStatusMessage("Первый")
	first := m.statusSeq
	m.setStatusMessage("Второй")

	// Таймер первого статуса не стирает второй
	m.Update(clearStatusMsg{seq: first})
	assert.Equal(t, "Второй", m.status)

	m.Update(clearStatusMsg{seq: m.statusSeq})
	assert.Empty(t, m.status)
}

func TestView_HelpText(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Contains(t, m.View(), m.helpTextMap[claimScreen])

	m.navigate(routeConnectCalendar)
	assert.Contains(t, m.View(), m.helpTextMap[connectCalendarScreen])
}

func TestRenderSteps(t *testing.T) {
	assert.Contains(t, renderSteps(3, 4), "Шаг 3 из 4")
}
