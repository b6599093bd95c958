package tui

import (
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/ignitecall/internal/client/api"
	"github.com/maynagashev/ignitecall/internal/client/session"
	"github.com/maynagashev/ignitecall/internal/forms"
	"github.com/maynagashev/ignitecall/models"
)

// fillRegisterForm открывает регистрацию и вводит имя.
func fillRegisterForm(m *model, username, name string) {
	m.navigate(registerPath(username))
	pressKey(m, tea.KeyTab)
	typeText(m, name)
}

func TestRegisterScreen_FocusNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	m.navigate(routeRegister)

	pressKey(m, tea.KeyTab)
	assert.Equal(t, registerFieldName, m.registerFocused)
	assert.True(t, m.registerInputs[registerFieldName].Focused())
	assert.False(t, m.registerInputs[registerFieldUsername].Focused())

	pressKey(m, tea.KeyTab)
	assert.Equal(t, registerFieldUsername, m.registerFocused)

	pressKey(m, tea.KeyShiftTab)
	assert.Equal(t, registerFieldName, m.registerFocused)

	pressKey(m, tea.KeyEsc)
	assert.Equal(t, claimScreen, m.state)
}

func TestRegisterScreen_InvalidFormSendsNothing(t *testing.T) {
	m, client := newTestModel(t)
	fillRegisterForm(m, "jo", "Al")

	cmd := pressKey(m, tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.False(t, m.isSubmitting)
	assert.Equal(t, forms.MsgUsernameTooShort, m.registerErrors.Get(forms.FieldUsername))
	assert.Equal(t, forms.MsgNameTooShort, m.registerErrors.Get(forms.FieldName))
	client.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterScreen_RevalidatesAfterSubmit(t *testing.T) {
	m, client := newTestModel(t)
	fillRegisterForm(m, "ab", "John Doe")

	assert.Nil(t, pressKey(m, tea.KeyEnter))
	assert.Equal(t, forms.MsgUsernameTooShort, m.registerErrors.Get(forms.FieldUsername))

	// Исправляем имя пользователя: ошибка исчезает без повторной отправки
	pressKey(m, tea.KeyShiftTab)
	pressRune(m, 'c')

	assert.Equal(t, "abc", m.registerInputs[registerFieldUsername].Value())
	assert.False(t, m.registerErrors.Has(forms.FieldUsername))
	assert.NotContains(t, m.View(), forms.MsgUsernameTooShort)
	client.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)

	// Новая ошибка тоже появляется сразу
	pressKey(m, tea.KeyTab)
	for range "John Doe" {
		pressKey(m, tea.KeyBackspace)
	}
	assert.Equal(t, forms.MsgNameTooShort, m.registerErrors.Get(forms.FieldName))
}

func TestRegisterScreen_NoErrorsBeforeSubmit(t *testing.T) {
	m, _ := newTestModel(t)
	fillRegisterForm(m, "ab", "J")

	assert.Empty(t, m.registerErrors)
}

func TestRegisterScreen_Success(t *testing.T) {
	m, client := newTestModel(t)
	sessionPath := filepath.Join(t.TempDir(), "session.json")
	m.sessionStore = session.NewStore(sessionPath)
	client.token = "session-token"
	client.On("CreateUser", mock.Anything, "John Doe", "john-doe").
		Return(&models.User{ID: 1, Username: "john-doe", Name: "John Doe"}, nil).Once()

	fillRegisterForm(m, "John-Doe", "John Doe")
	cmd := pressKey(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.True(t, m.isSubmitting)

	// Повторная отправка во время запроса игнорируется
	assert.Nil(t, pressKey(m, tea.KeyEnter))

	msg := runCmd(t, cmd)
	require.IsType(t, userCreatedMsg{}, msg)
	_, saveCmd := m.Update(msg)

	assert.False(t, m.isSubmitting)
	assert.Equal(t, connectCalendarScreen, m.state)
	assert.Equal(t, "john-doe", m.registeredUser.Username)

	assert.Contains(t, runBatch(t, saveCmd), sessionSavedMsg{})
	sess, err := m.sessionStore.Load()
	require.NoError(t, err)
	assert.Equal(t, "session-token", sess.Token)
	assert.Equal(t, "john-doe", sess.Username)
	client.AssertExpectations(t)
}

func TestRegisterScreen_ErrorWithMessageShowsAlert(t *testing.T) {
	m, client := newTestModel(t)
	respErr := &api.ResponseError{Status: http.StatusBadRequest, Message: "username already taken"}
	client.On("CreateUser", mock.Anything, "John Doe", "john").Return(nil, respErr).Once()

	fillRegisterForm(m, "john", "John Doe")
	cmd := pressKey(m, tea.KeyEnter)
	m.Update(runCmd(t, cmd))

	assert.Equal(t, registerScreen, m.state)
	assert.False(t, m.isSubmitting)
	assert.Equal(t, "username already taken", m.alertMessage)
	assert.Contains(t, m.View(), "username already taken")

	// Пока сообщение открыто, форма не получает ввод
	typeText(m, "x")
	assert.Equal(t, "John Doe", m.registerInputs[registerFieldName].Value())

	pressKey(m, tea.KeyEnter)
	assert.Empty(t, m.alertMessage)
	assert.Equal(t, registerScreen, m.state)
}

func TestRegisterScreen_ErrorWithoutMessageIsOnlyLogged(t *testing.T) {
	m, client := newTestModel(t)
	client.On("CreateUser", mock.Anything, "John Doe", "john").
		Return(nil, errors.New("connection refused")).Once()

	fillRegisterForm(m, "john", "John Doe")
	cmd := pressKey(m, tea.KeyEnter)
	m.Update(runCmd(t, cmd))

	assert.Empty(t, m.alertMessage)
	assert.False(t, m.isSubmitting)
	assert.Equal(t, registerScreen, m.state)
}

func TestRegisterScreen_View(t *testing.T) {
	m, _ := newTestModel(t)
	m.navigate(routeRegister)

	view := m.View()

	assert.Contains(t, view, "Шаг 1 из 4")
	assert.Contains(t, view, "Следующий шаг")
}
