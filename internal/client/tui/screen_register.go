package tui

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/ignitecall/internal/client/api"
	"github.com/maynagashev/ignitecall/internal/forms"
)

// showRegisterScreen открывает регистрацию. Непустой username подставляется в поле как есть.
func (m *model) showRegisterScreen(username string) tea.Cmd {
	m.state = registerScreen
	m.registerErrors = nil
	m.registerSubmitted = false
	m.isSubmitting = false
	if username != "" {
		m.registerInputs[registerFieldUsername].SetValue(username)
	}
	m.registerFocused = registerFieldUsername
	return focusInput(m.registerInputs, m.registerFocused)
}

// updateRegisterScreen обрабатывает сообщения экрана регистрации.
func (m *model) updateRegisterScreen(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateRegisterInput(msg)
	}

	switch keyMsg.String() {
	case keyEsc:
		return m.navigate(routeClaim)
	case keyEnter:
		if m.registerFocused < numRegisterFields-1 {
			m.registerFocused = nextField(m.registerFocused, numRegisterFields)
			return focusInput(m.registerInputs, m.registerFocused)
		}
		return m.submitRegistration()
	}

	if focused, cmd, handled := handleFormFocusKeys(m.registerInputs, m.registerFocused, keyMsg.String()); handled {
		m.registerFocused = focused
		return cmd
	}
	return m.updateRegisterInput(msg)
}

// updateRegisterInput передает ввод полю с фокусом. После первой отправки
// ошибки формы пересчитываются при каждом изменении.
func (m *model) updateRegisterInput(msg tea.Msg) tea.Cmd {
	cmd := updateFocusedInput(m.registerInputs, m.registerFocused, msg)
	if m.registerSubmitted {
		form := m.registerForm()
		m.registerErrors, _ = forms.AsFieldErrors(forms.Validate(&form))
	}
	return cmd
}

func (m *model) registerForm() forms.RegisterForm {
	return forms.RegisterForm{
		Username: m.registerInputs[registerFieldUsername].Value(),
		Name:     m.registerInputs[registerFieldName].Value(),
	}
}

// submitRegistration проверяет форму и отправляет запрос регистрации.
// Пока запрос выполняется, повторная отправка игнорируется.
func (m *model) submitRegistration() tea.Cmd {
	if m.isSubmitting {
		return nil
	}

	m.registerSubmitted = true
	form := m.registerForm()
	if err := forms.Validate(&form); err != nil {
		m.registerErrors, _ = forms.AsFieldErrors(err)
		return nil
	}

	m.registerErrors = nil
	m.isSubmitting = true
	return m.makeCreateUserCmd(form.Name, form.Username)
}

func (m *model) handleUserCreated(msg userCreatedMsg) tea.Cmd {
	m.isSubmitting = false
	m.registeredUser = msg.user
	slog.Info("Пользователь зарегистрирован", "username", msg.user.Username)

	return tea.Batch(
		m.makeSaveSessionCmd(msg.user.Username, msg.token),
		m.navigate(routeConnectCalendar),
	)
}

func (m *model) handleCreateUserError(msg createUserErrorMsg) tea.Cmd {
	m.isSubmitting = false
	if message, ok := api.ServerMessage(msg.err); ok {
		m.showAlert(message)
		return nil
	}
	slog.Error("Ошибка регистрации", "error", msg.err)
	return nil
}

func (m *model) viewRegisterScreen() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Добро пожаловать в Ignite Call!"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("Нужно несколько данных для создания профиля."))
	b.WriteString("\n\n")
	b.WriteString(renderSteps(1, registerSteps))
	b.WriteString("\n\n")

	labels := []string{"Имя пользователя", "Полное имя"}
	fields := []string{forms.FieldUsername, forms.FieldName}
	for i, input := range m.registerInputs {
		b.WriteString(labels[i])
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n")
		if errMsg := m.registerErrors.Get(fields[i]); errMsg != "" {
			b.WriteString(errorStyle.Render(errMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.isSubmitting {
		b.WriteString(subtleStyle.Render("Отправка..."))
	} else {
		b.WriteString("[ Следующий шаг ]")
	}
	b.WriteString("\n")
	return b.String()
}
