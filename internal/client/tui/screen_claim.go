package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/ignitecall/internal/forms"
)

const claimHint = "Введите желаемое имя пользователя"

func (m *model) showClaimScreen() tea.Cmd {
	m.state = claimScreen
	m.claimErrors = nil
	m.claimSubmitted = false
	return m.claimInput.Focus()
}

// updateClaimScreen обрабатывает сообщения экрана резервирования имени.
func (m *model) updateClaimScreen(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == keyEnter {
		return m.submitClaim()
	}

	var cmd tea.Cmd
	m.claimInput, cmd = m.claimInput.Update(msg)
	// После первой отправки ошибки пересчитываются при каждом изменении
	if m.claimSubmitted {
		form := forms.ClaimUsernameForm{Username: m.claimInput.Value()}
		m.claimErrors, _ = forms.AsFieldErrors(forms.Validate(&form))
	}
	return cmd
}

// submitClaim проверяет имя и переходит к регистрации с ним.
func (m *model) submitClaim() tea.Cmd {
	m.claimSubmitted = true

	form := forms.ClaimUsernameForm{Username: m.claimInput.Value()}
	err := forms.Validate(&form)
	if err != nil {
		m.claimErrors, _ = forms.AsFieldErrors(err)
		return nil
	}
	m.claimErrors = nil
	return m.navigate(registerPath(form.Username))
}

func (m *model) viewClaimScreen() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Ignite Call"))
	b.WriteString("\n\n")
	b.WriteString("Подключите свой календарь и позвольте людям бронировать встречи в ваше свободное время.")
	b.WriteString("\n\n")
	b.WriteString(m.claimInput.View())
	b.WriteString("\n")
	if errMsg := m.claimErrors.Get(forms.FieldUsername); errMsg != "" {
		b.WriteString(errorStyle.Render(errMsg))
	} else {
		b.WriteString(subtleStyle.Render(claimHint))
	}
	b.WriteString("\n")
	return b.String()
}
