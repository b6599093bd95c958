package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/ignitecall/internal/client/api"
	"github.com/maynagashev/ignitecall/internal/forms"
	"github.com/maynagashev/ignitecall/models"
)

const dateTimeLayout = "02.01.2006 15:04"

// updateConfirmStep обрабатывает сообщения шага подтверждения бронирования.
func (m *model) updateConfirmStep(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return updateFocusedInput(m.confirm.inputs, m.confirm.focused, msg)
	}

	switch keyMsg.String() {
	case keyEsc:
		return func() tea.Msg { return schedulingCanceledMsg{} }
	case keyEnter:
		if m.confirm.focused < numConfirmFields-1 {
			m.confirm.focused = nextField(m.confirm.focused, numConfirmFields)
			return focusInput(m.confirm.inputs, m.confirm.focused)
		}
		return m.submitConfirm()
	}

	if focused, cmd, handled := handleFormFocusKeys(m.confirm.inputs, m.confirm.focused, keyMsg.String()); handled {
		m.confirm.focused = focused
		return cmd
	}
	return updateFocusedInput(m.confirm.inputs, m.confirm.focused, msg)
}

func (m *model) submitConfirm() tea.Cmd {
	if m.confirm.isSubmitting || m.selectedDateTime == nil {
		return nil
	}

	form := forms.ConfirmSchedulingForm{
		Name:         m.confirm.inputs[confirmFieldName].Value(),
		Email:        m.confirm.inputs[confirmFieldEmail].Value(),
		Observations: m.confirm.inputs[confirmFieldObservations].Value(),
	}
	if err := forms.Validate(&form); err != nil {
		m.confirm.errors, _ = forms.AsFieldErrors(err)
		return nil
	}

	m.confirm.errors = nil
	m.confirm.isSubmitting = true
	return m.makeScheduleCmd(m.scheduleUsername, models.CreateSchedulingRequest{
		Name:         form.Name,
		Email:        form.Email,
		Observations: form.Observations,
		Date:         *m.selectedDateTime,
	})
}

func (m *model) handleSchedulingCreated(msg schedulingCreatedMsg) tea.Cmd {
	m.confirm.isSubmitting = false
	m.cancelDateTime()
	m.calendar.availability = nil
	m.calendar.pickingHour = false
	slog.Info("Встреча назначена", "id", msg.scheduling.ID)

	when := msg.scheduling.Date.In(m.loc).Format(dateTimeLayout)
	return tea.Batch(
		m.setStatusMessage("Встреча назначена на "+when),
		m.makeLoadBlockedDatesCmd(m.scheduleUsername, m.calendar.month),
	)
}

func (m *model) handleSchedulingError(msg schedulingErrorMsg) tea.Cmd {
	m.confirm.isSubmitting = false
	if message, ok := api.ServerMessage(msg.err); ok {
		m.showAlert(message)
		return nil
	}
	slog.Error("Ошибка бронирования", "error", msg.err)
	return nil
}

func (m *model) viewConfirmStep() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(m.selectedDateTime.Format(dateTimeLayout)))

	labels := []string{"Ваше имя", "Email", "Комментарий"}
	fields := []string{forms.FieldName, forms.FieldEmail, forms.FieldObservations}
	for i, input := range m.confirm.inputs {
		b.WriteString(labels[i])
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n")
		if errMsg := m.confirm.errors.Get(fields[i]); errMsg != "" {
			b.WriteString(errorStyle.Render(errMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.confirm.isSubmitting {
		b.WriteString(subtleStyle.Render("Отправка..."))
	} else {
		b.WriteString("[ Отмена (Esc) ]  [ Подтвердить ]")
	}
	b.WriteString("\n")
	return b.String()
}
