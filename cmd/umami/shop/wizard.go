package shop

import (
	tea "github.com/charmbracelet/bubbletea"

	"umami/internal/checkout"
	"umami/internal/handoff"
	"umami/internal/logging"
	"umami/internal/store"
)

// updatePanel handles keys while the cart panel is open. The active wizard
// step decides which keys do what.
func (m Model) updatePanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.wizard.Step()

	switch msg.String() {
	case "esc":
		if step == checkout.StepCart {
			m.closePanel()
			return m, nil
		}
		m.wizard.Back()
		m.syncAnswerInput()
		return m, nil
	}

	switch step {
	case checkout.StepCart:
		return m.updateCartStep(msg)
	case checkout.StepName, checkout.StepAddress, checkout.StepPhone:
		return m.updateTextStep(msg)
	case checkout.StepProductsConfirm:
		if msg.String() == "enter" {
			m.wizard.Next()
			m.syncAnswerInput()
		}
		return m, nil
	case checkout.StepPayment:
		return m.updatePaymentStep(msg)
	}
	return m, nil
}

// updateCartStep handles line edits on the cart review step.
func (m Model) updateCartStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := m.cart.Lines()
	if m.cartCursor >= len(lines) {
		m.cartCursor = len(lines) - 1
	}
	if m.cartCursor < 0 {
		m.cartCursor = 0
	}

	switch msg.String() {
	case "up", "k":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case "down", "j":
		if m.cartCursor < len(lines)-1 {
			m.cartCursor++
		}
	case "+", "right", "l":
		if m.cartCursor < len(lines) {
			m.cart.UpdateQuantity(lines[m.cartCursor].ProductID, 1)
		}
	case "-", "left", "h":
		if m.cartCursor < len(lines) {
			m.cart.UpdateQuantity(lines[m.cartCursor].ProductID, -1)
		}
	case "x", "delete":
		if m.cartCursor < len(lines) {
			m.cart.Remove(lines[m.cartCursor].ProductID)
		}
	case "v":
		m.cart.Clear()
	case "enter":
		m.wizard.Next()
		m.syncAnswerInput()
	}
	return m, nil
}

// updateTextStep feeds keys into the answer input and commits on enter.
func (m Model) updateTextStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		m.commitAnswer()
		m.wizard.Next()
		m.syncAnswerInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.answerInput, cmd = m.answerInput.Update(msg)
	m.commitAnswer()
	return m, cmd
}

// commitAnswer writes the answer input into the wizard field for the
// current step.
func (m *Model) commitAnswer() {
	v := m.answerInput.Value()
	switch m.wizard.Step() {
	case checkout.StepName:
		m.wizard.SetName(v)
	case checkout.StepAddress:
		m.wizard.SetAddress(v)
	case checkout.StepPhone:
		m.wizard.SetPhone(v)
	}
}

// syncAnswerInput reloads the answer input from the wizard state after a
// step change, so going back shows the previous answer.
func (m *Model) syncAnswerInput() {
	info := m.wizard.Info()
	switch m.wizard.Step() {
	case checkout.StepName:
		m.answerInput.SetValue(info.Name)
		m.answerInput.Focus()
	case checkout.StepAddress:
		m.answerInput.SetValue(info.Address)
		m.answerInput.Focus()
	case checkout.StepPhone:
		m.answerInput.SetValue(info.Phone)
		m.answerInput.Focus()
	default:
		m.answerInput.Blur()
	}
	m.answerInput.CursorEnd()
}

// updatePaymentStep selects a payment method and finalizes the order.
func (m Model) updatePaymentStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1", "e":
		m.wizard.SelectPayment(checkout.PaymentCash)
		return m, nil
	case "2", "t":
		m.wizard.SelectPayment(checkout.PaymentTransfer)
		return m, nil
	case "enter":
		return m.finalize()
	}
	return m, nil
}

// finalize builds the order, opens the WhatsApp deep link and records the
// order locally. The cart stays intact so a failed hand-off can be retried.
func (m Model) finalize() (tea.Model, tea.Cmd) {
	order, ok := m.wizard.Finalize()
	if !ok {
		return m, nil
	}
	m.lastOrder = &order

	open := m.opener
	if open == nil {
		open = handoff.Open
	}
	if err := open(order.URL); err != nil {
		logging.Get(logging.CategoryCheckout).Error("Failed to open WhatsApp link: %v", err)
		m.status = "No se pudo abrir WhatsApp. Copia el enlace del pedido."
	} else {
		m.status = "Pedido enviado a WhatsApp."
	}

	if m.local != nil {
		rec := store.OrderRecord{
			Reference:     order.Reference,
			CustomerName:  order.Name,
			Address:       order.Address,
			Phone:         order.Phone,
			PaymentMethod: order.PaymentMethod,
			Total:         order.Total,
			Message:       order.Message,
		}
		if err := m.local.RecordOrder(rec); err != nil {
			logging.Get(logging.CategoryStore).Error("Failed to record order %s: %v", order.Reference, err)
		}
	}

	logging.Checkout("Order %s finalized, total %d", order.Reference, order.Total)
	return m, nil
}
