package shop

import (
	"fmt"
	"strings"

	"umami/internal/checkout"
	"umami/internal/money"
)

// listHeight is the number of rows available for the product list.
func (m Model) listHeight() int {
	h := m.height - 9
	if h < 5 {
		h = 5
	}
	return h
}

// View renders the storefront. With the cart panel open the panel replaces
// the product list.
func (m Model) View() string {
	if !m.ready {
		return "Cargando..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.panelOpen {
		b.WriteString(m.renderPanel())
	} else {
		b.WriteString(m.renderCatalog())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(m.cfg.Name)
	count := m.cart.Count()
	badge := m.styles.Muted.Render(fmt.Sprintf("Carrito: %d", count))
	if count > 0 {
		badge = m.styles.Price.Render(fmt.Sprintf("Carrito: %d · %s", count, money.Format(m.cart.Total())))
	}
	return title + "  " + badge
}

func (m Model) renderCatalog() string {
	var b strings.Builder

	// Category tabs
	var tabs []string
	for i, c := range m.categories {
		if i == m.categoryIdx {
			tabs = append(tabs, m.styles.Selected.Render(" "+c+" "))
		} else {
			tabs = append(tabs, m.styles.Muted.Render(" "+c+" "))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n")

	// Search
	label := "Buscar: "
	if m.searchFocused {
		label = m.styles.Bold.Render("Buscar: ")
	}
	b.WriteString(label + m.searchInput.View())
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(m.styles.Muted.Render("No hay productos que coincidan."))
		b.WriteString("\n")
		return b.String()
	}

	// Product list, windowed around the cursor
	height := m.listHeight()
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := start + height
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := start; i < end; i++ {
		p := m.filtered[i]
		marker := "  "
		name := p.Name
		if i == m.cursor {
			marker = m.styles.Selected.Render("> ")
			name = m.styles.Bold.Render(p.Name)
		}
		line := marker + name
		if p.IsNew {
			line += " " + m.styles.BadgeNew.Render("Nuevo")
		}
		if !p.Available {
			line += " " + m.styles.BadgeOut.Render("Agotado")
		}
		line += "  " + m.styles.Price.Render(money.Format(p.Price))
		line += "  " + m.styles.Muted.Render(p.Category)
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Detail for the selected product
	if m.cursor < len(m.filtered) {
		p := m.filtered[m.cursor]
		if p.Description != "" {
			b.WriteString("\n")
			b.WriteString(m.styles.Muted.Render(p.Description))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderPanel draws the cart panel for the active wizard step.
func (m Model) renderPanel() string {
	var b strings.Builder

	step := m.wizard.Step()
	b.WriteString(m.styles.Title.Render("Tu pedido"))
	b.WriteString("  ")
	b.WriteString(m.renderProgress(step))
	b.WriteString("\n\n")

	switch step {
	case checkout.StepCart:
		b.WriteString(m.renderCartLines())
	case checkout.StepName:
		b.WriteString("1. ¿Cuál es tu nombre completo?\n\n")
		b.WriteString(m.answerInput.View())
		b.WriteString("\n")
	case checkout.StepAddress:
		b.WriteString("2. ¿Cuál es tu dirección de entrega?\n\n")
		b.WriteString(m.answerInput.View())
		b.WriteString("\n")
	case checkout.StepPhone:
		b.WriteString("3. ¿Cuál es tu número de celular?\n\n")
		b.WriteString(m.answerInput.View())
		b.WriteString("\n")
	case checkout.StepProductsConfirm:
		b.WriteString("4. Confirma tus productos:\n\n")
		b.WriteString(m.renderConfirmLines())
	case checkout.StepPayment:
		b.WriteString(m.renderPayment())
	}

	if errMsg := m.wizard.ErrorMessage(); errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(errMsg))
		b.WriteString("\n")
	}
	return m.styles.Panel.Render(b.String())
}

// renderProgress shows the wizard position as filled and empty dots.
func (m Model) renderProgress(step checkout.Step) string {
	var dots []string
	for s := checkout.StepCart; s <= checkout.StepPayment; s++ {
		if s <= step {
			dots = append(dots, m.styles.Price.Render("●"))
		} else {
			dots = append(dots, m.styles.Muted.Render("○"))
		}
	}
	return strings.Join(dots, " ")
}

func (m Model) renderCartLines() string {
	lines := m.cart.Lines()
	if len(lines) == 0 {
		return m.styles.Muted.Render("Tu carrito está vacío. Agrega productos del catálogo.") + "\n"
	}

	var b strings.Builder
	for i, l := range lines {
		marker := "  "
		name := l.Name
		if i == m.cartCursor {
			marker = m.styles.Selected.Render("> ")
			name = m.styles.Bold.Render(l.Name)
		}
		b.WriteString(fmt.Sprintf("%s%s  x%d  %s\n", marker, name, l.Quantity, m.styles.Price.Render(money.Format(l.Subtotal()))))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Bold.Render("Total: " + money.Format(m.cart.Total())))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderConfirmLines() string {
	var b strings.Builder
	for _, l := range m.cart.Lines() {
		b.WriteString(fmt.Sprintf("   • %s (x%d)\n", l.Name, l.Quantity))
	}
	b.WriteString(fmt.Sprintf("   (Total: %s)\n", money.Format(m.cart.Total())))
	return b.String()
}

func (m Model) renderPayment() string {
	var b strings.Builder
	b.WriteString("5. ¿Cómo deseas pagar?\n\n")

	method := m.wizard.Info().PaymentMethod
	options := []struct {
		key    string
		label  string
		method checkout.PaymentMethod
	}{
		{"1", "Efectivo", checkout.PaymentCash},
		{"2", "Transferencia", checkout.PaymentTransfer},
	}
	for _, o := range options {
		line := fmt.Sprintf("  [%s] %s", o.key, o.label)
		if method == o.method {
			line = m.styles.Selected.Render(fmt.Sprintf(" [%s] %s ", o.key, o.label))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.lastOrder != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render("Pedido " + shortRef(m.lastOrder.Reference) + " enviado."))
		b.WriteString("\n")
	}
	return b.String()
}

func shortRef(ref string) string {
	if len(ref) > 8 {
		return ref[:8]
	}
	return ref
}

func (m Model) renderHelp() string {
	if m.panelOpen {
		switch m.wizard.Step() {
		case checkout.StepCart:
			return m.styles.Help.Render("↑/↓ mover · +/- cantidad · x quitar · v vaciar · enter continuar · esc cerrar")
		case checkout.StepPayment:
			return m.styles.Help.Render("1 efectivo · 2 transferencia · enter enviar pedido · esc atrás")
		case checkout.StepProductsConfirm:
			return m.styles.Help.Render("enter confirmar · esc atrás")
		default:
			return m.styles.Help.Render("escribe tu respuesta · enter continuar · esc atrás")
		}
	}
	if m.searchFocused {
		return m.styles.Help.Render("escribe para filtrar · enter/esc salir de la búsqueda")
	}
	return m.styles.Help.Render("↑/↓ mover · tab categoría · / buscar · enter agregar · c carrito · q salir")
}
