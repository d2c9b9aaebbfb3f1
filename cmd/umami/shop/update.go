package shop

import (
	tea "github.com/charmbracelet/bubbletea"

	"umami/internal/logging"
)

// Update routes messages to the catalog browser or the cart panel.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case catalogReloadedMsg:
		if msg.catalog != nil {
			m.cat = msg.catalog
			m.categories = m.cat.Categories()
			if m.categoryIdx >= len(m.categories) {
				m.categoryIdx = 0
			}
			m.applyFilter()
			m.status = "Catálogo actualizado."
			logging.UI("Catalog reloaded with %d products", m.cat.Len())
		}
		return m, m.listenReloads()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.watcher != nil {
				m.watcher.Stop()
			}
			return m, tea.Quit
		}
		if m.panelOpen {
			return m.updatePanel(msg)
		}
		return m.updateCatalog(msg)
	}

	return m, nil
}

// updateCatalog handles keys while browsing the product list.
func (m Model) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchFocused {
		switch msg.String() {
		case "enter", "esc":
			m.searchFocused = false
			m.searchInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.applyFilter()
			return m, cmd
		}
	}

	switch msg.String() {
	case "q":
		if m.watcher != nil {
			m.watcher.Stop()
		}
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, nil

	case "tab":
		if len(m.categories) > 0 {
			m.categoryIdx = (m.categoryIdx + 1) % len(m.categories)
			m.applyFilter()
		}
		return m, nil

	case "shift+tab":
		if len(m.categories) > 0 {
			m.categoryIdx = (m.categoryIdx + len(m.categories) - 1) % len(m.categories)
			m.applyFilter()
		}
		return m, nil

	case "/":
		m.searchFocused = true
		m.searchInput.Focus()
		return m, nil

	case "enter", "a":
		return m.addSelected()

	case "c":
		m.openPanel()
		m.syncAnswerInput()
		return m, nil
	}

	return m, nil
}

// addSelected puts the product under the cursor in the cart and opens the
// cart panel. Unavailable products cannot be added.
func (m Model) addSelected() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return m, nil
	}
	p := m.filtered[m.cursor]
	if !p.Addable() {
		m.status = p.Name + " está agotado."
		return m, nil
	}
	m.cart.Add(p)
	m.status = p.Name + " agregado al carrito."
	m.openPanel()
	m.syncAnswerInput()
	return m, nil
}
