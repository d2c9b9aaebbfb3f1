// Package shop provides the interactive storefront TUI: catalog browsing
// with category and search filtering, the cart panel, and the checkout
// wizard. Split across files:
//   - model.go: types, construction, Init
//   - update.go: Update loop and catalog key handling
//   - wizard.go: cart panel and wizard key handling
//   - view.go: rendering
package shop

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"umami/cmd/umami/ui"
	"umami/internal/cart"
	"umami/internal/catalog"
	"umami/internal/checkout"
	"umami/internal/config"
	"umami/internal/logging"
	"umami/internal/store"
)

// catalogReloadedMsg carries a freshly reloaded catalog from the file watcher.
type catalogReloadedMsg struct {
	catalog *catalog.Catalog
}

// Model is the storefront TUI model.
type Model struct {
	cfg    *config.Config
	cat    *catalog.Catalog
	cart   *cart.Store
	wizard *checkout.Wizard
	local  *store.Local
	opener func(url string) error

	watcher *catalog.Watcher
	styles  ui.Styles

	// Catalog browsing state
	searchInput   textinput.Model
	searchFocused bool
	categories    []string
	categoryIdx   int
	filtered      []catalog.Product
	cursor        int

	// Cart panel / wizard state
	panelOpen   bool
	answerInput textinput.Model
	cartCursor  int
	lastOrder   *checkout.Order
	status      string

	width  int
	height int
	ready  bool
}

// Deps are the collaborators injected into the TUI. Opener may be left nil
// to use the platform hand-off opener.
type Deps struct {
	Config  *config.Config
	Catalog *catalog.Catalog
	Cart    *cart.Store
	Wizard  *checkout.Wizard
	Local   *store.Local
	Watcher *catalog.Watcher
	Opener  func(url string) error
}

// New builds the storefront model.
func New(d Deps) Model {
	si := textinput.New()
	si.Placeholder = "Buscar empanadas, deditos..."
	si.CharLimit = 60
	si.Width = 36

	ai := textinput.New()
	ai.Placeholder = "Escribe tu respuesta aquí..."
	ai.CharLimit = 120
	ai.Width = 48

	m := Model{
		cfg:         d.Config,
		cat:         d.Catalog,
		cart:        d.Cart,
		wizard:      d.Wizard,
		local:       d.Local,
		watcher:     d.Watcher,
		opener:      d.Opener,
		styles:      ui.DefaultStyles(),
		searchInput: si,
		answerInput: ai,
		categories:  d.Catalog.Categories(),
	}
	m.applyFilter()
	return m
}

// Init starts the catalog reload listener when a watcher is configured.
func (m Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	if err := m.watcher.Start(context.Background()); err != nil {
		logging.Get(logging.CategoryCatalog).Warn("Catalog watcher failed to start: %v", err)
		return nil
	}
	return m.listenReloads()
}

// listenReloads waits for the next catalog reload.
func (m Model) listenReloads() tea.Cmd {
	return func() tea.Msg {
		c, ok := <-m.watcher.Reloads()
		if !ok {
			return nil
		}
		return catalogReloadedMsg{catalog: c}
	}
}

// applyFilter recomputes the visible product list from the selected category
// and search query, clamping the cursor.
func (m *Model) applyFilter() {
	m.filtered = m.cat.Filter(m.selectedCategory(), m.searchInput.Value())
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selectedCategory() string {
	if m.categoryIdx < 0 || m.categoryIdx >= len(m.categories) {
		return catalog.AllCategories
	}
	return m.categories[m.categoryIdx]
}

// openPanel shows the cart panel. A reopen cancels any pending deferred
// reset so an in-progress wizard resumes where it was.
func (m *Model) openPanel() {
	if !m.panelOpen {
		m.panelOpen = true
		m.wizard.ReopenPanel()
		logging.UI("Cart panel opened at step %s", m.wizard.Step())
	}
}

// closePanel hides the cart panel and schedules the wizard reset.
func (m *Model) closePanel() {
	if m.panelOpen {
		m.panelOpen = false
		m.answerInput.Blur()
		m.wizard.ClosePanel(m.cfg.Checkout.ResetDelay())
		logging.UI("Cart panel closed")
	}
}
