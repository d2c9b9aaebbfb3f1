package shop

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"umami/internal/cart"
	"umami/internal/catalog"
	"umami/internal/checkout"
	"umami/internal/config"
)

type memKV struct {
	data map[string]string
}

func (m memKV) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m memKV) Put(key, value string) error {
	m.data[key] = value
	return nil
}

const testCatalogYAML = `
products:
  - id: empanada-12
    name: Empanadas x12
    category: Empanadas
    price: 14000
    description: Empanadas de carne
  - id: dedito-queso-6
    name: Deditos de queso x6
    category: Deditos
    price: 9000
  - id: surtido-56
    name: Surtido familiar x56
    category: Surtidos
    price: 56000
    available: false
    show_when_sold_out: true
`

// testModel builds a storefront over an in-memory cart and a capturing
// opener. No SQLite, no watcher.
func testModel(t *testing.T) (Model, *[]string) {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}

	cfg := config.Default()
	var opened []string
	crt := cart.New(memKV{data: make(map[string]string)})
	m := New(Deps{
		Config:  cfg,
		Catalog: cat,
		Cart:    crt,
		Wizard:  checkout.New(crt, cfg.Checkout.WhatsAppNumber),
		Opener: func(url string) error {
			opened = append(opened, url)
			return nil
		},
	})
	return m, &opened
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func resize(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func TestViewShowsCatalog(t *testing.T) {
	t.Parallel()
	m, _ := testModel(t)
	m = resize(m)

	view := m.View()
	for _, want := range []string{"Umami Congelados", "Empanadas x12", "Deditos de queso x6", "$14,000"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if !strings.Contains(view, "Agotado") {
		t.Error("sold-out product should carry its badge")
	}
}

func TestAddOpensCartPanel(t *testing.T) {
	t.Parallel()
	m, _ := testModel(t)
	m = resize(m)

	m = press(m, "enter")
	if !m.panelOpen {
		t.Fatal("adding a product should open the cart panel")
	}
	if m.cart.Count() != 1 {
		t.Errorf("Count = %d, want 1", m.cart.Count())
	}
	if !strings.Contains(m.View(), "Tu pedido") {
		t.Error("panel view missing")
	}
}

func TestSoldOutProductCannotBeAdded(t *testing.T) {
	t.Parallel()
	m, _ := testModel(t)
	m = resize(m)

	// Cursor down to the sold-out surtido.
	m = press(m, "down")
	m = press(m, "down")
	m = press(m, "enter")

	if !m.cart.IsEmpty() {
		t.Error("sold-out product must not enter the cart")
	}
	if m.panelOpen {
		t.Error("panel should stay closed on a blocked add")
	}
}

func TestCategoryTabFiltering(t *testing.T) {
	t.Parallel()
	m, _ := testModel(t)
	m = resize(m)

	m = press(m, "tab") // Todos -> Empanadas
	if len(m.filtered) != 1 || m.filtered[0].ID != "empanada-12" {
		t.Fatalf("filtered = %v", m.filtered)
	}
	m = press(m, "tab") // -> Deditos
	if len(m.filtered) != 1 || m.filtered[0].ID != "dedito-queso-6" {
		t.Fatalf("filtered = %v", m.filtered)
	}
}

func TestSearchFiltering(t *testing.T) {
	t.Parallel()
	m, _ := testModel(t)
	m = resize(m)

	m = press(m, "/")
	if !m.searchFocused {
		t.Fatal("/ should focus the search input")
	}
	m = typeText(m, "queso")
	if len(m.filtered) != 1 || m.filtered[0].ID != "dedito-queso-6" {
		t.Fatalf("filtered = %v", m.filtered)
	}
	m = press(m, "enter")
	if m.searchFocused {
		t.Error("enter should leave search mode")
	}
}

func TestCartPanelQuantityKeys(t *testing.T) {
	t.Parallel()
	m, _ := testModel(t)
	m = resize(m)

	m = press(m, "enter") // add, panel opens at CART
	m = press(m, "+")
	if got := m.cart.Lines()[0].Quantity; got != 2 {
		t.Errorf("Quantity = %d, want 2", got)
	}
	m = press(m, "-")
	m = press(m, "-") // blocked at 1
	if got := m.cart.Lines()[0].Quantity; got != 1 {
		t.Errorf("Quantity = %d, want 1", got)
	}
	m = press(m, "x")
	if !m.cart.IsEmpty() {
		t.Error("x should remove the selected line")
	}
}

func TestCartPanelKeysTargetCursorLine(t *testing.T) {
	t.Parallel()
	m, _ := testModel(t)
	m = resize(m)

	// Two distinct products, then edit the second one.
	m = press(m, "enter") // add empanadas, panel opens
	m = press(m, "esc")   // back to the catalog
	m = press(m, "down")
	m = press(m, "enter") // add deditos, panel reopens

	m = press(m, "down") // cursor onto deditos
	m = press(m, "+")
	lines := m.cart.Lines()
	if lines[0].Quantity != 1 || lines[1].Quantity != 2 {
		t.Fatalf("quantity edit hit the wrong line: %+v", lines)
	}
	if lines[1].ProductID != "dedito-queso-6" {
		t.Fatalf("unexpected line order: %+v", lines)
	}

	m = press(m, "x")
	lines = m.cart.Lines()
	if len(lines) != 1 || lines[0].ProductID != "empanada-12" {
		t.Errorf("x removed the wrong line: %+v", lines)
	}
}

func TestEscOnCartStepClosesPanel(t *testing.T) {
	t.Parallel()
	m, _ := testModel(t)
	m = resize(m)

	m = press(m, "enter")
	if !m.panelOpen {
		t.Fatal("panel should be open")
	}
	m = press(m, "esc")
	if m.panelOpen {
		t.Error("esc on the cart step should close the panel")
	}
}

func TestFullCheckoutFlow(t *testing.T) {
	t.Parallel()
	m, opened := testModel(t)
	m = resize(m)

	m = press(m, "enter") // add empanadas, panel opens
	m = press(m, "enter") // CART -> NAME
	if m.wizard.Step() != checkout.StepName {
		t.Fatalf("Step = %s, want NAME", m.wizard.Step())
	}

	m = typeText(m, "Ana")
	m = press(m, "enter") // NAME -> ADDRESS
	m = typeText(m, "Calle 1")
	m = press(m, "enter") // ADDRESS -> PHONE
	m = typeText(m, "3001234567")
	m = press(m, "enter") // PHONE -> PRODUCTS_CONFIRM
	if m.wizard.Step() != checkout.StepProductsConfirm {
		t.Fatalf("Step = %s, want PRODUCTS_CONFIRM: %s", m.wizard.Step(), m.wizard.ErrorMessage())
	}
	if !strings.Contains(m.View(), "• Empanadas x12 (x1)") {
		t.Error("confirm step should list the cart lines")
	}

	m = press(m, "enter") // -> PAYMENT
	m = press(m, "1")     // Efectivo
	m = press(m, "enter") // Finalize

	if len(*opened) != 1 {
		t.Fatalf("opener called %d times, want 1", len(*opened))
	}
	url := (*opened)[0]
	if !strings.HasPrefix(url, "https://wa.me/573022679121?text=") {
		t.Errorf("URL = %q", url)
	}
	if m.cart.IsEmpty() {
		t.Error("cart must survive the hand-off")
	}
	if m.lastOrder == nil {
		t.Fatal("lastOrder should be recorded")
	}
	if m.lastOrder.PaymentMethod != "Efectivo" {
		t.Errorf("PaymentMethod = %q", m.lastOrder.PaymentMethod)
	}
}

func TestWizardBlockedOnBlankName(t *testing.T) {
	t.Parallel()
	m, _ := testModel(t)
	m = resize(m)

	m = press(m, "enter") // add
	m = press(m, "enter") // CART -> NAME
	m = press(m, "enter") // blocked, blank name
	if m.wizard.Step() != checkout.StepName {
		t.Errorf("Step = %s, want NAME", m.wizard.Step())
	}
	if !strings.Contains(m.View(), "Por favor ingresa tu nombre completo.") {
		t.Error("validation message should render in the panel")
	}
}

func TestEscGoesBackInsideWizard(t *testing.T) {
	t.Parallel()
	m, _ := testModel(t)
	m = resize(m)

	m = press(m, "enter") // add
	m = press(m, "enter") // CART -> NAME
	m = typeText(m, "Ana")
	m = press(m, "esc") // NAME -> CART, panel stays open
	if !m.panelOpen {
		t.Error("esc inside the wizard should not close the panel")
	}
	if m.wizard.Step() != checkout.StepCart {
		t.Errorf("Step = %s, want CART", m.wizard.Step())
	}
}
