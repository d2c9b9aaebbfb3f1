package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"umami/internal/cart"
	"umami/internal/logging"
	"umami/internal/money"
)

// Order is a finalized hand-off: the composed message and the deep link that
// delivers it. The wizard has no visibility into whether the link is ever
// followed or the message received.
type Order struct {
	Reference     string
	Name          string
	Address       string
	Phone         string
	PaymentMethod string
	Total         int
	Message       string
	URL           string
}

// Finalize completes the wizard from PAYMENT. A missing payment method sets
// an error and aborts. On success it builds the order message and link;
// neither the cart nor the wizard state changes (the cart is intentionally
// kept in case the hand-off never reaches the channel).
func (w *Wizard) Finalize() (Order, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.errMsg = ""
	if w.step != StepPayment {
		return Order{}, false
	}
	if w.info.PaymentMethod == PaymentUnset {
		w.errMsg = errPaymentRequired
		return Order{}, false
	}

	lines := w.cart.Lines()
	total := w.cart.Total()
	msg := BuildMessage(w.info, lines, total)

	order := Order{
		Reference:     uuid.NewString(),
		Name:          w.info.Name,
		Address:       w.info.Address,
		Phone:         w.info.Phone,
		PaymentMethod: w.info.PaymentMethod.String(),
		Total:         total,
		Message:       msg,
		URL:           w.baseURL + EncodeMessage(msg),
	}
	logging.Checkout("Order %s finalized: %d lines, total %d", order.Reference, len(lines), total)
	return order, true
}

// BuildMessage composes the order message in its fixed numbered layout.
// Cart lines appear in the cart's current iteration order.
func BuildMessage(info CustomerInfo, lines []cart.Line, total int) string {
	var sb strings.Builder
	sb.WriteString("Hola, este es mi pedido:\n\n")
	fmt.Fprintf(&sb, "1. Nombre completo: %s\n", info.Name)
	fmt.Fprintf(&sb, "2. Dirección: %s\n", info.Address)
	fmt.Fprintf(&sb, "3. Número de celular: %s\n", info.Phone)
	sb.WriteString("4. Productos que desea pedir:\n")
	for _, l := range lines {
		fmt.Fprintf(&sb, "   • %s (x%d)\n", l.Name, l.Quantity)
	}
	fmt.Fprintf(&sb, "   (Total: %s)\n", money.Format(total))
	fmt.Fprintf(&sb, "5. Método de pago: %s", info.PaymentMethod)
	return sb.String()
}

// EncodeMessage percent-encodes the message for the text query parameter.
// Spaces become %20, never +, so the result matches what the messaging app
// expects from an encodeURIComponent-style link.
func EncodeMessage(msg string) string {
	return strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
}
