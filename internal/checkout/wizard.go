// Package checkout implements the guided order wizard: a linear state
// machine that collects customer details over the live cart and hands the
// finished order off to WhatsApp as a prefilled message link.
package checkout

import (
	"strings"
	"sync"

	"umami/internal/cart"
	"umami/internal/logging"
)

// Step is the wizard's current state. Steps form a fixed linear chain;
// there is no skip and no jump in either direction.
type Step int

const (
	StepCart Step = iota // Initial: cart review, checkout not yet started
	StepName
	StepAddress
	StepPhone
	StepProductsConfirm
	StepPayment // Terminal: Finalize happens here
)

// String returns the step name for logs.
func (s Step) String() string {
	switch s {
	case StepCart:
		return "CART"
	case StepName:
		return "NAME"
	case StepAddress:
		return "ADDRESS"
	case StepPhone:
		return "PHONE"
	case StepProductsConfirm:
		return "PRODUCTS_CONFIRM"
	case StepPayment:
		return "PAYMENT"
	}
	return "UNKNOWN"
}

// PaymentMethod is the customer's payment choice.
type PaymentMethod int

const (
	PaymentUnset PaymentMethod = iota
	PaymentCash
	PaymentTransfer
)

// String returns the label used in the order message.
func (p PaymentMethod) String() string {
	switch p {
	case PaymentCash:
		return "Efectivo"
	case PaymentTransfer:
		return "Transferencia"
	}
	return ""
}

// CustomerInfo holds the wizard-collected fields. Fresh per wizard
// lifecycle; never persisted.
type CustomerInfo struct {
	Name          string
	Address       string
	Phone         string
	PaymentMethod PaymentMethod
	Notes         string
}

// Validation messages shown to the customer.
const (
	errNameRequired    = "Por favor ingresa tu nombre completo."
	errAddressRequired = "Por favor ingresa tu dirección."
	errPhoneRequired   = "Por favor ingresa tu número de celular."
	errCartEmpty       = "Tu carrito está vacío."
	errPaymentRequired = "Por favor selecciona un método de pago."
)

// CartReader is the live cart the wizard reads at each step. Deliberately
// not a snapshot: PRODUCTS_CONFIRM must notice a cart that was emptied
// underneath the wizard.
type CartReader interface {
	Lines() []cart.Line
	Total() int
	IsEmpty() bool
}

// transition is one row of the forward table: the validation predicate that
// gates leaving a step, and where Next lands when it holds.
type transition struct {
	validate func(w *Wizard) string // returns a user message, "" when valid
	next     Step
}

// forward is the state × predicate → next-state table. StepPayment has no
// entry: nothing follows it, Finalize is its exit.
var forward = map[Step]transition{
	StepCart: {
		validate: func(w *Wizard) string {
			if w.cart.IsEmpty() {
				return errCartEmpty
			}
			return ""
		},
		next: StepName,
	},
	StepName: {
		validate: func(w *Wizard) string {
			if strings.TrimSpace(w.info.Name) == "" {
				return errNameRequired
			}
			return ""
		},
		next: StepAddress,
	},
	StepAddress: {
		validate: func(w *Wizard) string {
			if strings.TrimSpace(w.info.Address) == "" {
				return errAddressRequired
			}
			return ""
		},
		next: StepPhone,
	},
	StepPhone: {
		validate: func(w *Wizard) string {
			if strings.TrimSpace(w.info.Phone) == "" {
				return errPhoneRequired
			}
			return ""
		},
		next: StepProductsConfirm,
	},
	StepProductsConfirm: {
		validate: func(w *Wizard) string {
			// Re-checked here: the cart may have been emptied since CART.
			if w.cart.IsEmpty() {
				return errCartEmpty
			}
			return ""
		},
		next: StepPayment,
	},
}

// backward is the Back table. StepCart is the root and has no entry.
var backward = map[Step]Step{
	StepName:            StepCart,
	StepAddress:         StepName,
	StepPhone:           StepAddress,
	StepProductsConfirm: StepPhone,
	StepPayment:         StepProductsConfirm,
}

// Wizard is the checkout state machine. It reads the injected cart live and
// owns the transient customer info and error message.
type Wizard struct {
	mu   sync.Mutex
	cart CartReader

	step    Step
	info    CustomerInfo
	errMsg  string
	baseURL string

	// Deferred reset bookkeeping (see reset.go).
	resetGen   uint64
	resetTimer resetTimer
}

// New creates a wizard over the given cart. whatsAppNumber is the hand-off
// destination in international format without the leading plus.
func New(c CartReader, whatsAppNumber string) *Wizard {
	return &Wizard{
		cart:    c,
		step:    StepCart,
		baseURL: "https://wa.me/" + whatsAppNumber + "?text=",
	}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Info returns the collected customer info so far.
func (w *Wizard) Info() CustomerInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.info
}

// ErrorMessage returns the pending validation message, if any.
func (w *Wizard) ErrorMessage() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errMsg
}

// SetName records the name field as typed.
func (w *Wizard) SetName(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.info.Name = v
}

// SetAddress records the address field as typed.
func (w *Wizard) SetAddress(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.info.Address = v
}

// SetPhone records the phone field as typed.
func (w *Wizard) SetPhone(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.info.Phone = v
}

// SetNotes records optional order notes. Not used in the message.
func (w *Wizard) SetNotes(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.info.Notes = v
}

// SelectPayment records the payment choice. It does not advance: PAYMENT is
// the last step, selecting only arms Finalize.
func (w *Wizard) SelectPayment(m PaymentMethod) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.info.PaymentMethod = m
	w.errMsg = ""
	logging.CheckoutDebug("Payment method selected: %s", m)
}

// Next attempts to advance one step. The current step's validation predicate
// must hold; on failure the step-specific message is set and the step does
// not change. Next from PAYMENT is a no-op (Finalize is the exit).
func (w *Wizard) Next() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.errMsg = ""
	tr, ok := forward[w.step]
	if !ok {
		return false
	}
	if msg := tr.validate(w); msg != "" {
		w.errMsg = msg
		logging.CheckoutDebug("Next blocked at %s: %s", w.step, msg)
		return false
	}
	logging.Checkout("Transition %s -> %s", w.step, tr.next)
	w.step = tr.next
	return true
}

// Back moves one step backward. Never validates; always clears any pending
// error. Back from CART is a no-op (it is the root).
func (w *Wizard) Back() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.errMsg = ""
	prev, ok := backward[w.step]
	if !ok {
		return false
	}
	logging.Checkout("Transition %s -> %s (back)", w.step, prev)
	w.step = prev
	return true
}

// reset returns the machine to its initial state. Caller holds the lock.
func (w *Wizard) resetLocked() {
	w.step = StepCart
	w.info = CustomerInfo{}
	w.errMsg = ""
}

// Reset returns the wizard to CART with fresh customer info immediately.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked()
	logging.CheckoutDebug("Wizard reset")
}
