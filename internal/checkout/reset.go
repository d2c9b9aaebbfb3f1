package checkout

import (
	"time"

	"umami/internal/logging"
)

// The panel close animation finishes before the wizard view changes, so the
// reset is deferred. It must also be cancellable: reopening the panel before
// the delay elapses resumes the wizard wherever it was, and a timer that
// already fired for an older close must not clobber the resumed session.
// The generation counter makes a stale fire a no-op.

type resetTimer interface {
	Stop() bool
}

// ClosePanel is called when the cart panel is dismissed. The pending error
// clears immediately; the reset to CART lands after delay unless the panel
// reopens first.
func (w *Wizard) ClosePanel(delay time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.errMsg = ""
	if w.resetTimer != nil {
		w.resetTimer.Stop()
	}
	w.resetGen++
	gen := w.resetGen
	w.resetTimer = time.AfterFunc(delay, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.resetGen != gen {
			return // superseded by a reopen or a newer close
		}
		w.resetLocked()
		logging.CheckoutDebug("Deferred wizard reset fired")
	})
}

// ReopenPanel is called when the cart panel opens. It cancels any pending
// reset so an in-progress wizard resumes in its last state.
func (w *Wizard) ReopenPanel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.resetGen++
	if w.resetTimer != nil {
		w.resetTimer.Stop()
		w.resetTimer = nil
	}
}
