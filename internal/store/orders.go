package store

import (
	"fmt"
	"time"

	"umami/internal/logging"
)

// =============================================================================
// ORDER HISTORY
// =============================================================================

// OrderRecord is one recorded hand-off. It is a local log entry only; the
// order itself lives in the external channel the message was sent to.
type OrderRecord struct {
	Reference     string
	CustomerName  string
	Address       string
	Phone         string
	PaymentMethod string
	Total         int
	Message       string
	CreatedAt     time.Time
}

// RecordOrder stores a finalized order hand-off.
func (s *Local) RecordOrder(rec OrderRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logging.Store("Recording order %s (total=%d)", rec.Reference, rec.Total)
	_, err := s.db.Exec(
		`INSERT INTO orders (reference, customer_name, address, phone, payment_method, total, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Reference, rec.CustomerName, rec.Address, rec.Phone,
		rec.PaymentMethod, rec.Total, rec.Message,
	)
	if err != nil {
		return fmt.Errorf("record order %s: %w", rec.Reference, err)
	}
	return nil
}

// ListOrders returns recorded hand-offs, newest first.
func (s *Local) ListOrders(limit int) ([]OrderRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT reference, customer_name, address, phone, payment_method, total, message, created_at
		 FROM orders ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []OrderRecord
	for rows.Next() {
		var rec OrderRecord
		if err := rows.Scan(&rec.Reference, &rec.CustomerName, &rec.Address, &rec.Phone,
			&rec.PaymentMethod, &rec.Total, &rec.Message, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
