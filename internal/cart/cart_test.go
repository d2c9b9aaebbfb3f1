package cart

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"umami/internal/catalog"
)

// fakeKV is an in-memory KV for tests.
type fakeKV struct {
	data map[string]string
	puts int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(key string) (string, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Put(key, value string) error {
	f.data[key] = value
	f.puts++
	return nil
}

var (
	empanadas = catalog.Product{ID: "empanada-12", Name: "Empanadas x12", Category: "Empanadas", Price: 14000, Available: true}
	deditos   = catalog.Product{ID: "dedito-queso-6", Name: "Deditos de queso x6", Category: "Deditos", Price: 9000, Available: true}
)

func TestAddDistinctProducts(t *testing.T) {
	t.Parallel()
	s := New(newFakeKV())

	s.Add(empanadas)
	s.Add(deditos)

	lines := s.Lines()
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if got, want := s.Total(), 23000; got != want {
		t.Errorf("Total = %d, want %d", got, want)
	}
	if got := s.Count(); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
}

func TestAddSameProductIncrementsQuantity(t *testing.T) {
	t.Parallel()
	s := New(newFakeKV())

	s.Add(empanadas)
	s.Add(empanadas)

	lines := s.Lines()
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", lines[0].Quantity)
	}
	if got, want := s.Total(), 28000; got != want {
		t.Errorf("Total = %d, want %d", got, want)
	}
}

func TestUpdateQuantity(t *testing.T) {
	t.Parallel()
	s := New(newFakeKV())
	s.Add(empanadas)

	s.UpdateQuantity(empanadas.ID, 2)
	if got := s.Lines()[0].Quantity; got != 3 {
		t.Errorf("Quantity = %d, want 3", got)
	}

	s.UpdateQuantity(empanadas.ID, -1)
	if got := s.Lines()[0].Quantity; got != 2 {
		t.Errorf("Quantity = %d, want 2", got)
	}

	// Unknown ids are a no-op.
	s.UpdateQuantity("nope", 5)
	if got := s.Count(); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
}

func TestDecrementBelowOneIsNoOp(t *testing.T) {
	t.Parallel()
	kv := newFakeKV()
	s := New(kv)
	s.Add(empanadas)

	putsBefore := kv.puts
	s.UpdateQuantity(empanadas.ID, -1)
	s.UpdateQuantity(empanadas.ID, -5)

	lines := s.Lines()
	if len(lines) != 1 || lines[0].Quantity != 1 {
		t.Fatalf("line should survive at quantity 1, got %+v", lines)
	}
	if kv.puts != putsBefore {
		t.Errorf("blocked decrement should not persist, puts went %d -> %d", putsBefore, kv.puts)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()
	s := New(newFakeKV())
	s.Add(empanadas)
	s.Add(deditos)

	s.Remove(empanadas.ID)
	lines := s.Lines()
	if len(lines) != 1 || lines[0].ProductID != deditos.ID {
		t.Fatalf("unexpected lines after remove: %+v", lines)
	}

	// Removing an absent id is a no-op.
	s.Remove("nope")
	if got := len(s.Lines()); got != 1 {
		t.Errorf("got %d lines, want 1", got)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()
	s := New(newFakeKV())
	s.Add(empanadas)
	s.Add(deditos)

	s.Clear()
	if !s.IsEmpty() {
		t.Error("cart should be empty after Clear")
	}
	if got := s.Total(); got != 0 {
		t.Errorf("Total = %d, want 0", got)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	t.Parallel()
	kv := newFakeKV()

	s := New(kv)
	s.Add(empanadas)
	s.Add(empanadas)
	s.Add(deditos)
	want := s.Lines()

	// A new store over the same KV sees the identical cart.
	s2 := New(kv)
	if diff := cmp.Diff(want, s2.Lines()); diff != "" {
		t.Errorf("persisted cart mismatch (-want +got):\n%s", diff)
	}
	if got := s2.Total(); got != s.Total() {
		t.Errorf("Total = %d, want %d", got, s.Total())
	}
}

func TestMalformedPersistedCartStartsEmpty(t *testing.T) {
	t.Parallel()
	kv := newFakeKV()
	kv.data[StorageKey] = "{not json"

	s := New(kv)
	if !s.IsEmpty() {
		t.Error("malformed persisted cart should load as empty")
	}
}

func TestInvalidQuantityPersistedCartStartsEmpty(t *testing.T) {
	t.Parallel()
	kv := newFakeKV()
	kv.data[StorageKey] = `[{"id":"empanada-12","name":"Empanadas x12","price":14000,"quantity":0}]`

	s := New(kv)
	if !s.IsEmpty() {
		t.Error("persisted line with quantity 0 should load as empty cart")
	}
}

func TestLineHoldsPriceSnapshot(t *testing.T) {
	t.Parallel()
	s := New(newFakeKV())
	s.Add(empanadas)

	// A re-add after a catalog price change increments the existing line
	// and keeps its original price snapshot.
	changed := empanadas
	changed.Price = 99999
	s.Add(changed)

	line := s.Lines()[0]
	if line.Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", line.Quantity)
	}
	if line.Price != 14000 {
		t.Errorf("line price = %d, want snapshot 14000", line.Price)
	}
	if got := line.Subtotal(); got != 28000 {
		t.Errorf("Subtotal = %d, want 28000", got)
	}
}
