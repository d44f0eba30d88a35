package registry

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/geometry"
)

func newItems(n int) []*Item {
	items := make([]*Item, n)
	for i := range items {
		items[i] = NewItem(fmt.Sprintf("item-%d", i), geometry.Size{Width: 100, Height: 50})
	}
	return items
}

func filled(t *testing.T, n int) (*Registry, []*Item) {
	t.Helper()
	r := New(n)
	items := newItems(n)
	for _, it := range items {
		if err := r.Append(it); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	return r, items
}

func mustInvariants(t *testing.T, r *Registry) {
	t.Helper()
	if err := r.CheckInvariants(); err != nil {
		t.Fatal(err)
	}
}

func labels(r *Registry) []string {
	out := make([]string, 0, r.Len())
	for _, it := range r.All() {
		out = append(out, it.Content.(string))
	}
	return out
}

func TestRegistry_AppendAssignsPositions(t *testing.T) {
	r, items := filled(t, 4)
	mustInvariants(t, r)
	if r.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", r.Len())
	}
	for i, it := range items {
		if it.Position() != i {
			t.Errorf("items[%d].Position() = %d", i, it.Position())
		}
	}
	if r.Head() != items[0] || r.Tail() != items[3] {
		t.Error("Head/Tail do not match appended order")
	}
}

func TestRegistry_InsertRenumbers(t *testing.T) {
	r, items := filled(t, 4)
	extra := NewItem("extra", geometry.Size{Width: 10, Height: 10})

	if err := r.Insert(extra, 1); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	mustInvariants(t, r)

	want := []string{"item-0", "extra", "item-1", "item-2", "item-3"}
	if got := labels(r); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	for i, it := range items[1:] {
		if it.Position() != i+2 {
			t.Errorf("%v.Position() = %d, want %d", it.Content, it.Position(), i+2)
		}
	}
}

func TestRegistry_InsertAtEndsAndPrepend(t *testing.T) {
	r, _ := filled(t, 2)
	tail := NewItem("tail", geometry.Size{})
	head := NewItem("head", geometry.Size{})

	if err := r.Insert(tail, r.Len()); err != nil {
		t.Fatalf("Insert at Len: %v", err)
	}
	if err := r.Prepend(head); err != nil {
		t.Fatalf("Prepend: %v", err)
	}
	mustInvariants(t, r)
	if r.Head() != head || r.Tail() != tail {
		t.Errorf("order = %v", labels(r))
	}
}

func TestRegistry_RemoveAtRenumbers(t *testing.T) {
	r, items := filled(t, 5)

	removed, err := r.RemoveAt(2)
	if err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}
	mustInvariants(t, r)
	if removed != items[2] {
		t.Errorf("removed %v, want item-2", removed.Content)
	}
	if removed.Position() != -1 {
		t.Errorf("removed item Position() = %d, want -1", removed.Position())
	}
	if items[3].Position() != 2 || items[4].Position() != 3 {
		t.Errorf("positions after remove: %d %d", items[3].Position(), items[4].Position())
	}
	if r.IndexOf(removed) != -1 {
		t.Error("removed item still indexed")
	}

	// A removed item may be re-inserted.
	if err := r.Insert(removed, 0); err != nil {
		t.Fatalf("re-insert: %v", err)
	}
	mustInvariants(t, r)
}

func TestRegistry_ReplaceAtResetsLocation(t *testing.T) {
	r, items := filled(t, 3)
	items[1].Commit(geometry.Offset{X: 42, Y: 7})

	fresh := NewItem("fresh", geometry.Size{Width: 100, Height: 50})
	old, err := r.ReplaceAt(1, fresh)
	if err != nil {
		t.Fatalf("ReplaceAt: %v", err)
	}
	mustInvariants(t, r)
	if old != items[1] {
		t.Error("ReplaceAt returned the wrong item")
	}
	if fresh.Position() != 1 {
		t.Errorf("fresh.Position() = %d, want 1", fresh.Position())
	}
	if _, ok := fresh.LastCommittedLocation(); ok {
		t.Error("replacement should start without a committed location")
	}
	if loc, ok := old.LastCommittedLocation(); !ok || loc.X != 42 {
		t.Errorf("old item location = %v, %v", loc, ok)
	}
}

func TestRegistry_IndexErrors(t *testing.T) {
	r, _ := filled(t, 2)
	tests := []struct {
		name string
		run  func() error
	}{
		{"insert negative", func() error { return r.Insert(NewItem(nil, geometry.Size{}), -1) }},
		{"insert past end", func() error { return r.Insert(NewItem(nil, geometry.Size{}), 3) }},
		{"remove at len", func() error { _, err := r.RemoveAt(2); return err }},
		{"remove negative", func() error { _, err := r.RemoveAt(-1); return err }},
		{"replace at len", func() error { _, err := r.ReplaceAt(2, NewItem(nil, geometry.Size{})); return err }},
		{"at len", func() error { _, err := r.At(2); return err }},
	}
	for _, tt := range tests {
		err := tt.run()
		if !stderrors.Is(err, errors.ErrIndexOutOfRange) {
			t.Errorf("%s: err = %v, want ErrIndexOutOfRange", tt.name, err)
		}
	}
	mustInvariants(t, r)
	if r.Len() != 2 {
		t.Errorf("failed mutations changed Len to %d", r.Len())
	}
}

func TestRegistry_RejectsSharedItems(t *testing.T) {
	r, items := filled(t, 2)
	if err := r.Append(items[0]); err == nil {
		t.Error("appending an item twice should fail")
	}
	other := New(0)
	if err := other.Append(items[1]); err == nil {
		t.Error("an item must not belong to two registries")
	}
	if err := r.Append(nil); err == nil {
		t.Error("appending nil should fail")
	}
	mustInvariants(t, r)
}

func TestRegistry_InvariantsUnderMixedMutations(t *testing.T) {
	r := &Registry{}
	ops := []func(){
		func() { _ = r.Append(NewItem("a", geometry.Size{})) },
		func() { _ = r.Prepend(NewItem("b", geometry.Size{})) },
		func() { _ = r.Insert(NewItem("c", geometry.Size{}), 1) },
		func() { _, _ = r.RemoveAt(0) },
		func() { _ = r.Insert(NewItem("d", geometry.Size{}), r.Len()) },
		func() { _, _ = r.ReplaceAt(1, NewItem("e", geometry.Size{})) },
		func() { _, _ = r.RemoveAt(r.Len() - 1) },
	}
	for i := 0; i < 50; i++ {
		ops[i%len(ops)]()
		mustInvariants(t, r)
	}
}

func TestRegistry_AllStopsEarly(t *testing.T) {
	r, _ := filled(t, 5)
	visited := 0
	for i := range r.All() {
		visited++
		if i == 1 {
			break
		}
	}
	if visited != 2 {
		t.Errorf("visited %d items, want 2", visited)
	}
}

func TestRegistry_Clear(t *testing.T) {
	r, items := filled(t, 3)
	r.Clear()
	if r.Len() != 0 || r.Head() != nil || r.Tail() != nil {
		t.Error("Clear left items behind")
	}
	for _, it := range items {
		if it.Position() != -1 {
			t.Errorf("cleared item Position() = %d", it.Position())
		}
	}
	if err := r.Append(items[0]); err != nil {
		t.Errorf("cleared item should be reusable: %v", err)
	}
}
