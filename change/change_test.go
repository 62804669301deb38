package change

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/codemirror/state/text"
)

func setupTest(t *testing.T) func() {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	return teardown
}

func mustText(t *testing.T, s string) text.Text {
	t.Helper()
	tt, err := text.Of([]string{s})
	if err != nil {
		t.Fatal(err)
	}
	return tt
}

func TestOfAndApply(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc := mustText(t, "hello world")
	cs, err := Of(ChangeSpec{From: 6, To: 11, Insert: "editor"}, doc.Length(), "")
	if err != nil {
		t.Fatal(err)
	}
	out, err := cs.Apply(doc)
	if err != nil {
		t.Fatal(err)
	}
	if got := text.String(out); got != "hello editor" {
		t.Errorf("got %q, want %q", got, "hello editor")
	}
}

func TestOfOutOfOrder(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc := mustText(t, "abcdef")
	cs1, err := Of([]ChangeSpec{
		{From: 4, To: 5, Insert: "Y"},
		{From: 0, To: 1, Insert: "X"},
	}, doc.Length(), "")
	if err != nil {
		t.Fatal(err)
	}
	cs2, err := Of([]ChangeSpec{
		{From: 0, To: 1, Insert: "X"},
		{From: 4, To: 5, Insert: "Y"},
	}, doc.Length(), "")
	if err != nil {
		t.Fatal(err)
	}
	out1, _ := cs1.Apply(doc)
	out2, _ := cs2.Apply(doc)
	if !out1.Eq(out2) {
		t.Errorf("order-independence failed: %q vs %q", text.String(out1), text.String(out2))
	}
	if got := text.String(out1); got != "XbcdYf" {
		t.Errorf("got %q, want %q", got, "XbcdYf")
	}
}

func TestEmptyIsIdentity(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc := mustText(t, "hello")
	cs := Empty(doc.Length())
	out, err := cs.Apply(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Eq(doc) {
		t.Errorf("Empty().Apply(doc) should equal doc")
	}
	if !cs.Empty() {
		t.Errorf("Empty(len).Empty() should be true")
	}
}

func TestInvertUndoesApply(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc := mustText(t, "hello world")
	cs, err := Of(ChangeSpec{From: 6, To: 11, Insert: "editor"}, doc.Length(), "")
	if err != nil {
		t.Fatal(err)
	}
	inv, err := cs.Invert(doc)
	if err != nil {
		t.Fatal(err)
	}
	changed, err := cs.Apply(doc)
	if err != nil {
		t.Fatal(err)
	}
	back, err := inv.Apply(changed)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Eq(doc) {
		t.Errorf("invert did not undo apply: got %q, want %q", text.String(back), text.String(doc))
	}
}

func TestComposeMatchesSequentialApply(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc := mustText(t, "abcdef")
	csA, err := Of(ChangeSpec{From: 1, To: 3, Insert: "XY"}, doc.Length(), "")
	if err != nil {
		t.Fatal(err)
	}
	mid, err := csA.Apply(doc)
	if err != nil {
		t.Fatal(err)
	}
	csB, err := Of(ChangeSpec{From: 0, To: 1, Insert: "Z"}, mid.Length(), "")
	if err != nil {
		t.Fatal(err)
	}
	sequential, err := csB.Apply(mid)
	if err != nil {
		t.Fatal(err)
	}
	composed, err := csA.Compose(csB)
	if err != nil {
		t.Fatal(err)
	}
	direct, err := composed.Apply(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !direct.Eq(sequential) {
		t.Errorf("compose mismatch: %q vs %q", text.String(direct), text.String(sequential))
	}
}

func TestComposeAssociative(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc := mustText(t, "abcdefgh")
	a, _ := Of(ChangeSpec{From: 0, To: 2, Insert: "AA"}, doc.Length(), "")
	mid1, _ := a.Apply(doc)
	b, _ := Of(ChangeSpec{From: 1, To: 4, Insert: "BBB"}, mid1.Length(), "")
	mid2, _ := b.Apply(mid1)
	c, _ := Of(ChangeSpec{From: 0, To: 1, Insert: "C"}, mid2.Length(), "")

	left, err := a.Compose(b)
	if err != nil {
		t.Fatal(err)
	}
	left, err = left.Compose(c)
	if err != nil {
		t.Fatal(err)
	}
	bc, err := b.Compose(c)
	if err != nil {
		t.Fatal(err)
	}
	right, err := a.Compose(bc)
	if err != nil {
		t.Fatal(err)
	}
	leftOut, err := left.Apply(doc)
	if err != nil {
		t.Fatal(err)
	}
	rightOut, err := right.Apply(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !leftOut.Eq(rightOut) {
		t.Errorf("compose not associative: %q vs %q", text.String(leftOut), text.String(rightOut))
	}
}

func TestMapRebasesOntoOtherBranch(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc := mustText(t, "abcdef")
	a, _ := Of(ChangeSpec{From: 0, To: 1, Insert: "X"}, doc.Length(), "")
	b, _ := Of(ChangeSpec{From: 4, To: 5, Insert: "Y"}, doc.Length(), "")

	aMapped, err := a.Map(b, false)
	if err != nil {
		t.Fatal(err)
	}
	bAfterA, err := b.Apply(doc)
	if err != nil {
		t.Fatal(err)
	}
	viaB, err := aMapped.Apply(bAfterA)
	if err != nil {
		t.Fatal(err)
	}

	bMapped, err := b.Map(a, true)
	if err != nil {
		t.Fatal(err)
	}
	aAfter, err := a.Apply(doc)
	if err != nil {
		t.Fatal(err)
	}
	viaA, err := bMapped.Apply(aAfter)
	if err != nil {
		t.Fatal(err)
	}
	if !viaA.Eq(viaB) {
		t.Errorf("OT rebase mismatch: %q vs %q", text.String(viaA), text.String(viaB))
	}
}

func TestMapPosMonotone(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc := mustText(t, "hello world")
	cs, _ := Of(ChangeSpec{From: 6, To: 11, Insert: "editor long"}, doc.Length(), "")
	desc := cs.Desc()
	prev := -1
	for p := 0; p <= doc.Length(); p++ {
		mapped, ok := desc.MapPos(p, 1, Simple)
		if !ok {
			t.Fatalf("Simple mode should never return null at %d", p)
		}
		if mapped < prev {
			t.Errorf("MapPos not monotone at %d: %d < %d", p, mapped, prev)
		}
		prev = mapped
	}
}

func TestTouchesRange(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	cs, _ := Of(ChangeSpec{From: 3, To: 6, Insert: "xx"}, 10, "")
	desc := cs.Desc()
	if desc.TouchesRange(0, 2) != NotTouched {
		t.Errorf("expected NotTouched")
	}
	if desc.TouchesRange(4, 5) != Cover {
		t.Errorf("expected Cover")
	}
	if desc.TouchesRange(5, 8) != Touched {
		t.Errorf("expected Touched")
	}
}

func TestIterChangedRangesCoalesces(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	cs, _ := Of([]ChangeSpec{
		{From: 1, To: 1, Insert: "a"},
		{From: 1, To: 1, Insert: "b"},
	}, 5, "")
	var calls int
	cs.Desc().IterChangedRanges(false, func(fromA, toA, fromB, toB int) {
		calls++
	})
	if calls != 1 {
		t.Errorf("adjacent replacements should coalesce into one call, got %d", calls)
	}
}

func TestToJSONFromJSONRoundTrip(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc := mustText(t, "hello world")
	cs, _ := Of(ChangeSpec{From: 6, To: 11, Insert: "editor"}, doc.Length(), "")
	encoded := cs.ToJSON()
	back, err := FromJSON(encoded)
	if err != nil {
		t.Fatal(err)
	}
	outA, _ := cs.Apply(doc)
	outB, _ := back.Apply(doc)
	if !outA.Eq(outB) {
		t.Errorf("round-tripped ChangeSet behaves differently")
	}
}

func TestFilterSplitsRanges(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	cs, _ := Of([]ChangeSpec{
		{From: 1, To: 2, Insert: "a"},
		{From: 8, To: 9, Insert: "b"},
	}, 10, "")
	res := cs.Filter([][2]int{{0, 5}})
	if res.Changes.Desc().TouchesRange(1, 2) != Touched {
		t.Errorf("expected range [1,2) kept")
	}
	if res.Changes.Desc().TouchesRange(8, 9) != NotTouched {
		t.Errorf("expected range [8,9) filtered out")
	}
	if res.Filtered.TouchesRange(8, 9) != Touched {
		t.Errorf("expected filtered desc to record [8,9)")
	}
}
