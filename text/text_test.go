package text

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func setupTest(t *testing.T) func() {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	return teardown
}

func TestOfRejectsEmpty(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	if _, err := Of(nil); err != ErrIllegalArguments {
		t.Errorf("expected ErrIllegalArguments, got %v", err)
	}
}

func TestOfLengthAndLines(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	lines := []string{"hello", "world", ""}
	doc, err := Of(lines)
	if err != nil {
		t.Fatal(err)
	}
	wantLen := len("hello") + len("world") + len("") + 2
	if doc.Length() != wantLen {
		t.Errorf("Length() = %d, want %d", doc.Length(), wantLen)
	}
	if doc.Lines() != 3 {
		t.Errorf("Lines() = %d, want 3", doc.Lines())
	}
}

func TestOfLargeBalances(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	lines := make([]string, 500)
	total := 0
	for i := range lines {
		lines[i] = "line"
		total += len("line")
	}
	total += len(lines) - 1
	doc, err := Of(lines)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Length() != total {
		t.Errorf("Length() = %d, want %d", doc.Length(), total)
	}
	if doc.Lines() != 500 {
		t.Errorf("Lines() = %d, want 500", doc.Lines())
	}
	if _, ok := doc.(*branch); !ok {
		t.Errorf("expected a balanced branch for 500 lines, got %T", doc)
	}
}

func TestReplaceScenario1(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc, _ := Of([]string{"hello world"})
	ins, _ := Of([]string{"editor"})
	out, err := doc.Replace(6, 11, ins)
	if err != nil {
		t.Fatal(err)
	}
	if got := String(out); got != "hello editor" {
		t.Errorf("got %q, want %q", got, "hello editor")
	}
}

func TestReplaceComposition(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc, _ := Of([]string{"abcdef"})
	ins, _ := Of([]string{"XY"})
	direct, err := doc.Replace(2, 4, ins)
	if err != nil {
		t.Fatal(err)
	}
	empty, _ := Of([]string{""})
	step1, err := doc.Replace(2, 4, empty)
	if err != nil {
		t.Fatal(err)
	}
	step2, err := step1.Replace(2, 2, ins)
	if err != nil {
		t.Fatal(err)
	}
	if !direct.Eq(step2) {
		t.Errorf("replace composition mismatch: %q vs %q", String(direct), String(step2))
	}
}

func TestSliceRoundTrip(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc, _ := Of([]string{"alpha", "beta", "gamma", "delta"})
	whole, err := doc.Slice(0, doc.Length())
	if err != nil {
		t.Fatal(err)
	}
	if !whole.Eq(doc) {
		t.Errorf("slice(0,len) should equal original")
	}
	sub, err := doc.Slice(2, doc.Length()-2)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Length() != doc.Length()-4 {
		t.Errorf("Length() = %d, want %d", sub.Length(), doc.Length()-4)
	}
}

func TestLineAtMonotone(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc, _ := Of([]string{"one", "two", "three"})
	prevNumber := 0
	for p := 0; p <= doc.Length(); p++ {
		l, err := doc.LineAt(p)
		if err != nil {
			t.Fatalf("LineAt(%d): %v", p, err)
		}
		if l.From > p || p > l.To {
			t.Errorf("LineAt(%d) = %+v, want From<=p<=To", p, l)
		}
		if len(l.Text) != l.To-l.From {
			t.Errorf("LineAt(%d).Text length mismatch: %+v", p, l)
		}
		if l.Number < prevNumber {
			t.Errorf("LineAt(%d).Number not monotone: %d < %d", p, l.Number, prevNumber)
		}
		prevNumber = l.Number
	}
}

func TestLineAtOutOfRange(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc, _ := Of([]string{"abc"})
	if _, err := doc.LineAt(-1); err != ErrIndexOutOfBounds {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
	if _, err := doc.LineAt(doc.Length() + 1); err != ErrIndexOutOfBounds {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
}

func TestLineByNumber(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc, _ := Of([]string{"one", "two", "three"})
	l, err := doc.Line(2)
	if err != nil {
		t.Fatal(err)
	}
	if l.Text != "two" {
		t.Errorf("Line(2).Text = %q, want %q", l.Text, "two")
	}
	if _, err := doc.Line(0); err != ErrIndexOutOfBounds {
		t.Errorf("expected ErrIndexOutOfBounds for Line(0)")
	}
	if _, err := doc.Line(4); err != ErrIndexOutOfBounds {
		t.Errorf("expected ErrIndexOutOfBounds for Line(4)")
	}
}

func TestIterForwardBackwardSymmetric(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc, _ := Of([]string{"ab", "cd", "ef"})
	var forward []string
	fc := doc.Iter(Forward)
	for fc.Next() {
		forward = append(forward, fc.Value())
	}
	var backward []string
	bc := doc.Iter(Backward)
	for bc.Next() {
		backward = append(backward, bc.Value())
	}
	if len(forward) != len(backward) {
		t.Fatalf("length mismatch: %d vs %d", len(forward), len(backward))
	}
	for i := range forward {
		if forward[i] != backward[len(backward)-1-i] {
			t.Errorf("forward[%d]=%q != reverse of backward", i, forward[i])
		}
	}
}

func TestIterLines(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	doc, _ := Of([]string{"one", "", "three"})
	lc := doc.IterLines(0, doc.Length())
	var got []string
	for lc.Next() {
		got = append(got, lc.Value())
	}
	want := []string{"one", "", "three"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestToJSONFromJSON(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	lines := []string{"a", "b", "c"}
	doc, _ := Of(lines)
	got := doc.ToJSON()
	if len(got) != len(lines) {
		t.Fatalf("ToJSON() = %v, want %v", got, lines)
	}
	back, err := FromJSON(got)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Eq(doc) {
		t.Errorf("FromJSON(ToJSON(doc)) != doc")
	}
}

func TestAppend(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	a, _ := Of([]string{"foo"})
	b, _ := Of([]string{"bar"})
	out, err := a.Append(b)
	if err != nil {
		t.Fatal(err)
	}
	if got := String(out); got != "foobar" {
		t.Errorf("got %q, want %q", got, "foobar")
	}
}
