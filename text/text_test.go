package text

import (
	"errors"
	"testing"
)

func boldText(s string) Text {
	return NewStyled(s, Attributes{Bold: true})
}

func TestNewText(t *testing.T) {
	tx := New("hello")
	if tx.String() != "hello" {
		t.Errorf("String() = %q, want %q", tx.String(), "hello")
	}
	if tx.Len() != 5 {
		t.Errorf("Len() = %d, want 5", tx.Len())
	}
	if tx.IsEmpty() {
		t.Error("should not be empty")
	}
	if len(tx.Spans()) != 0 {
		t.Error("plain text should have no spans")
	}
}

func TestNewStyled(t *testing.T) {
	tx := boldText("hi")
	spans := tx.Spans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Start != 0 || spans[0].End != 2 {
		t.Errorf("span = [%d,%d), want [0,2)", spans[0].Start, spans[0].End)
	}
	if !tx.AttributesAt(0).Bold {
		t.Error("expected bold at 0")
	}
}

func TestNewStyledEmptyString(t *testing.T) {
	tx := NewStyled("", Attributes{Bold: true})
	if len(tx.Spans()) != 0 {
		t.Error("empty string should carry no spans")
	}
}

func TestInsertPlain(t *testing.T) {
	tx := New("hello")
	got, err := tx.Insert(5, " world", nil)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got.String() != "hello world" {
		t.Errorf("got %q", got.String())
	}
	// Original untouched.
	if tx.String() != "hello" {
		t.Error("receiver mutated")
	}
}

func TestInsertOffsetOutOfRange(t *testing.T) {
	tx := New("hi")
	for _, offset := range []int{-1, 3} {
		if _, err := tx.Insert(offset, "x", nil); !errors.Is(err, ErrOffsetOutOfRange) {
			t.Errorf("Insert(%d): err = %v, want ErrOffsetOutOfRange", offset, err)
		}
	}
}

func TestInsertSpanAdjustment(t *testing.T) {
	base := NewWithSpans("abcdef", []Span{
		{Start: 0, End: 2, Attrs: Attributes{Bold: true}},   // before
		{Start: 2, End: 5, Attrs: Attributes{Italic: true}}, // straddles offset 3
		{Start: 5, End: 6, Attrs: Attributes{Code: true}},   // after
	})

	got, err := base.Insert(3, "XY", nil)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got.String() != "abcXYdef" {
		t.Fatalf("got %q", got.String())
	}

	spans := got.Spans()
	want := []Span{
		{Start: 0, End: 2, Attrs: Attributes{Bold: true}},
		{Start: 2, End: 7, Attrs: Attributes{Italic: true}}, // extended by 2
		{Start: 7, End: 8, Attrs: Attributes{Code: true}},   // shifted by 2
	}
	if len(spans) != len(want) {
		t.Fatalf("got %d spans, want %d", len(spans), len(want))
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span %d = %+v, want %+v", i, spans[i], want[i])
		}
	}

	// Inserted text inherits the straddling span's attributes.
	if !got.AttributesAt(4).Italic {
		t.Error("inserted text should inherit italic")
	}
}

func TestInsertWithAttributes(t *testing.T) {
	attrs := Attributes{Bold: true}
	got, err := New("ac").Insert(1, "b", &attrs)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got.String() != "abc" {
		t.Fatalf("got %q", got.String())
	}
	if !got.AttributesAt(1).Bold {
		t.Error("inserted range should be bold")
	}
	if got.AttributesAt(0).Bold || got.AttributesAt(2).Bold {
		t.Error("surrounding text should not be bold")
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name      string
		span      Span
		wantSpans []Span
	}{
		{
			name:      "fully before",
			span:      Span{Start: 0, End: 2, Attrs: Attributes{Bold: true}},
			wantSpans: []Span{{Start: 0, End: 2, Attrs: Attributes{Bold: true}}},
		},
		{
			name:      "fully after",
			span:      Span{Start: 6, End: 8, Attrs: Attributes{Bold: true}},
			wantSpans: []Span{{Start: 3, End: 5, Attrs: Attributes{Bold: true}}},
		},
		{
			name:      "fully inside",
			span:      Span{Start: 3, End: 5, Attrs: Attributes{Bold: true}},
			wantSpans: nil,
		},
		{
			name:      "strictly containing",
			span:      Span{Start: 1, End: 8, Attrs: Attributes{Bold: true}},
			wantSpans: []Span{{Start: 1, End: 5, Attrs: Attributes{Bold: true}}},
		},
		{
			name:      "overlap leading edge",
			span:      Span{Start: 1, End: 4, Attrs: Attributes{Bold: true}},
			wantSpans: []Span{{Start: 1, End: 3, Attrs: Attributes{Bold: true}}},
		},
		{
			name:      "overlap trailing edge",
			span:      Span{Start: 4, End: 8, Attrs: Attributes{Bold: true}},
			wantSpans: []Span{{Start: 3, End: 5, Attrs: Attributes{Bold: true}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := NewWithSpans("abcdefgh", []Span{tt.span})
			got, err := base.Delete(3, 6) // removes "def"
			if err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if got.String() != "abcgh" {
				t.Fatalf("got %q", got.String())
			}
			spans := got.Spans()
			if len(spans) != len(tt.wantSpans) {
				t.Fatalf("got %d spans, want %d", len(spans), len(tt.wantSpans))
			}
			for i := range tt.wantSpans {
				if spans[i] != tt.wantSpans[i] {
					t.Errorf("span %d = %+v, want %+v", i, spans[i], tt.wantSpans[i])
				}
			}
		})
	}
}

func TestDeleteInvalidRange(t *testing.T) {
	tx := New("hello")
	cases := []struct{ start, end int }{{3, 2}, {-1, 2}, {0, 6}}
	for _, c := range cases {
		if _, err := tx.Delete(c.start, c.end); !errors.Is(err, ErrRangeInvalid) {
			t.Errorf("Delete(%d,%d): err = %v, want ErrRangeInvalid", c.start, c.end, err)
		}
	}
}

func TestSpanOffsetInvariant(t *testing.T) {
	// Property check over a fixed edit sequence: every surviving span stays
	// within the text bounds with start < end.
	tx := NewWithSpans("the quick brown fox", []Span{
		{Start: 0, End: 9, Attrs: Attributes{Bold: true}},
		{Start: 4, End: 15, Attrs: Attributes{Italic: true}},
		{Start: 10, End: 19, Attrs: Attributes{Underline: true}},
	})

	var err error
	steps := []func() (Text, error){
		func() (Text, error) { return tx.Insert(4, "very ", nil) },
		func() (Text, error) { return tx.Delete(0, 4) },
		func() (Text, error) { return tx.Insert(tx.Len(), "!", nil) },
		func() (Text, error) { return tx.Delete(tx.Len()-3, tx.Len()) },
		func() (Text, error) { return tx.Insert(0, ">> ", nil) },
	}
	for i, step := range steps {
		tx, err = step()
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		for _, sp := range tx.Spans() {
			if sp.Start < 0 || sp.Start >= sp.End || sp.End > tx.Len() {
				t.Fatalf("step %d: span [%d,%d) violates invariant for length %d", i, sp.Start, sp.End, tx.Len())
			}
		}
	}
}

func TestApplyAttributesAdditive(t *testing.T) {
	tx := boldText("hello").ApplyAttributes(1, 3, Attributes{Italic: true})
	if got := len(tx.Spans()); got != 2 {
		t.Fatalf("got %d spans, want 2 (additive, prior span retained)", got)
	}
	at := tx.AttributesAt(2)
	if !at.Bold || !at.Italic {
		t.Errorf("AttributesAt(2) = %+v, want bold+italic", at)
	}
	if tx.AttributesAt(4).Italic {
		t.Error("offset 4 should not be italic")
	}
}

func TestApplyAttributesInvalidRangeIsNoop(t *testing.T) {
	tx := New("hello")
	cases := []struct{ start, end int }{{-1, 3}, {0, 6}, {3, 3}, {4, 2}}
	for _, c := range cases {
		got := tx.ApplyAttributes(c.start, c.end, Attributes{Bold: true})
		if !got.Equal(tx) {
			t.Errorf("ApplyAttributes(%d,%d) should be a no-op", c.start, c.end)
		}
	}
}

func TestAttributesAtMergeOrder(t *testing.T) {
	// Later spans win on optional fields.
	tx := New("hello").
		ApplyAttributes(0, 5, Attributes{TextColor: "#ff0000"}).
		ApplyAttributes(0, 5, Attributes{TextColor: "#0000ff"})
	if got := tx.AttributesAt(2).TextColor; got != "#0000ff" {
		t.Errorf("TextColor = %q, want later span to win", got)
	}
}

func TestToggleFormat(t *testing.T) {
	tx := New("hello").ToggleFormat(0, 5, FormatBold)
	if !tx.HasFormat(0, 5, FormatBold) {
		t.Fatal("expected bold after first toggle")
	}

	// Toggling again layers a negation; reads see the flag cleared.
	tx = tx.ToggleFormat(0, 5, FormatBold)
	if tx.HasFormat(0, 5, FormatBold) {
		t.Fatal("expected bold cleared after second toggle")
	}
	if tx.AttributesAt(2).Bold {
		t.Error("AttributesAt should not report bold")
	}
}

func TestTogglePartialAppliesPositive(t *testing.T) {
	tx := New("hello").ApplyAttributes(0, 2, Attributes{Bold: true})
	// Not fully applied over [0,5), so toggle applies the positive flag.
	tx = tx.ToggleFormat(0, 5, FormatBold)
	if !tx.HasFormat(0, 5, FormatBold) {
		t.Error("expected bold over the whole range")
	}
}

func TestToggleSubscriptClearsSuperscript(t *testing.T) {
	tx := New("x2").ToggleFormat(1, 2, FormatSuperscript)
	tx = tx.ToggleFormat(1, 2, FormatSubscript)
	at := tx.AttributesAt(1)
	if !at.Subscript {
		t.Error("expected subscript")
	}
	if at.Superscript {
		t.Error("superscript should be cleared by subscript toggle")
	}
}

func TestSubstring(t *testing.T) {
	base := NewWithSpans("hello world", []Span{
		{Start: 0, End: 5, Attrs: Attributes{Bold: true}},
		{Start: 6, End: 11, Attrs: Attributes{Italic: true}},
	})
	got, err := base.Substring(3, 8)
	if err != nil {
		t.Fatalf("Substring: %v", err)
	}
	if got.String() != "lo wo" {
		t.Fatalf("got %q", got.String())
	}
	spans := got.Spans()
	want := []Span{
		{Start: 0, End: 2, Attrs: Attributes{Bold: true}},
		{Start: 3, End: 5, Attrs: Attributes{Italic: true}},
	}
	if len(spans) != len(want) {
		t.Fatalf("got %d spans, want %d", len(spans), len(want))
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span %d = %+v, want %+v", i, spans[i], want[i])
		}
	}
}

func TestSubstringInvalid(t *testing.T) {
	if _, err := New("abc").Substring(2, 1); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("err = %v, want ErrRangeInvalid", err)
	}
}

func TestConcat(t *testing.T) {
	got := boldText("ab").Concat(NewStyled("cd", Attributes{Italic: true}))
	if got.String() != "abcd" {
		t.Fatalf("got %q", got.String())
	}
	spans := got.Spans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[1].Start != 2 || spans[1].End != 4 {
		t.Errorf("second span = [%d,%d), want [2,4)", spans[1].Start, spans[1].End)
	}
}

func TestAttributesMerge(t *testing.T) {
	a := Attributes{Bold: true, TextColor: "#111111", FontSize: 12}
	b := Attributes{Italic: true, TextColor: "#222222"}
	got := a.Merge(b)
	if !got.Bold || !got.Italic {
		t.Error("flags should be OR'd")
	}
	if got.TextColor != "#222222" {
		t.Errorf("TextColor = %q, want other's value to win", got.TextColor)
	}
	if got.FontSize != 12 {
		t.Errorf("FontSize = %v, want receiver's kept when other unset", got.FontSize)
	}
}
