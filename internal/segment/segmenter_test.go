package segment

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ppiankov/statementizer/internal/cache"
	"github.com/ppiankov/statementizer/internal/model"
)

// stubModel splits on newlines so tests do not depend on trained data
type stubModel struct {
	calls int
}

func (m *stubModel) Sentences(text string) []string {
	m.calls++
	return strings.Split(text, "\n")
}

func mustNew(t *testing.T, strategy model.Strategy, opts ...Option) *Segmenter {
	t.Helper()
	s, err := New(strategy, opts...)
	if err != nil {
		t.Fatalf("New(%s) failed: %v", strategy, err)
	}
	return s
}

func TestSegment_TagAware(t *testing.T) {
	s := mustNew(t, model.StrategyTagAware)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "tags trail prose",
			text: "Hello world. #tag1 #tag2",
			want: []string{"Hello world.", "#tag1 #tag2"},
		},
		{
			name: "no tags",
			text: "Hello world.",
			want: []string{"Hello world."},
		},
		{
			name: "tags in the middle keep their order",
			text: "Great #launch day. Buy now! #sale Limited stock",
			want: []string{"Great  day.", "Buy now!", "Limited stock", "#launch #sale"},
		},
		{
			name: "only tags",
			text: "#one #two",
			want: []string{"#one #two"},
		},
		{
			name: "no boundary keeps whole text",
			text: "  lowercase after stop. still one #x ",
			want: []string{"lowercase after stop. still one", "#x"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: " \t\n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Segment(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Segment(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestSegment_Sentence(t *testing.T) {
	s := mustNew(t, model.StrategySentence)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "three terminators",
			text: "First one. Second one! Third one? Fourth",
			want: []string{"First one.", "Second one!", "Third one?", "Fourth"},
		},
		{
			name: "no capital after period",
			text: "This is one sentence without a capital after period.end",
			want: []string{"This is one sentence without a capital after period.end"},
		},
		{
			name: "lowercase after space is not a boundary",
			text: "e.g. this stays together. And this splits",
			want: []string{"e.g. this stays together.", "And this splits"},
		},
		{
			name: "tags are kept as prose",
			text: "Hello world. #tag1 #tag2",
			want: []string{"Hello world. #tag1 #tag2"},
		},
		{
			name: "newlines count as whitespace",
			text: "Line one.\n\nLine two.",
			want: []string{"Line one.", "Line two."},
		},
		{
			name: "information separators count as whitespace",
			text: "A.\x1cB",
			want: []string{"A.", "B"},
		},
		{
			name: "digits do not start a sentence",
			text: "Version 2. 3 items left.",
			want: []string{"Version 2. 3 items left."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Segment(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Segment(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestSegment_SentenceReconstructsText(t *testing.T) {
	s := mustNew(t, model.StrategySentence)

	inputs := []string{
		"A b. C d!  E f?\nG h",
		"One sentence only",
		"Dr. Who arrived. Then left!",
		"Wait...  What?\tYes.",
	}

	for _, text := range inputs {
		got := strings.Join(s.Segment(text), " ")
		if normalize(got) != normalize(text) {
			t.Errorf("joined statements %q do not reconstruct %q", got, text)
		}
		if strings.ReplaceAll(got, " ", "") != strings.Join(strings.Fields(text), "") {
			t.Errorf("characters changed for %q: %q", text, got)
		}
	}
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestSegment_Whole(t *testing.T) {
	s := mustNew(t, model.StrategyWhole)

	got := s.Segment("  First one. Second one. #tag  ")
	want := []string{"First one. Second one. #tag"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("whole mismatch (-want +got):\n%s", diff)
	}

	if got := s.Segment(""); len(got) != 0 {
		t.Errorf("expected no statements for empty text, got %v", got)
	}
}

func TestSegment_WholeWithTags(t *testing.T) {
	s := mustNew(t, model.StrategyWhole, WithTags(true))

	got := s.Segment("First one. Second one. #a #b")
	want := []string{"First one. Second one.", "#a #b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("whole+tags mismatch (-want +got):\n%s", diff)
	}
}

func TestSegment_TagAwareIgnoresWithTagsFalse(t *testing.T) {
	s := mustNew(t, model.StrategyTagAware, WithTags(false))
	if !s.ExtractsTags() {
		t.Error("expected tag-aware strategy to always extract tags")
	}
}

func TestSegment_LinguisticUsesModel(t *testing.T) {
	m := &stubModel{}
	s := mustNew(t, model.StrategyLinguistic, WithModel(m))

	got := s.Segment("First line\n  \n...\n--\nSecond line 2")
	want := []string{"First line", "Second line 2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("linguistic mismatch (-want +got):\n%s", diff)
	}
	if m.calls != 1 {
		t.Errorf("expected 1 model call, got %d", m.calls)
	}
}

func TestSegment_LinguisticEmptySkipsModel(t *testing.T) {
	m := &stubModel{}
	s := mustNew(t, model.StrategyLinguistic, WithModel(m))

	if got := s.Segment("   "); len(got) != 0 {
		t.Errorf("expected no statements, got %v", got)
	}
	if m.calls != 0 {
		t.Errorf("expected model not to be called for empty text, got %d calls", m.calls)
	}
}

func TestSegment_LinguisticWithTags(t *testing.T) {
	s := mustNew(t, model.StrategyLinguistic, WithModel(&stubModel{}), WithTags(true))

	got := s.Segment("Line one #x\nLine two")
	want := []string{"Line one", "Line two", "#x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("linguistic+tags mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_LinguisticRequiresModel(t *testing.T) {
	_, err := New(model.StrategyLinguistic)
	if !errors.Is(err, model.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNew_UnknownStrategy(t *testing.T) {
	_, err := New(model.Strategy("paragraph"))
	if !errors.Is(err, model.ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestSegment_EmptyForEveryStrategy(t *testing.T) {
	for _, strategy := range model.Strategies() {
		s := mustNew(t, strategy, WithModel(&stubModel{}))
		if got := s.Segment(""); len(got) != 0 {
			t.Errorf("%s: expected no statements for empty text, got %v", strategy, got)
		}
	}
}

func TestSegment_NeverEmitsEmptyStatements(t *testing.T) {
	inputs := []string{"#a", ". . .", "A.  B.   ", "#a. #b. C", "\n\n"}
	for _, strategy := range model.Strategies() {
		s := mustNew(t, strategy, WithModel(&stubModel{}), WithTags(true))
		for _, in := range inputs {
			for _, st := range s.Segment(in) {
				if strings.TrimSpace(st) == "" || st != strings.TrimSpace(st) {
					t.Errorf("%s: Segment(%q) emitted untrimmed or empty statement %q", strategy, in, st)
				}
			}
		}
	}
}

func TestSegment_StripHTML(t *testing.T) {
	s := mustNew(t, model.StrategyTagAware, WithHTML(true))

	got := s.Segment("<p>Fish &amp; chips.</p><p>Best in town!</p><script>var x = 1;</script> #food")
	want := []string{"Fish & chips.", "Best in town!", "#food"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("html mismatch (-want +got):\n%s", diff)
	}
}

func TestSegment_SegmentValueCoerces(t *testing.T) {
	s := mustNew(t, model.StrategySentence)

	tests := []struct {
		value model.Value
		want  []string
	}{
		{nil, nil},
		{int64(42), []string{"42"}},
		{3.5, []string{"3.5"}},
		{true, []string{"true"}},
		{" Text. More ", []string{"Text.", "More"}},
	}

	for _, tt := range tests {
		got := s.SegmentValue(tt.value)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("SegmentValue(%v) mismatch (-want +got):\n%s", tt.value, diff)
		}
	}
}

func TestSegment_Cache(t *testing.T) {
	m := &stubModel{}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	s := mustNew(t, model.StrategyLinguistic, WithModel(m), WithCache(c))

	first := s.Segment("a\nb")
	second := s.Segment("a\nb")

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached result differs (-first +second):\n%s", diff)
	}
	if m.calls != 1 {
		t.Errorf("expected model to be called once, got %d", m.calls)
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}
}

func TestSegment_CacheSeparatesSettings(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	plain := mustNew(t, model.StrategySentence, WithCache(c))
	tagged := mustNew(t, model.StrategyTagAware, WithCache(c))

	text := "Hello world. #x"
	if got := plain.Segment(text); len(got) != 1 {
		t.Errorf("expected 1 statement from sentence strategy, got %v", got)
	}
	if got := tagged.Segment(text); len(got) != 2 {
		t.Errorf("expected 2 statements from tag-aware strategy, got %v", got)
	}
}
