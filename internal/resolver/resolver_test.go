package resolver

import (
	"testing"

	"moodchat/internal/classifier"
	"moodchat/internal/models"
)

// fixedPredictor always predicts the same label and counts calls.
type fixedPredictor struct {
	label string
	calls int
}

func (p *fixedPredictor) Predict(string) string {
	p.calls++
	return p.label
}

func TestResolve_ExactPhraseAnyThreshold(t *testing.T) {
	lex := NewLexicon([]models.LabeledPhrase{
		{Input: "Hi", Label: "hello!"},
		{Input: "hi!", Label: "shout"},
		{Input: "how are you", Label: "i am fine"},
	})

	for _, threshold := range []int{0, 50, 70, 75, 100} {
		r := New("reply", lex, &fixedPredictor{label: "fallback"}, threshold)
		for _, input := range []string{"hi", "HI", "How Are You", "hi!"} {
			want, _ := lex.Label(input)
			got := r.Resolve(input)
			if got.Label != want || !got.FromLexicon() {
				t.Errorf("threshold %d: Resolve(%q) = %+v, want lexicon label %q", threshold, input, got, want)
			}
		}
	}
}

func TestResolve_NearMatchAndFallback(t *testing.T) {
	pred := &fixedPredictor{label: "classifier says"}
	r := New("reply", NewLexicon([]models.LabeledPhrase{{Input: "hi", Label: "hello!"}}), pred, 70)

	got := r.Resolve("hii")
	if got.Label != "hello!" || got.Source != models.SourceLexicon {
		t.Errorf("Resolve(%q) = %+v, want lexicon %q", "hii", got, "hello!")
	}
	if got.Score < 70 {
		t.Errorf("Resolve(%q) score = %d, want >= 70", "hii", got.Score)
	}
	if pred.calls != 0 {
		t.Errorf("classifier called %d times on lexicon path, want 0", pred.calls)
	}

	got = r.Resolve("completely unrelated sentence")
	if got.Label != "classifier says" || got.Source != models.SourceClassifier {
		t.Errorf("Resolve(unrelated) = %+v, want classifier label", got)
	}
	if pred.calls != 1 {
		t.Errorf("classifier called %d times, want 1", pred.calls)
	}
}

func TestResolve_ThresholdInclusive(t *testing.T) {
	lex := NewLexicon([]models.LabeledPhrase{{Input: "hi", Label: "hello!"}})
	best, _ := lex.Match("hii")

	at := New("reply", lex, &fixedPredictor{label: "x"}, best.Score).Resolve("hii")
	if !at.FromLexicon() {
		t.Errorf("threshold == score (%d) should take the lexicon path", best.Score)
	}

	above := New("reply", lex, &fixedPredictor{label: "x"}, best.Score+1).Resolve("hii")
	if above.FromLexicon() {
		t.Errorf("threshold above score (%d) should fall back", best.Score)
	}
}

func TestResolve_MonotonicFallback(t *testing.T) {
	lex := NewLexicon([]models.LabeledPhrase{
		{Input: "good morning", Label: "morning!"},
		{Input: "i am sad", Label: "sad"},
		{Input: "enna panra", Label: "summa"},
	})
	inputs := []string{"good mornin", "im so sad", "enna da panra", "xyz", "", "morning"}

	for _, input := range inputs {
		fellBack := false
		for threshold := 0; threshold <= 101; threshold++ {
			res := New("reply", lex, &fixedPredictor{label: "model"}, threshold).Resolve(input)
			if fellBack && res.FromLexicon() {
				t.Errorf("Resolve(%q) switched back to lexicon at threshold %d", input, threshold)
			}
			if !res.FromLexicon() {
				fellBack = true
			}
		}
		if !fellBack {
			t.Errorf("Resolve(%q) never fell back, even at threshold 101", input)
		}
	}
}

func TestResolve_EmptyInput(t *testing.T) {
	rows := []models.LabeledPhrase{
		{Input: "i am so happy", Label: "happy"},
		{Input: "i am sad", Label: "sad"},
	}
	model, err := classifier.Fit(rows, classifier.DefaultConfig())
	if err != nil {
		t.Fatalf("classifier.Fit() error = %v", err)
	}

	r := New("emotion", NewLexicon(rows), model, 70)
	got := r.Resolve("")
	if got.Source != models.SourceClassifier {
		t.Errorf("Resolve(\"\") source = %q, want classifier", got.Source)
	}
	if got.Label != "happy" && got.Label != "sad" {
		t.Errorf("Resolve(\"\") label = %q, want a trained label", got.Label)
	}
}

func TestResolve_EmptyPhraseNeverMatches(t *testing.T) {
	pred := &fixedPredictor{label: "model"}
	lex := NewLexicon([]models.LabeledPhrase{
		{Input: "", Label: "blank"},
		{Input: "?!", Label: "punct"},
		{Input: "hi", Label: "hello!"},
	})
	if lex.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", lex.Len())
	}

	r := New("reply", lex, pred, 70)
	for _, text := range []string{"", "?!", "!!"} {
		got := r.Resolve(text)
		if got.Source != models.SourceClassifier || got.Label != "model" {
			t.Errorf("Resolve(%q) = %+v, want classifier fallback", text, got)
		}
	}
	if got := r.Resolve("hi"); got.Label != "hello!" || got.Source != models.SourceLexicon {
		t.Errorf("Resolve(\"hi\") = %+v, want lexicon match", got)
	}
}

func TestResolve_EmptyLexicon(t *testing.T) {
	pred := &fixedPredictor{label: "model"}
	r := New("reply", NewLexicon(nil), pred, 0)

	got := r.Resolve("anything")
	if got.Label != "model" || got.Source != models.SourceClassifier || got.Score != -1 {
		t.Errorf("Resolve() = %+v, want classifier fallback with score -1", got)
	}

	if New("reply", nil, pred, 0).Lexicon().Len() != 0 {
		t.Error("nil lexicon should behave as empty")
	}
}

func TestLexicon_DuplicateLastWins(t *testing.T) {
	lex := NewLexicon([]models.LabeledPhrase{
		{Input: "hello", Label: "first"},
		{Input: "bye", Label: "see you"},
		{Input: "HELLO", Label: "second"},
	})

	if lex.Len() != 2 {
		t.Errorf("Len() = %d, want 2", lex.Len())
	}
	if got, _ := lex.Label("hello"); got != "second" {
		t.Errorf("Label(hello) = %q, want %q", got, "second")
	}

	res := New("reply", lex, &fixedPredictor{label: "x"}, 70).Resolve("hello")
	if res.Label != "second" {
		t.Errorf("Resolve(hello) = %q, want %q", res.Label, "second")
	}
}

func TestResolve_Deterministic(t *testing.T) {
	lex := NewLexicon([]models.LabeledPhrase{
		{Input: "good night", Label: "night"},
		{Input: "good evening", Label: "evening"},
		{Input: "good morning", Label: "morning"},
	})
	r := New("reply", lex, &fixedPredictor{label: "model"}, 70)

	for _, input := range []string{"good nite", "good", "evening good", ""} {
		first := r.Resolve(input)
		for i := 0; i < 3; i++ {
			if again := r.Resolve(input); again != first {
				t.Errorf("Resolve(%q) run %d = %+v, want %+v", input, i, again, first)
			}
		}
	}
}

func TestResolver_Accessors(t *testing.T) {
	r := New("emotion", nil, &fixedPredictor{}, 75)
	if r.Category() != "emotion" {
		t.Errorf("Category() = %q", r.Category())
	}
	if r.Threshold() != 75 {
		t.Errorf("Threshold() = %d", r.Threshold())
	}
}
