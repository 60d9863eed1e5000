package content

import (
	"strings"
	"testing"

	"github.com/frrrka/menstrualni-bot/internal/models"
)

func TestLoad_CoversEveryEnumValue(t *testing.T) {
	t.Parallel()

	catalog, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	for _, phase := range models.AllPhases() {
		if catalog.PhaseBlock(phase) == "" || catalog.Tip(phase) == "" {
			t.Errorf("phase %s missing copy", phase)
		}
	}
	for _, kind := range models.AllWeatherKinds() {
		if catalog.WeatherBlock(kind) == "" {
			t.Errorf("weather %s missing copy", kind)
		}
	}
	for _, mood := range models.AllMoods() {
		if catalog.MoodBlock(mood) == "" {
			t.Errorf("mood %s missing copy", mood)
		}
	}
	for _, sign := range models.AllStarSigns() {
		if catalog.Horoscope(sign) == "" {
			t.Errorf("sign %s missing fallback", sign)
		}
	}

	if catalog.Closing == "" || catalog.MoodClosing == "" {
		t.Error("closing lines missing")
	}
}

func TestLoad_QuotedCopySurvivesParsing(t *testing.T) {
	t.Parallel()

	catalog, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// The vaga line carries inline typographic quotes inside a quoted
	// scalar; a stray ASCII quote there truncates the whole value.
	text := catalog.Horoscope(models.SignVaga)
	if !strings.Contains(text, "„ne“") {
		t.Errorf("vaga fallback lost its quoted phrase: %q", text)
	}
	if !strings.HasSuffix(text, "viška.") {
		t.Errorf("vaga fallback truncated: %q", text)
	}
}

func TestStreakEscalation_PicksStrongestReachedLine(t *testing.T) {
	t.Parallel()

	catalog, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(catalog.StreakLines) < 2 {
		t.Fatalf("expected at least two escalation lines, got %d", len(catalog.StreakLines))
	}

	lowest := catalog.StreakLines[0]
	highest := catalog.StreakLines[len(catalog.StreakLines)-1]

	if _, ok := catalog.StreakEscalation(lowest.MinStreak - 1); ok {
		t.Error("expected no line below the lowest threshold")
	}

	text, ok := catalog.StreakEscalation(lowest.MinStreak)
	if !ok || text != lowest.Text {
		t.Errorf("at the lowest threshold got %q, want %q", text, lowest.Text)
	}

	text, ok = catalog.StreakEscalation(highest.MinStreak + 3)
	if !ok || text != highest.Text {
		t.Errorf("above the highest threshold got %q, want %q", text, highest.Text)
	}
}
