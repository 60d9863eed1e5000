package content

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/frrrka/menstrualni-bot/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type PhaseCopy struct {
	Block string `yaml:"block"`
	Tip   string `yaml:"tip"`
}

type StreakLine struct {
	MinStreak int    `yaml:"min_streak"`
	Text      string `yaml:"text"`
}

// Catalog holds every piece of message copy, keyed by the closed enums.
// Lookups never match on message text; the enums are the contract.
type Catalog struct {
	Phases            map[string]PhaseCopy `yaml:"phases"`
	Weather           map[string]string    `yaml:"weather"`
	Moods             map[string]string    `yaml:"moods"`
	StreakLines       []StreakLine         `yaml:"streak_lines"`
	HoroscopeFallback map[string]string    `yaml:"horoscope_fallback"`
	Closing           string               `yaml:"closing"`
	MoodClosing       string               `yaml:"mood_closing"`
}

// Load parses the embedded catalog and verifies that every enum value has
// copy, so a missing key fails at startup instead of mid-conversation.
func Load() (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(catalogYAML, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	for _, phase := range models.AllPhases() {
		copyBlock, exists := catalog.Phases[string(phase)]
		if !exists || copyBlock.Block == "" || copyBlock.Tip == "" {
			return nil, fmt.Errorf("catalog: phase %q copy missing", phase)
		}
	}
	for _, kind := range models.AllWeatherKinds() {
		if catalog.Weather[string(kind)] == "" {
			return nil, fmt.Errorf("catalog: weather %q copy missing", kind)
		}
	}
	for _, mood := range models.AllMoods() {
		if catalog.Moods[string(mood)] == "" {
			return nil, fmt.Errorf("catalog: mood %q copy missing", mood)
		}
	}
	for _, sign := range models.AllStarSigns() {
		if catalog.HoroscopeFallback[string(sign)] == "" {
			return nil, fmt.Errorf("catalog: horoscope fallback for %q missing", sign)
		}
	}

	sort.Slice(catalog.StreakLines, func(i, j int) bool {
		return catalog.StreakLines[i].MinStreak < catalog.StreakLines[j].MinStreak
	})

	return &catalog, nil
}

func (catalog *Catalog) PhaseBlock(phase models.Phase) string {
	return catalog.Phases[string(phase)].Block
}

func (catalog *Catalog) Tip(phase models.Phase) string {
	return catalog.Phases[string(phase)].Tip
}

func (catalog *Catalog) WeatherBlock(kind models.WeatherKind) string {
	return catalog.Weather[string(kind)]
}

func (catalog *Catalog) MoodBlock(mood models.Mood) string {
	return catalog.Moods[string(mood)]
}

// StreakEscalation returns the strongest escalation line whose threshold
// the streak has reached, if any.
func (catalog *Catalog) StreakEscalation(streak int) (string, bool) {
	text := ""
	for _, line := range catalog.StreakLines {
		if streak >= line.MinStreak {
			text = line.Text
		}
	}
	return text, text != ""
}

func (catalog *Catalog) Horoscope(sign models.StarSign) string {
	return catalog.HoroscopeFallback[string(sign)]
}
