package models

// Phase is the closed set of cycle phase classifications. Downstream
// lookups (copy tables, tips) key off these values, never off message text.
type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulation  Phase = "ovulation"
	PhaseLuteal     Phase = "luteal"
)

func AllPhases() []Phase {
	return []Phase{PhaseMenstrual, PhaseFollicular, PhaseOvulation, PhaseLuteal}
}

// Mood mirrors the four reply-keyboard options. MoodSjajan is the best
// category and resets the streak.
type Mood string

const (
	MoodSjajan  Mood = "sjajan"
	MoodOnako   Mood = "onako"
	MoodTezak   Mood = "tezak"
	MoodStresan Mood = "stresan"
)

func AllMoods() []Mood {
	return []Mood{MoodSjajan, MoodOnako, MoodTezak, MoodStresan}
}

func (mood Mood) IsBest() bool {
	return mood == MoodSjajan
}

func ParseMood(value string) (Mood, bool) {
	for _, mood := range AllMoods() {
		if string(mood) == value {
			return mood, true
		}
	}
	return "", false
}

// WeatherKind is the coarse category the weather provider maps conditions
// into. An unknown or unavailable reading is represented by absence, not a
// fifth value.
type WeatherKind string

const (
	WeatherSuncano  WeatherKind = "suncano"
	WeatherKisovito WeatherKind = "kisovito"
	WeatherOblacno  WeatherKind = "oblacno"
)

func AllWeatherKinds() []WeatherKind {
	return []WeatherKind{WeatherSuncano, WeatherKisovito, WeatherOblacno}
}

type StarSign string

const (
	SignOvan     StarSign = "ovan"
	SignBik      StarSign = "bik"
	SignBlizanci StarSign = "blizanci"
	SignRak      StarSign = "rak"
	SignLav      StarSign = "lav"
	SignDevica   StarSign = "devica"
	SignVaga     StarSign = "vaga"
	SignSkorpija StarSign = "skorpija"
	SignStrelac  StarSign = "strelac"
	SignJarac    StarSign = "jarac"
	SignVodolija StarSign = "vodolija"
	SignRibe     StarSign = "ribe"
)

func AllStarSigns() []StarSign {
	return []StarSign{
		SignOvan, SignBik, SignBlizanci, SignRak,
		SignLav, SignDevica, SignVaga, SignSkorpija,
		SignStrelac, SignJarac, SignVodolija, SignRibe,
	}
}

func ParseStarSign(value string) (StarSign, bool) {
	for _, sign := range AllStarSigns() {
		if string(sign) == value {
			return sign, true
		}
	}
	return "", false
}
