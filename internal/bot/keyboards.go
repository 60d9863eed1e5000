package bot

import "github.com/frrrka/menstrualni-bot/internal/models"

const (
	callbackSetup     = "setup"
	callbackStatus    = "status"
	callbackReminders = "reminders"
	callbackToday     = "today"

	callbackMoodPrefix = "mood_"
	callbackSignPrefix = "sign_"
	callbackSignSkip   = "sign_skip"
)

func mainMenuKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{
			{{Text: "📅 Podesi ciklus", CallbackData: callbackSetup}},
			{{Text: "📊 Moj ciklus", CallbackData: callbackStatus}},
			{{Text: "🔔 Podsetnik 22:00", CallbackData: callbackReminders}},
			{{Text: "📍 Trenutni dan", CallbackData: callbackToday}},
		},
	}
}

func moodKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{
			{
				{Text: "🌟 Sjajan", CallbackData: callbackMoodPrefix + string(models.MoodSjajan)},
				{Text: "😐 Onako", CallbackData: callbackMoodPrefix + string(models.MoodOnako)},
			},
			{
				{Text: "😣 Težak", CallbackData: callbackMoodPrefix + string(models.MoodTezak)},
				{Text: "🔥 Stresan", CallbackData: callbackMoodPrefix + string(models.MoodStresan)},
			},
		},
	}
}

var signLabels = map[models.StarSign]string{
	models.SignOvan:     "♈ Ovan",
	models.SignBik:      "♉ Bik",
	models.SignBlizanci: "♊ Blizanci",
	models.SignRak:      "♋ Rak",
	models.SignLav:      "♌ Lav",
	models.SignDevica:   "♍ Devica",
	models.SignVaga:     "♎ Vaga",
	models.SignSkorpija: "♏ Škorpija",
	models.SignStrelac:  "♐ Strelac",
	models.SignJarac:    "♑ Jarac",
	models.SignVodolija: "♒ Vodolija",
	models.SignRibe:     "♓ Ribe",
}

func signKeyboard() *InlineKeyboardMarkup {
	signs := models.AllStarSigns()
	rows := make([][]InlineKeyboardButton, 0, len(signs)/3+1)
	for index := 0; index < len(signs); index += 3 {
		row := make([]InlineKeyboardButton, 0, 3)
		for _, sign := range signs[index:min(index+3, len(signs))] {
			row = append(row, InlineKeyboardButton{
				Text:         signLabels[sign],
				CallbackData: callbackSignPrefix + string(sign),
			})
		}
		rows = append(rows, row)
	}
	rows = append(rows, []InlineKeyboardButton{
		{Text: "Preskoči", CallbackData: callbackSignSkip},
	})
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}
