package bot

import (
	"fmt"
	"strings"

	"github.com/frrrka/menstrualni-bot/internal/services"
)

const dateFormat = "02.01.2006."

const missingSetupPrompt = "Nemam podatak o početku ciklusa.\n" +
	"Klikni na '📅 Podesi ciklus' i unesi datum poslednje menstruacije."

func (bot *Bot) renderTodayOverview(render services.RenderContext) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "📍 *Danas je %d. dan od početka tvog ciklusa.*\n\n", render.Day.DayOfCycle)
	if render.WeatherKnown {
		builder.WriteString(bot.catalog.WeatherBlock(render.Weather))
		builder.WriteString("\n\n")
	}
	builder.WriteString(bot.catalog.PhaseBlock(render.Day.Phase))
	builder.WriteString("\n\n")
	bot.writeHoroscope(&builder, render)
	builder.WriteString(bot.catalog.Tip(render.Day.Phase))
	builder.WriteString("\n\n")
	builder.WriteString(bot.catalog.Closing)

	return builder.String()
}

func (bot *Bot) renderMoodMessage(render services.RenderContext) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "🧠 *Kako ti je prošao dan?*\nDanas je %d. dan od početka tvog ciklusa.\n\n", render.Day.DayOfCycle)
	if render.WeatherKnown {
		builder.WriteString(bot.catalog.WeatherBlock(render.Weather))
		builder.WriteString("\n\n")
	}
	builder.WriteString(bot.catalog.PhaseBlock(render.Day.Phase))
	builder.WriteString("\n\n")
	builder.WriteString(bot.catalog.MoodBlock(render.Mood))
	builder.WriteString("\n\n")
	if line, escalated := bot.catalog.StreakEscalation(render.Streak); escalated {
		builder.WriteString(line)
		builder.WriteString("\n\n")
	}
	bot.writeHoroscope(&builder, render)
	builder.WriteString(bot.catalog.Tip(render.Day.Phase))
	builder.WriteString("\n\n")
	builder.WriteString(bot.catalog.MoodClosing)

	return builder.String()
}

func (bot *Bot) renderStatus(render services.RenderContext) string {
	profile := render.Profile
	if !profile.HasLastStart() {
		return "Još uvek nemam podatak kada je poslednja menstruacija počela.\n" +
			"Klikni na '📅 Podesi ciklus' i unesi datum."
	}

	var builder strings.Builder
	builder.WriteString("📊 *Trenutne postavke*\n\n")
	fmt.Fprintf(&builder, "• Dužina ciklusa: *%d* dana\n", profile.CycleLength)
	fmt.Fprintf(&builder, "• Trajanje menstruacije: *%d* dana\n", profile.PeriodLength)
	fmt.Fprintf(&builder, "• Poslednji početak: *%s*\n", profile.LastStart.Format(dateFormat))
	if sign, hasSign := profile.Sign(); hasSign {
		fmt.Fprintf(&builder, "• Horoskopski znak: *%s*\n", signLabels[sign])
	}
	builder.WriteString("\n")

	if render.MilesKnown {
		builder.WriteString("📆 *Procene*\n")
		fmt.Fprintf(&builder, "• Sledeća menstruacija oko: *%s*\n", render.Milestones.NextStart.Format(dateFormat))
		fmt.Fprintf(&builder, "• Plodni dani: *%s* - *%s*\n",
			render.Milestones.FertileStart.Format(dateFormat),
			render.Milestones.FertileEnd.Format(dateFormat))
		fmt.Fprintf(&builder, "• Kraj menstruacije: *%s*\n\n", render.Milestones.PeriodEnd.Format(dateFormat))
		builder.WriteString("_Sve su ovo procene, telo nije kalendar._ 🙂")
	}

	return builder.String()
}

func (bot *Bot) renderReminder(render services.RenderContext) string {
	return fmt.Sprintf(
		"⏰ Podsetnik 22:00\n\nDanas je %d. dan od početka tvog ciklusa.\n\nKako ti je bio dan? Izaberi najbližu opciju:",
		render.Day.DayOfCycle,
	)
}

func (bot *Bot) writeHoroscope(builder *strings.Builder, render services.RenderContext) {
	sign, hasSign := render.Profile.Sign()
	if !hasSign {
		return
	}

	builder.WriteString("🔮 *Horoskop za danas*\n")
	if render.HoroscopeKnown {
		builder.WriteString(render.Horoscope)
	} else {
		builder.WriteString(bot.catalog.Horoscope(sign))
	}
	builder.WriteString("\n\n")
}
