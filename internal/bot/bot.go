package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/frrrka/menstrualni-bot/internal/content"
	"github.com/frrrka/menstrualni-bot/internal/models"
	"github.com/frrrka/menstrualni-bot/internal/services"
)

const handlerTimeout = 30 * time.Second

// Bot is the presentation layer: it turns Telegram updates into assistant
// calls and assistant results into messages. All cycle logic lives in the
// services package.
type Bot struct {
	client    *Client
	assistant *services.AssistantService
	catalog   *content.Catalog
	wizard    *wizardState

	mu        sync.Mutex
	chatLocks map[int64]*sync.Mutex
}

func New(client *Client, assistant *services.AssistantService, catalog *content.Catalog) *Bot {
	return &Bot{
		client:    client,
		assistant: assistant,
		catalog:   catalog,
		wizard:    newWizardState(),
		chatLocks: make(map[int64]*sync.Mutex),
	}
}

func (bot *Bot) chatLock(chatID int64) *sync.Mutex {
	bot.mu.Lock()
	defer bot.mu.Unlock()

	lock, exists := bot.chatLocks[chatID]
	if !exists {
		lock = &sync.Mutex{}
		bot.chatLocks[chatID] = lock
	}
	return lock
}

// HandleUpdate processes one update. Updates for the same chat are handled
// one at a time: the wizard draft is mutated without further locking and
// assumes no concurrent handler for its chat.
func (bot *Bot) HandleUpdate(ctx context.Context, update Update) {
	chatID, known := updateChatID(update)
	if !known {
		return
	}

	lock := bot.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	switch {
	case update.CallbackQuery != nil:
		bot.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		bot.handleMessage(ctx, update.Message)
	}
}

func updateChatID(update Update) (int64, bool) {
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.Message.Chat.ID, true
	case update.Message != nil:
		return update.Message.Chat.ID, true
	}
	return 0, false
}

// HandleDailyFire is the scheduler's handler: render the 22:00 reminder
// with the mood keyboard, or a corrective prompt for unconfigured chats.
func (bot *Bot) HandleDailyFire(chatID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	render, err := bot.assistant.DailyFire(chatID)
	if err != nil {
		return fmt.Errorf("build reminder for chat %d: %w", chatID, err)
	}

	if !render.DayKnown {
		text := "⏰ Podsetnik 22:00\n\n" + missingSetupPrompt
		return bot.client.SendMessage(ctx, chatID, text, mainMenuKeyboard())
	}

	return bot.client.SendMessage(ctx, chatID, bot.renderReminder(render), moodKeyboard())
}

func (bot *Bot) handleMessage(ctx context.Context, message *Message) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch {
	case strings.HasPrefix(text, "/start"):
		bot.wizard.clear(chatID)
		bot.handleStart(ctx, chatID)
	case strings.HasPrefix(text, "/help"):
		bot.handleHelp(ctx, chatID)
	case strings.HasPrefix(text, "/stop"):
		bot.handleStop(ctx, chatID)
	default:
		if _, active := bot.wizard.current(chatID); active {
			bot.handleWizardInput(ctx, chatID, text)
		}
	}
}

func (bot *Bot) handleStart(ctx context.Context, chatID int64) {
	if _, err := bot.assistant.FirstContact(chatID); err != nil {
		log.Printf("telegram: first contact for chat %d failed: %v", chatID, err)
		bot.reply(ctx, chatID, "Nešto je puklo kod mene. Probaj ponovo za koji minut.", nil)
		return
	}

	text := "Hej, ja sam tvoj lični bot za menstrualni ciklus. 🤖🩸\n\n" +
		"Mogu da ti:\n" +
		"• pratim ciklus\n" +
		"• približno računam plodne dane\n" +
		"• šaljem podsetnik SVAKO VEČE u 22:00 da upišeš kakav ti je bio dan\n" +
		"• povežem raspoloženje sa fazom ciklusa, vremenom i horoskopom tog dana\n" +
		"• kroz „📍 Trenutni dan“ objasnim šta se otprilike sada dešava u tvom telu\n\n" +
		"Napomena: nisam doktor, samo alat za organizaciju. Za zdravstvene nedoumice uvek se obrati ginekologu. ❤️\n\n" +
		"Izaberi opciju:"
	bot.reply(ctx, chatID, text, mainMenuKeyboard())
}

func (bot *Bot) handleHelp(ctx context.Context, chatID int64) {
	text := "/start – meni\n" +
		"/stop – gasi podsetnik u 22:00\n\n" +
		"Za promenu podataka idi na /start pa '📅 Podesi ciklus'."
	bot.reply(ctx, chatID, text, mainMenuKeyboard())
}

func (bot *Bot) handleStop(ctx context.Context, chatID int64) {
	render, err := bot.assistant.Overview(chatID)
	if err != nil {
		log.Printf("telegram: load profile for chat %d failed: %v", chatID, err)
		return
	}

	if !render.Profile.DailyEnabled {
		bot.reply(ctx, chatID, "Nisi imala uključen podsetnik.", mainMenuKeyboard())
		return
	}

	if _, err := bot.assistant.ToggleDaily(chatID); err != nil {
		log.Printf("telegram: disable reminder for chat %d failed: %v", chatID, err)
		return
	}
	bot.reply(ctx, chatID, "Isključila si podsetnik u 22:00. 🔕", mainMenuKeyboard())
}

func (bot *Bot) handleCallback(ctx context.Context, callback *CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	if err := bot.client.AnswerCallbackQuery(ctx, callback.ID); err != nil {
		log.Printf("telegram: answer callback failed: %v", err)
	}

	data := callback.Data
	switch {
	case strings.HasPrefix(data, callbackMoodPrefix):
		bot.handleMoodCallback(ctx, chatID, callback.Message.MessageID, strings.TrimPrefix(data, callbackMoodPrefix))
	case data == callbackSignSkip:
		bot.handleSignCallback(ctx, chatID, callback.Message.MessageID, "")
	case strings.HasPrefix(data, callbackSignPrefix):
		bot.handleSignCallback(ctx, chatID, callback.Message.MessageID, strings.TrimPrefix(data, callbackSignPrefix))
	case data == callbackSetup:
		bot.wizard.begin(chatID)
		bot.edit(ctx, chatID, callback.Message.MessageID, "Unesi dužinu ciklusa u danima, na primer 28:", nil)
	case data == callbackStatus:
		bot.handleStatusCallback(ctx, chatID, callback.Message.MessageID)
	case data == callbackReminders:
		bot.handleRemindersCallback(ctx, chatID, callback.Message.MessageID)
	case data == callbackToday:
		bot.handleTodayCallback(ctx, chatID, callback.Message.MessageID)
	}
}

func (bot *Bot) handleStatusCallback(ctx context.Context, chatID int64, messageID int64) {
	render, err := bot.assistant.Overview(chatID)
	if err != nil {
		log.Printf("telegram: status for chat %d failed: %v", chatID, err)
		return
	}
	bot.edit(ctx, chatID, messageID, bot.renderStatus(render), mainMenuKeyboard())
}

func (bot *Bot) handleRemindersCallback(ctx context.Context, chatID int64, messageID int64) {
	enabled, err := bot.assistant.ToggleDaily(chatID)
	if err != nil {
		log.Printf("telegram: toggle reminder for chat %d failed: %v", chatID, err)
		return
	}

	text := "Isključila si svakodnevni podsetnik u 22:00. 🔕"
	if enabled {
		text = "Uključila si svakodnevni podsetnik u 22:00. 🔔"
	}
	bot.edit(ctx, chatID, messageID, text, mainMenuKeyboard())
}

func (bot *Bot) handleTodayCallback(ctx context.Context, chatID int64, messageID int64) {
	render, err := bot.assistant.Today(ctx, chatID)
	if err != nil {
		log.Printf("telegram: today view for chat %d failed: %v", chatID, err)
		return
	}

	if !render.DayKnown {
		bot.edit(ctx, chatID, messageID, missingSetupPrompt, mainMenuKeyboard())
		return
	}
	bot.edit(ctx, chatID, messageID, bot.renderTodayOverview(render), mainMenuKeyboard())
}

func (bot *Bot) handleMoodCallback(ctx context.Context, chatID int64, messageID int64, rawMood string) {
	mood, known := models.ParseMood(rawMood)
	if !known {
		return
	}

	render, err := bot.assistant.MoodReport(ctx, chatID, mood)
	if err != nil {
		log.Printf("telegram: mood report for chat %d failed: %v", chatID, err)
		return
	}

	if !render.DayKnown {
		bot.edit(ctx, chatID, messageID, "Nemam podatke o ciklusu. Idi na /start pa '📅 Podesi ciklus'.", mainMenuKeyboard())
		return
	}
	bot.edit(ctx, chatID, messageID, bot.renderMoodMessage(render), mainMenuKeyboard())
}

func (bot *Bot) handleSignCallback(ctx context.Context, chatID int64, messageID int64, rawSign string) {
	if _, err := bot.assistant.ConfigureSign(chatID, models.StarSign(rawSign)); err != nil {
		log.Printf("telegram: configure sign for chat %d failed: %v", chatID, err)
		return
	}
	bot.wizard.clear(chatID)

	text := "Zabeleženo. 📌 Horoskop će od sada biti deo tvojih dnevnih poruka."
	if rawSign == "" {
		text = "Nema problema, preskačemo horoskop. 📌"
	}
	bot.edit(ctx, chatID, messageID, text, mainMenuKeyboard())
}

func (bot *Bot) handleWizardInput(ctx context.Context, chatID int64, text string) {
	draft, active := bot.wizard.current(chatID)
	if !active {
		return
	}

	switch draft.step {
	case stepCycleLength:
		value, err := strconv.Atoi(text)
		if err != nil || !services.IsValidCycleLength(value) {
			bot.reply(ctx, chatID, "Upiši broj dana između 20 i 45, na primer 28:", nil)
			return
		}
		draft.cycleLength = value
		draft.step = stepPeriodLength
		bot.reply(ctx, chatID, "OK. Sada upiši koliko dana obično traje menstruacija, na primer 5:", nil)

	case stepPeriodLength:
		value, err := strconv.Atoi(text)
		if err != nil || !services.IsValidPeriodLength(value) {
			bot.reply(ctx, chatID, "Upiši broj dana između 2 i 10, na primer 5:", nil)
			return
		}
		draft.periodLength = value
		draft.step = stepLastStart
		bot.reply(ctx, chatID, "Super. Sada mi pošalji datum kada je poslednja menstruacija počela.\nFormat: dd.mm.gggg. na primer 21.11.2025.", nil)

	case stepLastStart:
		bot.handleWizardLastStart(ctx, chatID, draft, text)
	}
}

func (bot *Bot) handleWizardLastStart(ctx context.Context, chatID int64, draft *wizardDraft, text string) {
	start, err := services.ParseLastStart(text, time.Local)
	if err != nil {
		bot.reply(ctx, chatID, "Ne mogu da pročitam datum. Pošalji ga u formatu dd.mm.gggg. na primer 21.11.2025.", nil)
		return
	}

	profile, err := bot.assistant.ConfigureCycle(chatID, services.CycleConfig{
		CycleLength:  draft.cycleLength,
		PeriodLength: draft.periodLength,
		LastStart:    start,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLastStartInFuture):
			bot.reply(ctx, chatID, "Taj datum je u budućnosti. Pošalji datum kada je menstruacija stvarno počela:", nil)
		case errors.Is(err, services.ErrLastStartTooOld):
			bot.reply(ctx, chatID, "Taj datum je stariji od 90 dana. Pošalji datum poslednje menstruacije:", nil)
		default:
			log.Printf("telegram: configure cycle for chat %d failed: %v", chatID, err)
			bot.reply(ctx, chatID, "Nešto je puklo kod mene. Probaj ponovo za koji minut.", nil)
		}
		return
	}

	draft.step = stepSign

	milestones, _ := services.ComputeMilestones(profile)
	text = fmt.Sprintf(
		"Zabeležila sam datum. 📌\n\n"+
			"Sledeća menstruacija je okvirno oko: %s\n"+
			"Plodni dani: %s - %s\n\n"+
			"Zapamti, ovo su samo procene. Ako imaš bilo kakvih zdravstvenih nedoumica, javi se svom ginekologu. ❤️\n\n"+
			"Još samo jedno: koji si horoskopski znak?",
		milestones.NextStart.Format(dateFormat),
		milestones.FertileStart.Format(dateFormat),
		milestones.FertileEnd.Format(dateFormat),
	)
	bot.reply(ctx, chatID, text, signKeyboard())
}

func (bot *Bot) reply(ctx context.Context, chatID int64, text string, markup *InlineKeyboardMarkup) {
	if err := bot.client.SendMessage(ctx, chatID, text, markup); err != nil {
		log.Printf("telegram: send to chat %d failed: %v", chatID, err)
	}
}

func (bot *Bot) edit(ctx context.Context, chatID int64, messageID int64, text string, markup *InlineKeyboardMarkup) {
	if err := bot.client.EditMessageText(ctx, chatID, messageID, text, markup); err != nil {
		log.Printf("telegram: edit in chat %d failed: %v", chatID, err)
	}
}
