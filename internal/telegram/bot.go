package telegram

import (
	"context"
	"fmt"
	"html"
	"log"
	"os"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/trivia"
)

const (
	defaultPollTimeout  = 60
	defaultFetchTimeout = 15 * time.Second
)

// Sender is the part of *tgbotapi.BotAPI the bot uses to talk to chats.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Options configures a Bot.
type Options struct {
	Bank     trivia.Bank
	Recorder quiz.Recorder
	Quiz     quiz.Config

	// PollTimeout is the long-poll timeout in seconds.
	PollTimeout  int
	FetchTimeout time.Duration

	Logger *log.Logger
}

// chat is one chat's running quiz.
type chat struct {
	session   *quiz.Session
	presenter *chatPresenter

	// messageID is the message holding the current question keyboard.
	messageID int
}

// Bot runs one quiz session per chat. Updates are handled one at a time,
// so sessions are never touched concurrently.
type Bot struct {
	api   *tgbotapi.BotAPI
	out   Sender
	opts  Options
	chats map[int64]*chat
	log   *log.Logger
}

// NewBot connects to the Telegram API with token.
func NewBot(token string, opts Options) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	b := newBot(api, opts)
	b.api = api
	return b, nil
}

func newBot(out Sender, opts Options) *Bot {
	if opts.Recorder == nil {
		opts.Recorder = quiz.NopRecorder{}
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = defaultPollTimeout
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "bot: ", log.LstdFlags)
	}
	return &Bot{
		out:   out,
		opts:  opts,
		chats: make(map[int64]*chat),
		log:   opts.Logger,
	}
}

// Run polls for updates until ctx is cancelled. Open sessions are closed
// on the way out.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Printf("authorised on account %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.opts.PollTimeout
	updates := b.api.GetUpdatesChan(u)

	defer b.closeAll()
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate dispatches one update.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message != nil && update.Message.Chat != nil {
		b.handleMessage(ctx, update.Message)
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID
	switch m.Command() {
	case "start":
		b.sendWelcome(chatID)
	case "quiz":
		b.startQuiz(ctx, chatID, displayName(m.From))
	case "score":
		b.sendScore(chatID)
	case "stop":
		b.stopQuiz(chatID)
	default:
		b.sendText(chatID, "Unknown command. Try /quiz, /score or /stop.")
	}
}

func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	chatID := q.Message.Chat.ID

	cb, ok := parseCallback(q.Data)
	if !ok {
		b.answerCallback(q.ID, "Unknown action", false)
		return
	}

	switch cb.action {
	case dataNewQuiz:
		b.answerCallback(q.ID, "", false)
		b.startQuiz(ctx, chatID, displayName(q.From))
	case dataStop:
		b.answerCallback(q.ID, "", false)
		b.stopQuiz(chatID)
	case dataToggle:
		b.toggle(chatID, q, cb)
	case dataSubmit:
		b.submit(ctx, chatID, q, cb)
	}
}

func (b *Bot) startQuiz(ctx context.Context, chatID int64, username string) {
	if old, ok := b.chats[chatID]; ok {
		_ = old.session.Close()
		delete(b.chats, chatID)
	}

	cfg := b.opts.Quiz
	if cfg.Username == "" {
		cfg.Username = username
	}
	p := &chatPresenter{}
	c := &chat{session: quiz.New(b.opts.Bank, p, b.opts.Recorder, cfg), presenter: p}
	b.chats[chatID] = c

	b.sendText(chatID, fmt.Sprintf("🎲 Fetching questions from <b>%s</b>...", html.EscapeString(b.opts.Bank.Name())))

	fctx, cancel := context.WithTimeout(ctx, b.opts.FetchTimeout)
	err := c.session.Start(fctx)
	cancel()

	b.flush(chatID, c)
	if err != nil {
		b.log.Printf("chat %d: start: %v", chatID, err)
		delete(b.chats, chatID)
		b.sendWithKeyboard(chatID, "The quiz could not start. Try again later.", newQuizKeyboard())
		return
	}
	b.sendQuestion(chatID, c)
}

func (b *Bot) toggle(chatID int64, q *tgbotapi.CallbackQuery, cb callback) {
	c, ok := b.current(chatID, q, cb.seq)
	if !ok {
		return
	}
	v := c.session.View()
	if cb.choice >= len(v.Choices) {
		b.answerCallback(q.ID, "Unknown choice", false)
		return
	}
	if err := c.session.Toggle(v.Choices[cb.choice]); err != nil {
		b.answerCallback(q.ID, err.Error(), false)
		return
	}
	b.answerCallback(q.ID, "", false)

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, c.messageID, questionKeyboard(c.session.View()))
	if _, err := b.out.Send(edit); err != nil {
		b.log.Printf("chat %d: edit keyboard: %v", chatID, err)
	}
}

func (b *Bot) submit(ctx context.Context, chatID int64, q *tgbotapi.CallbackQuery, cb callback) {
	c, ok := b.current(chatID, q, cb.seq)
	if !ok {
		return
	}
	if !c.session.CanSubmit() {
		msg := fmt.Sprintf("Mark exactly one answer (%d marked).", len(c.session.Selected()))
		b.answerCallback(q.ID, msg, true)
		return
	}
	b.answerCallback(q.ID, "", false)

	// The answered question keeps its text but loses its buttons.
	b.clearKeyboard(chatID, c.messageID)

	fctx, cancel := context.WithTimeout(ctx, b.opts.FetchTimeout)
	_, err := c.session.Submit(fctx)
	cancel()
	if err != nil && !quiz.IsInvalidSelection(err) {
		b.log.Printf("chat %d: submit: %v", chatID, err)
	}

	b.flush(chatID, c)
	b.sendQuestion(chatID, c)
}

// current returns the chat's session if the pressed button belongs to the
// question on screen. Stale presses are answered and dropped.
func (b *Bot) current(chatID int64, q *tgbotapi.CallbackQuery, seq int) (*chat, bool) {
	c, ok := b.chats[chatID]
	if !ok {
		b.answerCallback(q.ID, "No quiz running. Send /quiz to start one.", false)
		return nil, false
	}
	if seq != c.session.Answered() || q.Message.MessageID != c.messageID {
		b.answerCallback(q.ID, "That question was already answered.", false)
		return nil, false
	}
	return c, true
}

func (b *Bot) stopQuiz(chatID int64) {
	c, ok := b.chats[chatID]
	if !ok {
		b.sendText(chatID, "No quiz running. Send /quiz to start one.")
		return
	}
	delete(b.chats, chatID)
	if c.messageID != 0 {
		b.clearKeyboard(chatID, c.messageID)
	}
	_ = c.session.Close()
	b.sendWithKeyboard(chatID, summaryText(c.session.Summary()), newQuizKeyboard())
}

func (b *Bot) sendScore(chatID int64) {
	c, ok := b.chats[chatID]
	if !ok {
		b.sendText(chatID, "No quiz running. Send /quiz to start one.")
		return
	}
	v := c.session.View()
	b.sendText(chatID, fmt.Sprintf("📊 Score: <b>%d</b>/%d\n📈 Difficulty: <b>%s</b>", v.Score, v.Answered, v.Difficulty))
}

func (b *Bot) sendWelcome(chatID int64) {
	text := "🧠 <b>Triviaz</b>\n\n" +
		"Multiple-choice trivia that gets harder as you get better.\n" +
		"Tick one answer, then press Submit.\n\n" +
		"/quiz start a quiz\n/score show your score\n/stop end the quiz"
	b.sendWithKeyboard(chatID, text, newQuizKeyboard())
}

func (b *Bot) sendQuestion(chatID int64, c *chat) {
	v := c.session.View()
	if !v.HasQuestion() {
		return
	}
	text := fmt.Sprintf("❓ <b>Question %d</b> · %s · %s\n\n%s",
		v.Answered+1, html.EscapeString(categoryLabel(v.Category)), v.Difficulty, html.EscapeString(v.Question))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = questionKeyboard(v)
	sent, err := b.out.Send(msg)
	if err != nil {
		b.log.Printf("chat %d: send question: %v", chatID, err)
		return
	}
	c.messageID = sent.MessageID
}

// flush sends whatever the session reported since the last flush.
func (b *Bot) flush(chatID int64, c *chat) {
	for _, line := range c.presenter.drain() {
		b.sendText(chatID, line)
	}
}

func (b *Bot) clearKeyboard(chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}})
	if _, err := b.out.Send(edit); err != nil {
		b.log.Printf("chat %d: clear keyboard: %v", chatID, err)
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.out.Send(msg); err != nil {
		b.log.Printf("chat %d: send: %v", chatID, err)
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = kb
	if _, err := b.out.Send(msg); err != nil {
		b.log.Printf("chat %d: send: %v", chatID, err)
	}
}

func (b *Bot) answerCallback(id, text string, alert bool) {
	cfg := tgbotapi.NewCallback(id, text)
	if alert {
		cfg = tgbotapi.NewCallbackWithAlert(id, text)
	}
	if _, err := b.out.Request(cfg); err != nil {
		b.log.Printf("answer callback: %v", err)
	}
}

func (b *Bot) closeAll() {
	for id, c := range b.chats {
		_ = c.session.Close()
		delete(b.chats, id)
	}
}

func summaryText(sum quiz.Summary) string {
	var sb strings.Builder
	sb.WriteString("🏁 <b>Quiz finished!</b>\n\n")
	fmt.Fprintf(&sb, "📊 Result: %d/%d\n", sum.Score, sum.Answered)
	fmt.Fprintf(&sb, "📈 Accuracy: %.0f%%\n", sum.Accuracy()*100)
	if sum.Difficulty != "" {
		fmt.Fprintf(&sb, "🎚 Final difficulty: %s\n", sum.Difficulty)
	}
	d := sum.Duration()
	fmt.Fprintf(&sb, "⏱ Time: %d:%02d", int(d.Minutes()), int(d.Seconds())%60)
	return sb.String()
}

func categoryLabel(c string) string {
	if c == "" {
		return "General"
	}
	return c
}

func displayName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	if u.UserName != "" {
		return u.UserName
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
