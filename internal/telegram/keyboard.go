package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abhisek/triviaz/internal/quiz"
)

// Callback data. Question-scoped actions carry the number of answers given
// when the keyboard was drawn, so buttons on an old question are ignored.
const (
	dataNewQuiz = "new"
	dataStop    = "stop"
	dataToggle  = "t"
	dataSubmit  = "s"

	maxButtonText = 60
)

type callback struct {
	action string
	seq    int
	choice int
}

func toggleData(seq, choice int) string { return fmt.Sprintf("%s:%d:%d", dataToggle, seq, choice) }
func submitData(seq int) string         { return fmt.Sprintf("%s:%d", dataSubmit, seq) }

// parseCallback decodes button data. Unknown data yields ok=false.
func parseCallback(data string) (callback, bool) {
	switch data {
	case dataNewQuiz, dataStop:
		return callback{action: data}, true
	}

	parts := strings.Split(data, ":")
	switch {
	case parts[0] == dataToggle && len(parts) == 3:
		seq, err1 := strconv.Atoi(parts[1])
		choice, err2 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || choice < 0 {
			return callback{}, false
		}
		return callback{action: dataToggle, seq: seq, choice: choice}, true
	case parts[0] == dataSubmit && len(parts) == 2:
		seq, err := strconv.Atoi(parts[1])
		if err != nil {
			return callback{}, false
		}
		return callback{action: dataSubmit, seq: seq}, true
	}
	return callback{}, false
}

// questionKeyboard draws one checkbox button per choice plus Submit and Stop.
func questionKeyboard(v quiz.View) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(v.Choices)+1)
	for i, c := range v.Choices {
		box := "☐"
		if i < len(v.Selected) && v.Selected[i] {
			box = "☑"
		}
		label := box + " " + truncate(c, maxButtonText)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, toggleData(v.Answered, i)),
		))
	}

	submit := "Submit"
	if v.CanSubmit {
		submit = "✅ Submit"
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(submit, submitData(v.Answered)),
		tgbotapi.NewInlineKeyboardButtonData("🚪 Stop", dataStop),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func newQuizKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start quiz", dataNewQuiz),
		),
	)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
