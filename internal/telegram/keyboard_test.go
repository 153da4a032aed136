package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/triviaz/internal/quiz"
)

func TestParseCallback(t *testing.T) {
	cases := []struct {
		data string
		want callback
		ok   bool
	}{
		{"new", callback{action: dataNewQuiz}, true},
		{"stop", callback{action: dataStop}, true},
		{"t:3:1", callback{action: dataToggle, seq: 3, choice: 1}, true},
		{"s:7", callback{action: dataSubmit, seq: 7}, true},
		{"t:3", callback{}, false},
		{"t:x:1", callback{}, false},
		{"t:1:-1", callback{}, false},
		{"s:", callback{}, false},
		{"bogus", callback{}, false},
		{"", callback{}, false},
	}
	for _, tc := range cases {
		got, ok := parseCallback(tc.data)
		assert.Equal(t, tc.ok, ok, tc.data)
		assert.Equal(t, tc.want, got, tc.data)
	}
}

func TestQuestionKeyboard(t *testing.T) {
	v := quiz.View{
		Answered:  2,
		Choices:   []string{"Paris", "Rome"},
		Selected:  []bool{false, true},
		CanSubmit: true,
	}
	kb := questionKeyboard(v)

	rows := kb.InlineKeyboard
	if assert.Len(t, rows, 3) {
		assert.Equal(t, "☐ Paris", rows[0][0].Text)
		assert.Equal(t, "t:2:0", *rows[0][0].CallbackData)
		assert.Equal(t, "☑ Rome", rows[1][0].Text)
		assert.Equal(t, "t:2:1", *rows[1][0].CallbackData)
		assert.Equal(t, "✅ Submit", rows[2][0].Text)
		assert.Equal(t, "s:2", *rows[2][0].CallbackData)
		assert.Equal(t, "stop", *rows[2][1].CallbackData)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
