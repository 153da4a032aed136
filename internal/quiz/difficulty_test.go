package quiz

import (
	"testing"

	"github.com/abhisek/triviaz/internal/trivia"
)

func TestNextDifficulty(t *testing.T) {
	T, F := true, false
	tests := []struct {
		name    string
		results []bool
		want    trivia.Difficulty
	}{
		{"empty", nil, trivia.Easy},
		{"0 of 5", []bool{F, F, F, F, F}, trivia.Easy},
		{"1 of 5", []bool{T, F, F, F, F}, trivia.Easy},
		{"2 of 5", []bool{T, F, T, F, F}, trivia.Medium},
		{"3 of 5", []bool{T, T, T, F, F}, trivia.Medium},
		{"4 of 5", []bool{T, T, F, T, T}, trivia.Hard},
		{"5 of 5", []bool{T, T, T, T, T}, trivia.Hard},
		{"partial window 2 of 2", []bool{T, T}, trivia.Medium},
		{"partial window 1 of 1", []bool{T}, trivia.Easy},
		{"partial window 4 of 4", []bool{T, T, T, T}, trivia.Hard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextDifficulty(tt.results); got != tt.want {
				t.Errorf("NextDifficulty(%v) = %q, want %q", tt.results, got, tt.want)
			}
		})
	}
}
