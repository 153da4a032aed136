package trivia

import (
	"context"
	"sync"
)

// StaticBank serves questions from a fixed in-memory pool. Each call
// continues where the previous call for the same difficulty stopped, so a
// pool of N questions per difficulty yields N questions before repeating.
type StaticBank struct {
	mu      sync.Mutex
	records []Record
	offsets map[Difficulty]int

	// Calls records every request in order, for inspection.
	Calls []BatchCall
}

// BatchCall is one FetchBatch invocation seen by a StaticBank.
type BatchCall struct {
	Count      int
	Difficulty Difficulty
}

// NewStaticBank creates a bank over the given records.
func NewStaticBank(records ...Record) *StaticBank {
	return &StaticBank{
		records: records,
		offsets: make(map[Difficulty]int),
	}
}

// NewDemoBank returns a StaticBank over the built-in offline question set.
func NewDemoBank() *StaticBank {
	return NewStaticBank(demoRecords...)
}

func (b *StaticBank) Name() string { return "static" }

func (b *StaticBank) FetchBatch(ctx context.Context, count int, d Difficulty) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ProviderError{Op: "request", Err: err}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.Calls = append(b.Calls, BatchCall{Count: count, Difficulty: d})

	var pool []Record
	for _, r := range b.records {
		if d == DifficultyAny || Difficulty(r.Difficulty) == d {
			pool = append(pool, r)
		}
	}
	if len(pool) == 0 || count <= 0 {
		return nil, &EmptyResultError{Requested: count, Difficulty: d}
	}

	n := min(count, len(pool))
	start := b.offsets[d]
	out := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, NewQuestion(pool[(start+i)%len(pool)]))
	}
	b.offsets[d] = (start + n) % len(pool)
	return out, nil
}

// LastCall returns the most recent request, or false if none was made.
func (b *StaticBank) LastCall() (BatchCall, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.Calls) == 0 {
		return BatchCall{}, false
	}
	return b.Calls[len(b.Calls)-1], true
}

var demoRecords = []Record{
	{Difficulty: "easy", Category: "Geography", Question: "What is the capital of France?",
		CorrectAnswer: "Paris", IncorrectAnswers: []string{"Berlin", "Madrid", "Rome"}},
	{Difficulty: "easy", Category: "Science: Nature", Question: "How many legs does a spider have?",
		CorrectAnswer: "8", IncorrectAnswers: []string{"6", "10", "12"}},
	{Difficulty: "easy", Category: "Geography", Question: "What is the largest ocean on Earth?",
		CorrectAnswer: "Pacific", IncorrectAnswers: []string{"Atlantic", "Indian", "Arctic"}},
	{Difficulty: "easy", Category: "Science &amp; Nature", Question: "Which planet is known as the Red Planet?",
		CorrectAnswer: "Mars", IncorrectAnswers: []string{"Venus", "Jupiter", "Mercury"}},
	{Difficulty: "easy", Category: "General Knowledge", Question: "How many continents are there?",
		CorrectAnswer: "7", IncorrectAnswers: []string{"5", "6", "8"}},

	{Difficulty: "medium", Category: "Science &amp; Nature", Question: "What is the chemical symbol for gold?",
		CorrectAnswer: "Au", IncorrectAnswers: []string{"Go", "Gd", "Ag"}},
	{Difficulty: "medium", Category: "Science &amp; Nature", Question: "What is the most abundant gas in Earth&#039;s atmosphere?",
		CorrectAnswer: "Nitrogen", IncorrectAnswers: []string{"Oxygen", "Carbon Dioxide", "Argon"}},
	{Difficulty: "medium", Category: "History", Question: "In which year did the Berlin Wall fall?",
		CorrectAnswer: "1989", IncorrectAnswers: []string{"1987", "1991", "1985"}},
	{Difficulty: "medium", Category: "Art", Question: "Who painted &quot;The Starry Night&quot;?",
		CorrectAnswer: "Vincent van Gogh", IncorrectAnswers: []string{"Claude Monet", "Pablo Picasso", "Paul C&eacute;zanne"}},
	{Difficulty: "medium", Category: "Science: Computers", Question: "What does &quot;HTTP&quot; stand for?",
		CorrectAnswer: "Hypertext Transfer Protocol", IncorrectAnswers: []string{"High Transfer Text Protocol", "Hyperlink Text Transport Protocol", "Host Transfer Protocol"}},

	{Difficulty: "hard", Category: "Science: Mathematics", Question: "What is the smallest perfect number?",
		CorrectAnswer: "6", IncorrectAnswers: []string{"28", "1", "12"}},
	{Difficulty: "hard", Category: "History", Question: "Which treaty ended the Thirty Years&#039; War?",
		CorrectAnswer: "Peace of Westphalia", IncorrectAnswers: []string{"Treaty of Utrecht", "Treaty of Versailles", "Peace of Augsburg"}},
	{Difficulty: "hard", Category: "Science &amp; Nature", Question: "What is the only metal that is liquid at standard room temperature?",
		CorrectAnswer: "Mercury", IncorrectAnswers: []string{"Gallium", "Caesium", "Bromine"}},
	{Difficulty: "hard", Category: "Geography", Question: "What is the capital of Burkina Faso?",
		CorrectAnswer: "Ouagadougou", IncorrectAnswers: []string{"Bamako", "Niamey", "Lom&eacute;"}},
	{Difficulty: "hard", Category: "Science: Computers", Question: "In what year was the Go programming language announced?",
		CorrectAnswer: "2009", IncorrectAnswers: []string{"2007", "2011", "2012"}},
}
