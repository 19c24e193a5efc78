package models

type Mood string

const (
	MoodUnhappy   Mood = "unhappy"
	MoodHappy     Mood = "happy"
	MoodVeryHappy Mood = "veryhappy"
)

type StreakInfo struct {
	Days      int  `json:"days"`
	DoneToday bool `json:"done_today"`
	Mood      Mood `json:"mood"`
}

// BankSummary describes the loaded question bank.
type BankSummary struct {
	Total   int                  `json:"total"`
	ByType  map[QuestionType]int `json:"by_type"`
	Skipped int                  `json:"skipped"`
}
