package model

import "time"

// DayLayout is the calendar-day key format used by reflections.
const DayLayout = "2006-01-02"

// Mood and productivity scores are both on a 1..5 scale.
const (
	MinScore = 1
	MaxScore = 5
)

// Reflection is the daily mood/productivity entry. Day is unique.
type Reflection struct {
	Day          string    `json:"day"`
	Mood         int       `json:"mood"`
	Productivity int       `json:"productivity"`
	Text         *string   `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ReflectionSummary holds rolling averages over a trailing window of days.
// Averages are nil when Count is zero.
type ReflectionSummary struct {
	WindowDays      int      `json:"windowDays"`
	Count           int      `json:"count"`
	AvgMood         *float64 `json:"avgMood"`
	AvgProductivity *float64 `json:"avgProductivity"`
}
