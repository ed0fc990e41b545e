package models

import "github.com/gosimple/slug"

// PolicyKind selects how an action mutates challenge progress.
type PolicyKind string

const (
	PolicyAdditive           PolicyKind = "additive"
	PolicyClampedAbsolute    PolicyKind = "clamped_absolute"
	PolicyCompletionOnSignal PolicyKind = "completion_on_signal"
	PolicyReset              PolicyKind = "reset"
)

// ChallengeDef: static per-challenge policy (the rule registry is data, not
// code paths; new challenges are added here).
type ChallengeDef struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Icon         string     `json:"icon"`
	Category     string     `json:"category"` // savings, spending, budgeting, habits
	Kind         PolicyKind `json:"kind"`
	Goal         int64      `json:"goal"`
	RewardPoints int64      `json:"reward_points"`

	// Accepted action vocabulary. Actions listed in ResetActions zero the
	// progress without touching the completion flag (streak-breaking).
	Actions      []string `json:"actions"`
	ResetActions []string `json:"reset_actions,omitempty"`

	// DailyStreak challenges increment a consecutive-day streak; a calendar
	// gap resets streak and progress before the action's own delta applies.
	DailyStreak bool `json:"daily_streak"`
	// Recurring challenges re-open at the next calendar day; one-shot
	// challenges stay completed forever.
	Recurring bool `json:"recurring"`
	// DurationDays > 0 marks a time-boxed challenge whose countdown is
	// decremented by the daily maintenance job.
	DurationDays int `json:"duration_days,omitempty"`
}

// ChallengeCatalog is the registry of every live challenge.
var ChallengeCatalog = []ChallengeDef{
	{
		ID:           slug.Make("Savings Sprint"),
		Title:        "Savings Sprint",
		Description:  "Put away $500 this month, one deposit at a time",
		Icon:         "piggy-bank",
		Category:     "savings",
		Kind:         PolicyAdditive,
		Goal:         500,
		RewardPoints: 150,
		Actions:      []string{"deposit"},
	},
	{
		ID:           slug.Make("No Spend Week"),
		Title:        "No Spend Week",
		Description:  "Seven consecutive days without a discretionary purchase",
		Icon:         "wallet-off",
		Category:     "spending",
		Kind:         PolicyAdditive,
		Goal:         7,
		RewardPoints: 200,
		Actions:      []string{"no_spend_day"},
		ResetActions: []string{"reset"},
		DailyStreak:  true,
	},
	{
		ID:           slug.Make("Daily Budget Check-In"),
		Title:        "Daily Budget Check-In",
		Description:  "Open your budget and review the day's spending",
		Icon:         "clipboard-check",
		Category:     "budgeting",
		Kind:         PolicyCompletionOnSignal,
		Goal:         1,
		RewardPoints: 25,
		Actions:      []string{"check_in"},
		DailyStreak:  true,
		Recurring:    true,
	},
	{
		ID:           slug.Make("Emergency Fund Builder"),
		Title:        "Emergency Fund Builder",
		Description:  "Grow your emergency fund balance to $1,000",
		Icon:         "shield",
		Category:     "savings",
		Kind:         PolicyClampedAbsolute,
		Goal:         1000,
		RewardPoints: 300,
		Actions:      []string{"balance_update"},
	},
	{
		ID:           slug.Make("Round-Up Month"),
		Title:        "Round-Up Month",
		Description:  "Round up 30 purchases into savings before time runs out",
		Icon:         "coins",
		Category:     "habits",
		Kind:         PolicyAdditive,
		Goal:         30,
		RewardPoints: 250,
		Actions:      []string{"round_up"},
		DurationDays: 30,
	},
}
