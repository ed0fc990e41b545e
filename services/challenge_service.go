package services

import (
	"errors"
	"log"
	"strings"

	"wellness-rewards-system/models"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// ActionPayload carries the optional numbers an action may supply: Amount
// for additive deltas, Value for clamped-absolute sets.
type ActionPayload struct {
	Amount *int64 `json:"amount,omitempty"`
	Value  *int64 `json:"value,omitempty"`
}

// ChallengeService drives the per-(user, challenge) state machine:
// NotStarted → InProgress → Completed, with streak bookkeeping and the
// completion unit (flag flip + counters + activity + ledger credit) applied
// as one transaction.
type ChallengeService struct {
	DB     *gorm.DB
	Clock  *Clock
	Rules  *RuleRegistry
	Ledger *LedgerService
	locks  *keyedLocks
}

// NewChallengeService shares the ledger's per-user locks: a completion credit
// and a direct ledger operation on the same user must never interleave their
// read-modify-write on the balance.
func NewChallengeService(db *gorm.DB, clock *Clock, rules *RuleRegistry, ledger *LedgerService) *ChallengeService {
	return &ChallengeService{DB: db, Clock: clock, Rules: rules, Ledger: ledger, locks: ledger.locks}
}

// ApplyAction applies one action as an atomic read-modify-write on the
// (userID, challengeID) row, serialized per user. The row is created lazily
// so the first action can both start and complete a challenge.
func (s *ChallengeService) ApplyAction(userID, challengeID, action string, payload ActionPayload) (*models.ChallengeProgress, error) {
	def, err := s.Rules.Get(challengeID)
	if err != nil {
		return nil, err
	}

	isReset := s.Rules.IsResetAction(def, action)
	if !s.Rules.AcceptsAction(def, action) && !isReset {
		// Unknown action for a known challenge: state unchanged, never
		// invents progress. Handlers treat this as a non-fatal no-op.
		log.Printf("[Challenges] ignoring action %q for %s", action, challengeID)
		return nil, ErrInvalidAction
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	var prog models.ChallengeProgress
	var completedNow bool

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&prog).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			prog = models.ChallengeProgress{
				ID:          uuid.NewString(),
				UserID:      userID,
				ChallengeID: challengeID,
				Goal:        def.Goal,
				DaysLeft:    def.DurationDays,
			}
			if err := tx.Create(&prog).Error; err != nil {
				return err
			}
			user.ChallengesInProgress++
		}

		// A daily-streak day can only be marked once: a repeat on an
		// already-marked day skips the action's delta entirely.
		sameDayRepeat := false
		if def.DailyStreak && !isReset {
			sameDayRepeat = s.applyStreakStep(&prog, &user, def)
		}

		switch {
		case sameDayRepeat:
		case isReset || def.Kind == models.PolicyReset:
			prog.Progress = 0
		case def.Kind == models.PolicyAdditive:
			amount := int64(1)
			if payload.Amount != nil {
				amount = *payload.Amount
			}
			if amount < 0 {
				return ErrInvalidRequest
			}
			prog.Progress += amount
			if prog.Progress > prog.Goal {
				prog.Progress = prog.Goal
			}
			if def.Category == "savings" || action == "round_up" {
				user.Savings += float64(amount)
			}
		case def.Kind == models.PolicyClampedAbsolute:
			if payload.Value == nil {
				return ErrInvalidRequest
			}
			value := *payload.Value
			if value < 0 {
				value = 0
			}
			if value > prog.Goal {
				value = prog.Goal
			}
			prog.Progress = value
		case def.Kind == models.PolicyCompletionOnSignal:
			prog.Progress = prog.Goal
		}

		// First transition to goal: flip, counters, activity, then credit
		// as the very last step so a failure beforehand never double-applies.
		if !prog.IsCompleted && prog.Progress >= prog.Goal {
			prog.IsCompleted = true
			completedNow = true
			user.ChallengesCompleted++
			if user.ChallengesInProgress > 0 {
				user.ChallengesInProgress--
			}
		}

		if err := tx.Save(&prog).Error; err != nil {
			return err
		}
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		if completedNow {
			event := &models.ActivityEvent{
				ID:     uuid.NewString(),
				UserID: userID,
				Type:   "challenge_completed",
				Title:  def.Title,
				Points: def.RewardPoints,
				Icon:   def.Icon,
			}
			if err := tx.Create(event).Error; err != nil {
				return err
			}
			if _, err := s.Ledger.creditTx(tx, userID, def.RewardPoints, def.Title, "challenge"); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if completedNow {
		log.Printf("[Challenges] completed: %s → %s (+%d)", challengeID, userID, def.RewardPoints)
		achievementSvc := NewAchievementService(s.DB)
		_ = achievementSvc.AutoAward(userID) // fire-and-forget
	}

	return &prog, nil
}

// applyStreakStep runs the daily-streak bookkeeping before the action's own
// delta: consecutive day → streak+1; any gap → streak and progress reset.
// Reports true on a same-day repeat, which changes nothing.
func (s *ChallengeService) applyStreakStep(prog *models.ChallengeProgress, user *models.User, def models.ChallengeDef) bool {
	today := s.Clock.Today()
	yesterday := s.Clock.Yesterday()

	if prog.LastCompletedDate != nil && s.Clock.SameDay(*prog.LastCompletedDate, today) {
		return true
	}

	if def.Recurring {
		// New calendar day re-opens a recurring challenge for a fresh cycle.
		prog.IsCompleted = false
		prog.Progress = 0
	}

	if prog.LastCompletedDate != nil && s.Clock.SameDay(*prog.LastCompletedDate, yesterday) {
		prog.Streak++
	} else {
		prog.Streak = 0
		prog.Progress = 0
	}

	prog.LastCompletedDate = &today
	user.StreakDays = prog.Streak
	return false
}

// ToggleClaim flips the claimed flag on a completed challenge. No ledger
// debit happens in this path.
func (s *ChallengeService) ToggleClaim(userID, challengeID string) (*models.ChallengeProgress, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	var prog models.ChallengeProgress
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&prog).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProgressNotFound
			}
			return err
		}
		prog.IsClaimed = !prog.IsClaimed
		return tx.Save(&prog).Error
	})
	if err != nil {
		return nil, err
	}
	return &prog, nil
}

// ProgressFor returns a user's progress rows keyed by challenge id, for
// overlaying onto the registry catalog.
func (s *ChallengeService) ProgressFor(userID string) (map[string]models.ChallengeProgress, error) {
	var rows []models.ChallengeProgress
	if err := s.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]models.ChallengeProgress, len(rows))
	for _, row := range rows {
		out[row.ChallengeID] = row
	}
	return out, nil
}

// titleForAction renders an action name like "no_spend_day" as a display
// title for activity records.
func titleForAction(action string) string {
	return cases.Title(language.AmericanEnglish).String(strings.ReplaceAll(action, "_", " "))
}
