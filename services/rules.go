package services

import (
	"wellness-rewards-system/models"
)

// RuleRegistry maps challengeID → progression policy. Built once from the
// static catalog; lookups never invent progress for unknown ids or actions.
type RuleRegistry struct {
	defs  map[string]models.ChallengeDef
	order []string
}

func NewRuleRegistry() *RuleRegistry {
	r := &RuleRegistry{defs: make(map[string]models.ChallengeDef)}
	for _, def := range models.ChallengeCatalog {
		r.defs[def.ID] = def
		r.order = append(r.order, def.ID)
	}
	return r
}

// Get returns the policy for a challenge id, or ErrInvalidChallenge.
func (r *RuleRegistry) Get(id string) (models.ChallengeDef, error) {
	def, ok := r.defs[id]
	if !ok {
		return models.ChallengeDef{}, ErrInvalidChallenge
	}
	return def, nil
}

// All returns the catalog in declaration order.
func (r *RuleRegistry) All() []models.ChallengeDef {
	out := make([]models.ChallengeDef, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id])
	}
	return out
}

// AcceptsAction reports whether the action belongs to the challenge's
// progress vocabulary.
func (r *RuleRegistry) AcceptsAction(def models.ChallengeDef, action string) bool {
	for _, a := range def.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// IsResetAction reports whether the action zeroes progress (streak-breaking).
func (r *RuleRegistry) IsResetAction(def models.ChallengeDef, action string) bool {
	for _, a := range def.ResetActions {
		if a == action {
			return true
		}
	}
	return false
}

// RecurringIDs returns ids of challenges that re-open at a day boundary.
func (r *RuleRegistry) RecurringIDs() []string {
	var ids []string
	for _, id := range r.order {
		if r.defs[id].Recurring {
			ids = append(ids, id)
		}
	}
	return ids
}

// TimeBoxedIDs returns ids of challenges carrying a countdown.
func (r *RuleRegistry) TimeBoxedIDs() []string {
	var ids []string
	for _, id := range r.order {
		if r.defs[id].DurationDays > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
