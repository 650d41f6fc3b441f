package services

import (
	"career-counselor-service/models"
)

// BadgeRule pairs a badge with its qualifying condition. Conditions look at
// the post-mutation state plus the triggering event and must be side-effect
// free — awarding (and its idempotency) is the engine's job.
type BadgeRule struct {
	ID        models.BadgeID
	Qualifies func(state *models.UserGameState, event models.Event) bool
}

// BadgeRules is evaluated in order on every applied event; the order is part
// of the contract (NewBadges is reported in this order).
var BadgeRules = []BadgeRule{
	{models.BadgeWelcome, func(s *models.UserGameState, e models.Event) bool {
		return e.Kind == models.ActionAccountCreated
	}},
	{models.BadgePerfectScore, func(s *models.UserGameState, e models.Event) bool {
		return e.Kind == models.ActionQuizCompleted && e.QuizScore >= 100
	}},
	{models.BadgeExcellent, func(s *models.UserGameState, e models.Event) bool {
		return e.Kind == models.ActionQuizCompleted && e.QuizScore >= 90 && e.QuizScore < 100
	}},
	{models.BadgeStreak7, func(s *models.UserGameState, e models.Event) bool {
		return s.LoginStreak == 7
	}},
	{models.BadgeStreak30, func(s *models.UserGameState, e models.Event) bool {
		return s.LoginStreak == 30
	}},
	{models.BadgeStreak100, func(s *models.UserGameState, e models.Event) bool {
		return s.LoginStreak == 100
	}},
	{models.BadgeSuperConnector, func(s *models.UserGameState, e models.Event) bool {
		return s.ReferralCount >= 5
	}},
	{models.BadgePathMaster, func(s *models.UserGameState, e models.Event) bool {
		return e.Kind == models.ActionLearningPathCompleted
	}},
}

// EvaluateBadges returns the badges that newly qualify for the updated state,
// in rule order, skipping anything the user already holds. Pure: the state is
// not mutated.
func EvaluateBadges(state *models.UserGameState, event models.Event) []models.BadgeID {
	var newBadges []models.BadgeID
	for _, rule := range BadgeRules {
		if state.HasBadge(rule.ID) {
			continue
		}
		if rule.Qualifies(state, event) {
			newBadges = append(newBadges, rule.ID)
		}
	}
	return newBadges
}
