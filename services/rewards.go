package services

import (
	"errors"
	"fmt"

	"career-counselor-service/models"
)

// Engine error taxonomy. Handlers map these onto HTTP statuses; callers may
// retry ErrStoreUnavailable (no mutation is persisted on that path), never the
// other two.
var (
	ErrUserNotFound     = errors.New("user game state not found")
	ErrUnknownAction    = errors.New("unknown action kind")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Fixed XP amounts per action kind. Quiz XP is score-dependent and handled in
// RewardFor; everything else is a flat constant.
const (
	XPAccountCreated      = 50
	XPDailyLogin          = 10
	XPRoadmapGenerated    = 25
	XPRoadmapSaved        = 5
	XPJobApplication      = 15
	XPSavedJob            = 5
	XPForumPost           = 15
	XPCompanyReview       = 25
	XPConnectionRequest   = 10
	XPConnectionAccepted  = 20
	XPReferral            = 100
	XPReferralBonus       = 50
	XPResumeCreated       = 20
	XPPersonalityTest     = 30
	XPLearningPathCreated = 20
	XPMilestoneCompleted  = 50
)

// RewardFor returns the XP amount for an event. The kind set is closed: an
// unrecognized kind is a config/programming error, not zero XP.
func RewardFor(event models.Event) (int64, error) {
	switch event.Kind {
	case models.ActionAccountCreated:
		return XPAccountCreated, nil
	case models.ActionDailyLogin:
		return XPDailyLogin, nil
	case models.ActionQuizCompleted:
		return quizReward(event.QuizScore), nil
	case models.ActionRoadmapGenerated:
		return XPRoadmapGenerated, nil
	case models.ActionRoadmapSaved:
		return XPRoadmapSaved, nil
	case models.ActionJobApplication:
		return XPJobApplication, nil
	case models.ActionSavedJob:
		return XPSavedJob, nil
	case models.ActionForumPost:
		return XPForumPost, nil
	case models.ActionCompanyReview:
		return XPCompanyReview, nil
	case models.ActionConnectionRequest:
		return XPConnectionRequest, nil
	case models.ActionConnectionAccepted:
		return XPConnectionAccepted, nil
	case models.ActionReferral:
		return XPReferral, nil
	case models.ActionReferralBonus:
		return XPReferralBonus, nil
	case models.ActionResumeCreated:
		return XPResumeCreated, nil
	case models.ActionPersonalityTest:
		return XPPersonalityTest, nil
	case models.ActionLearningPathCreated:
		return XPLearningPathCreated, nil
	case models.ActionMilestoneCompleted:
		return XPMilestoneCompleted, nil
	case models.ActionLearningPathCompleted:
		// Badge-only event: the milestone that finished the path already paid out.
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, event.Kind)
	}
}

// quizReward is a step function of the quiz score: a perfect run pays 100 XP,
// 90-99 pays 50, any other completion pays the 10 XP baseline.
func quizReward(score int) int64 {
	switch {
	case score >= 100:
		return 100
	case score >= 90:
		return 50
	default:
		return 10
	}
}
