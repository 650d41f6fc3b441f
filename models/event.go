package models

import "time"

// ActionKind is the closed set of user actions the gamification engine scores.
// Anything outside this set is a programming/config error, not a no-op.
type ActionKind string

const (
	ActionAccountCreated        ActionKind = "account_created"
	ActionDailyLogin            ActionKind = "daily_login"
	ActionQuizCompleted         ActionKind = "quiz_completed"
	ActionRoadmapGenerated      ActionKind = "roadmap_generated"
	ActionRoadmapSaved          ActionKind = "roadmap_saved"
	ActionJobApplication        ActionKind = "job_application"
	ActionSavedJob              ActionKind = "saved_job"
	ActionForumPost             ActionKind = "forum_post"
	ActionCompanyReview         ActionKind = "company_review"
	ActionConnectionRequest     ActionKind = "connection_request"
	ActionConnectionAccepted    ActionKind = "connection_accepted"
	ActionReferral              ActionKind = "referral"
	ActionReferralBonus         ActionKind = "referral_bonus"
	ActionResumeCreated         ActionKind = "resume_created"
	ActionPersonalityTest       ActionKind = "personality_test"
	ActionLearningPathCreated   ActionKind = "learning_path_created"
	ActionMilestoneCompleted    ActionKind = "milestone_completed"
	ActionLearningPathCompleted ActionKind = "learning_path_completed"
)

// Event is a single scored user action. Produced by the feature services,
// consumed exactly once by the gamification engine.
type Event struct {
	ExternalUserID string     `json:"external_user_id"`
	Kind           ActionKind `json:"kind"`
	OccurredAt     time.Time  `json:"occurred_at"`
	QuizScore      int        `json:"quiz_score,omitempty"` // only for quiz_completed (0-100)
	Reason         string     `json:"reason,omitempty"`     // free-form, for logs/notifications
}

// RewardResult describes what a single ApplyEvent call changed. Not persisted.
type RewardResult struct {
	XPAwarded int64     `json:"xp_awarded"`
	LeveledUp bool      `json:"leveled_up"`
	NewLevel  int       `json:"new_level,omitempty"` // set only when LeveledUp
	NewBadges []BadgeID `json:"new_badges"`
}
