package models

import "time"

// ActivityStatus is the completion state of a suggested activity
type ActivityStatus string

const (
	ActivityStatusPending   ActivityStatus = "pending"
	ActivityStatusCompleted ActivityStatus = "completed"
)

// Activity is a suggested learning activity for a user, generated per role.
// Quiz-style activities carry a quiz variant; completing the quiz at >= 70%
// completes the activity.
type Activity struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"index;not null" json:"external_user_id"`

	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Role        string         `gorm:"index" json:"role"`  // normalized role the activity belongs to
	Level       string         `gorm:"default:'basic'" json:"level"` // basic / intermediate
	QuizVariant int            `gorm:"default:1" json:"quiz_variant"`
	Status      ActivityStatus `gorm:"index;default:'pending'" json:"status"`

	LastScore   *int       `json:"last_score,omitempty"` // percent, most recent quiz attempt
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Timestamps
}

// QuizQuestion is a single multiple-choice question. Answer is the index of
// the correct choice; it is stripped before the quiz is sent to the client.
type QuizQuestion struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Choices []string `json:"choices"`
	Answer  int      `json:"answer,omitempty"`
}

// Quiz is a graded set of questions served for an activity. Quizzes are static
// content keyed by (role, level, variant) — see services.QuizBank.
type Quiz struct {
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizResult is the grading outcome returned to the client.
type QuizResult struct {
	Score     int  `json:"score"` // percent 0-100
	Total     int  `json:"total"` // number of questions
	Correct   int  `json:"correct"`
	Completed bool `json:"completed"` // activity marked completed (score >= 70)
}
