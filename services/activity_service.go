package services

import (
	"errors"
	"log"
	"time"

	"career-counselor-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrActivityNotFound = errors.New("activity not found")

// PassingScore is the quiz percentage that completes an activity.
const PassingScore = 70

type ActivityService struct {
	DB     *gorm.DB
	Engine *GamificationEngine
}

func NewActivityService(db *gorm.DB, engine *GamificationEngine) *ActivityService {
	return &ActivityService{DB: db, Engine: engine}
}

// activityTemplate seeds suggested activities for a role.
type activityTemplate struct {
	Title       string
	Description string
	Level       string
	Variant     int
}

var roleActivityTemplates = map[string][]activityTemplate{
	"teacher": {
		{"Teaching fundamentals check", "Test your grasp of objectives, assessment and differentiation", "basic", 1},
		{"Classroom management drill", "Routines, reinforcement and handling disruption", "basic", 2},
	},
	"software engineer": {
		{"Programming basics check", "Version control, testing and complexity", "basic", 1},
		{"Web fundamentals check", "HTTP, APIs and input handling", "basic", 2},
		{"System design warm-up", "Caching, scaling and idempotency", "intermediate", 1},
	},
	"data analyst": {
		{"Data analysis basics", "Statistics, cleaning and visualization", "basic", 1},
	},
	"ux designer": {
		{"UX fundamentals check", "Personas, usability testing and wireframes", "basic", 1},
	},
	"default": {
		{"Career skills check", "Goal setting, learning habits and networking", "basic", 1},
	},
}

// CreateForRole seeds the suggested activities for a user's target role.
// Skips seeding if the user already has activities for that role.
func (s *ActivityService) CreateForRole(externalUserID, role string) ([]models.Activity, error) {
	normalized := NormalizeQuizRole(role)

	var existing int64
	if err := s.DB.Model(&models.Activity{}).
		Where("external_user_id = ? AND role = ?", externalUserID, normalized).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return s.List(externalUserID)
	}

	templates, ok := roleActivityTemplates[normalized]
	if !ok {
		templates = roleActivityTemplates["default"]
	}

	activities := make([]models.Activity, 0, len(templates))
	for _, t := range templates {
		a := models.Activity{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			Title:          t.Title,
			Description:    t.Description,
			Role:           normalized,
			Level:          t.Level,
			QuizVariant:    t.Variant,
			Status:         models.ActivityStatusPending,
		}
		if err := s.DB.Create(&a).Error; err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	log.Printf("📚 Seeded %d activities for %s (role: %s)", len(activities), externalUserID, normalized)
	return activities, nil
}

func (s *ActivityService) List(externalUserID string) ([]models.Activity, error) {
	var activities []models.Activity
	err := s.DB.Where("external_user_id = ?", externalUserID).
		Order("created_at ASC").
		Find(&activities).Error
	return activities, err
}

// Get returns the activity only if it belongs to the user.
func (s *ActivityService) Get(activityID, externalUserID string) (*models.Activity, error) {
	var a models.Activity
	err := s.DB.Where("id = ? AND external_user_id = ?", activityID, externalUserID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// QuizForActivity serves the activity's quiz with answers stripped.
func (s *ActivityService) QuizForActivity(activityID, externalUserID string) (*models.Activity, *models.Quiz, error) {
	a, err := s.Get(activityID, externalUserID)
	if err != nil {
		return nil, nil, err
	}
	quiz := QuizFor(a.Role, a.Level, a.QuizVariant)

	sanitized := models.Quiz{Title: quiz.Title, Questions: make([]models.QuizQuestion, len(quiz.Questions))}
	for i, q := range quiz.Questions {
		q.Answer = 0
		sanitized.Questions[i] = q
	}
	return a, &sanitized, nil
}

// SubmitQuiz grades the answers (question id → chosen index), records the
// score on the activity and reports the quiz completion to the engine.
func (s *ActivityService) SubmitQuiz(activityID, externalUserID string, answers map[string]int) (*models.QuizResult, *models.RewardResult, error) {
	a, err := s.Get(activityID, externalUserID)
	if err != nil {
		return nil, nil, err
	}
	quiz := QuizFor(a.Role, a.Level, a.QuizVariant)

	correct := 0
	for _, q := range quiz.Questions {
		if chosen, ok := answers[q.ID]; ok && chosen == q.Answer {
			correct++
		}
	}
	total := len(quiz.Questions)
	score := 0
	if total > 0 {
		score = correct * 100 / total
	}

	now := time.Now().UTC()
	a.LastScore = &score
	if score >= PassingScore {
		a.Status = models.ActivityStatusCompleted
		a.CompletedAt = &now
	} else {
		a.Status = models.ActivityStatusPending
	}
	if err := s.DB.Save(a).Error; err != nil {
		return nil, nil, err
	}

	reward, err := s.Engine.ApplyEvent(externalUserID, models.Event{
		Kind:       models.ActionQuizCompleted,
		OccurredAt: now,
		QuizScore:  score,
		Reason:     "Quiz completed: " + quiz.Title,
	})
	if err != nil {
		return nil, nil, err
	}

	result := &models.QuizResult{
		Score:     score,
		Total:     total,
		Correct:   correct,
		Completed: a.Status == models.ActivityStatusCompleted,
	}
	return result, reward, nil
}

// MarkCompleted completes a non-quiz activity directly.
func (s *ActivityService) MarkCompleted(activityID, externalUserID string) (*models.Activity, error) {
	a, err := s.Get(activityID, externalUserID)
	if err != nil {
		return nil, err
	}
	if a.Status != models.ActivityStatusCompleted {
		now := time.Now().UTC()
		a.Status = models.ActivityStatusCompleted
		a.CompletedAt = &now
		if err := s.DB.Save(a).Error; err != nil {
			return nil, err
		}
	}
	return a, nil
}

// CompletedCount backs mentor matching and the dashboard.
func (s *ActivityService) CompletedCount(externalUserID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Activity{}).
		Where("external_user_id = ? AND status = ?", externalUserID, models.ActivityStatusCompleted).
		Count(&count).Error
	return count, err
}
