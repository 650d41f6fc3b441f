package services

import (
	"encoding/json"
	"errors"
	"time"

	"career-counselor-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPathNotFound = errors.New("learning path not found")
	ErrBadMilestone = errors.New("milestone index out of range")
	ErrNoMilestones = errors.New("learning path needs at least one milestone")
)

type LearningPathService struct {
	DB     *gorm.DB
	Engine *GamificationEngine
}

func NewLearningPathService(db *gorm.DB, engine *GamificationEngine) *LearningPathService {
	return &LearningPathService{DB: db, Engine: engine}
}

// Create stores a new path with its milestones and awards the creation XP.
func (s *LearningPathService) Create(externalUserID, careerField string, milestones []models.Milestone) (*models.LearningPath, *models.RewardResult, error) {
	if len(milestones) == 0 {
		return nil, nil, ErrNoMilestones
	}
	for i := range milestones {
		milestones[i].Completed = false
		milestones[i].CompletedAt = nil
	}

	milestonesJSON, err := json.Marshal(milestones)
	if err != nil {
		return nil, nil, err
	}

	path := models.LearningPath{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		CareerField:    careerField,
		Milestones:     string(milestonesJSON),
		Progress:       0,
	}
	if err := s.DB.Create(&path).Error; err != nil {
		return nil, nil, err
	}

	reward, err := s.Engine.ApplyEvent(externalUserID, models.Event{
		Kind:       models.ActionLearningPathCreated,
		OccurredAt: time.Now().UTC(),
		Reason:     "Created learning path",
	})
	if err != nil {
		reward = nil
	}
	return &path, reward, nil
}

func (s *LearningPathService) ListForUser(externalUserID string) ([]models.LearningPath, error) {
	var paths []models.LearningPath
	err := s.DB.Where("external_user_id = ?", externalUserID).
		Order("created_at DESC").
		Find(&paths).Error
	return paths, err
}

// CompleteMilestone marks one milestone done, recomputes progress and awards
// the milestone XP. Finishing the last milestone additionally reports path
// completion (the PathMaster trigger). Re-completing a milestone is a no-op.
func (s *LearningPathService) CompleteMilestone(pathID, externalUserID string, index int) (*models.LearningPath, *models.RewardResult, error) {
	var path models.LearningPath
	err := s.DB.Where("id = ? AND external_user_id = ?", pathID, externalUserID).First(&path).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrPathNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var milestones []models.Milestone
	if err := json.Unmarshal([]byte(path.Milestones), &milestones); err != nil {
		return nil, nil, err
	}
	if index < 0 || index >= len(milestones) {
		return nil, nil, ErrBadMilestone
	}
	if milestones[index].Completed {
		return &path, nil, nil
	}

	now := time.Now().UTC()
	milestones[index].Completed = true
	milestones[index].CompletedAt = &now

	completed := 0
	for _, m := range milestones {
		if m.Completed {
			completed++
		}
	}
	path.Progress = completed * 100 / len(milestones)
	if index+1 < len(milestones) {
		path.CurrentMilestone = index + 1
	} else {
		path.CurrentMilestone = len(milestones) - 1
	}

	milestonesJSON, err := json.Marshal(milestones)
	if err != nil {
		return nil, nil, err
	}
	path.Milestones = string(milestonesJSON)

	if err := s.DB.Save(&path).Error; err != nil {
		return nil, nil, err
	}

	reward, err := s.Engine.ApplyEvent(externalUserID, models.Event{
		Kind:       models.ActionMilestoneCompleted,
		OccurredAt: now,
		Reason:     "Completed milestone: " + milestones[index].Title,
	})
	if err != nil {
		return &path, nil, nil
	}

	if path.Progress == 100 {
		finish, err := s.Engine.ApplyEvent(externalUserID, models.Event{
			Kind:       models.ActionLearningPathCompleted,
			OccurredAt: now,
			Reason:     "Completed learning path for " + path.CareerField,
		})
		if err == nil {
			// Merge: the caller sees one result for the whole call.
			reward.NewBadges = append(reward.NewBadges, finish.NewBadges...)
			reward.XPAwarded += finish.XPAwarded
			if finish.LeveledUp {
				reward.LeveledUp = true
				reward.NewLevel = finish.NewLevel
			}
		}
	}
	return &path, reward, nil
}
