package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"career-counselor-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrRoadmapNotFound = errors.New("roadmap not found")

type RoadmapService struct {
	DB     *gorm.DB
	AI     *AIClient
	Engine *GamificationEngine
}

func NewRoadmapService(db *gorm.DB, ai *AIClient, engine *GamificationEngine) *RoadmapService {
	return &RoadmapService{DB: db, AI: ai, Engine: engine}
}

// Generate builds a roadmap for a goal, via the AI provider when available,
// otherwise from the static step lists. Awards roadmap XP best-effort — a
// missing game state never blocks the roadmap itself.
func (s *RoadmapService) Generate(externalUserID, goal, context string) (*models.Roadmap, *models.RewardResult, error) {
	steps, source := s.generateSteps(goal, context)

	stepsJSON, err := json.Marshal(steps)
	if err != nil {
		return nil, nil, err
	}

	roadmap := models.Roadmap{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		Goal:           goal,
		Context:        context,
		Steps:          string(stepsJSON),
		Source:         source,
	}
	if err := s.DB.Create(&roadmap).Error; err != nil {
		return nil, nil, err
	}

	reward, err := s.Engine.ApplyEvent(externalUserID, models.Event{
		Kind:       models.ActionRoadmapGenerated,
		OccurredAt: time.Now().UTC(),
		Reason:     "Generated a roadmap",
	})
	if err != nil {
		// The roadmap is already stored; a failed reward must not undo it.
		return &roadmap, nil, nil
	}
	return &roadmap, reward, nil
}

func (s *RoadmapService) generateSteps(goal, context string) ([]models.RoadmapStep, string) {
	var out struct {
		Steps []models.RoadmapStep `json:"steps"`
	}
	err := s.AI.CompleteJSON(
		"You are a career counselor. Respond with a JSON object: {\"steps\": [{order, title, description, duration}]} — 6-10 concrete steps.",
		fmt.Sprintf("Create a career roadmap for the goal: %s. Context: %s", goal, context),
		&out,
	)
	if err == nil && len(out.Steps) > 0 {
		return out.Steps, "ai"
	}
	return fallbackSteps(goal), "fallback"
}

func fallbackSteps(goal string) []models.RoadmapStep {
	lower := strings.ToLower(goal)
	switch {
	case containsAny(lower, "teacher", "educator", "teaching"):
		return []models.RoadmapStep{
			{Order: 1, Title: "Earn a relevant bachelor's degree", Description: "Education or your subject area", Duration: "3-4 years"},
			{Order: 2, Title: "Complete a teacher preparation program", Description: "Pedagogy, lesson planning, classroom practice", Duration: "1 year"},
			{Order: 3, Title: "Pass certification exams", Description: "State licensing requirements", Duration: "1-3 months"},
			{Order: 4, Title: "Student-teach under a mentor", Description: "Supervised classroom experience", Duration: "1 semester"},
			{Order: 5, Title: "Apply for teaching positions", Description: "Build a portfolio of lesson plans", Duration: "2-3 months"},
			{Order: 6, Title: "Pursue continuing education", Description: "Workshops, advanced certifications", Duration: "Ongoing"},
		}
	case containsAny(lower, "software", "developer", "programmer", "engineer"):
		return []models.RoadmapStep{
			{Order: 1, Title: "Learn programming fundamentals", Description: "Pick one language and master the basics", Duration: "2-3 months"},
			{Order: 2, Title: "Study data structures and algorithms", Description: "Core problem-solving toolkit", Duration: "2-3 months"},
			{Order: 3, Title: "Build portfolio projects", Description: "Two or three real, shipped projects", Duration: "3-4 months"},
			{Order: 4, Title: "Learn version control and collaboration", Description: "Git, code review, issue tracking", Duration: "2-4 weeks"},
			{Order: 5, Title: "Contribute to open source", Description: "Real-world codebases and feedback", Duration: "Ongoing"},
			{Order: 6, Title: "Practice technical interviews", Description: "Coding problems and system design", Duration: "1-2 months"},
			{Order: 7, Title: "Apply and iterate", Description: "Tailor applications, learn from each interview", Duration: "2-3 months"},
		}
	case containsAny(lower, "data"):
		return []models.RoadmapStep{
			{Order: 1, Title: "Learn SQL and spreadsheets", Description: "The everyday tools of analysis", Duration: "1-2 months"},
			{Order: 2, Title: "Learn Python or R for data", Description: "pandas/tidyverse, notebooks", Duration: "2-3 months"},
			{Order: 3, Title: "Study statistics fundamentals", Description: "Distributions, hypothesis testing", Duration: "1-2 months"},
			{Order: 4, Title: "Master a visualization tool", Description: "Tableau or Power BI dashboards", Duration: "1 month"},
			{Order: 5, Title: "Complete portfolio analyses", Description: "End-to-end projects on public datasets", Duration: "2-3 months"},
			{Order: 6, Title: "Apply for analyst roles", Description: "Lead with the portfolio", Duration: "2-3 months"},
		}
	case containsAny(lower, "ux", "designer", "design"):
		return []models.RoadmapStep{
			{Order: 1, Title: "Learn design fundamentals", Description: "Typography, color, layout, hierarchy", Duration: "1-2 months"},
			{Order: 2, Title: "Study UX research methods", Description: "Interviews, personas, usability tests", Duration: "1-2 months"},
			{Order: 3, Title: "Master a design tool", Description: "Figma end to end", Duration: "1 month"},
			{Order: 4, Title: "Redesign real products as practice", Description: "Case studies with before/after rationale", Duration: "2-3 months"},
			{Order: 5, Title: "Build a portfolio site", Description: "Three strong case studies", Duration: "1 month"},
			{Order: 6, Title: "Apply and network", Description: "Design communities, portfolio reviews", Duration: "Ongoing"},
		}
	default:
		return []models.RoadmapStep{
			{Order: 1, Title: fmt.Sprintf("Research what %s involves day to day", goal), Description: "Talk to people in the role", Duration: "2-4 weeks"},
			{Order: 2, Title: "Identify the skill gaps", Description: "Compare job postings against your profile", Duration: "1-2 weeks"},
			{Order: 3, Title: "Pick a learning path", Description: "Courses, certifications, or a degree", Duration: "1 month"},
			{Order: 4, Title: "Build demonstrable experience", Description: "Projects, volunteering, freelance work", Duration: "3-6 months"},
			{Order: 5, Title: "Grow a professional network", Description: "Events, online communities, mentors", Duration: "Ongoing"},
			{Order: 6, Title: "Apply strategically", Description: "Tailored applications over volume", Duration: "2-3 months"},
		}
	}
}

func (s *RoadmapService) ListForUser(externalUserID string) ([]models.Roadmap, error) {
	var roadmaps []models.Roadmap
	err := s.DB.Where("external_user_id = ?", externalUserID).
		Order("created_at DESC").
		Find(&roadmaps).Error
	return roadmaps, err
}

// Get enforces ownership unless the roadmap is shared.
func (s *RoadmapService) Get(roadmapID, externalUserID string) (*models.Roadmap, error) {
	var roadmap models.Roadmap
	err := s.DB.Where("id = ?", roadmapID).First(&roadmap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoadmapNotFound
	}
	if err != nil {
		return nil, err
	}
	if roadmap.ExternalUserID != externalUserID && !roadmap.Shared {
		return nil, ErrRoadmapNotFound
	}
	return &roadmap, nil
}

// Share flips the share flag; only the owner can share.
func (s *RoadmapService) Share(roadmapID, externalUserID string) (*models.Roadmap, error) {
	var roadmap models.Roadmap
	err := s.DB.Where("id = ? AND external_user_id = ?", roadmapID, externalUserID).First(&roadmap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoadmapNotFound
	}
	if err != nil {
		return nil, err
	}
	roadmap.Shared = true
	if err := s.DB.Save(&roadmap).Error; err != nil {
		return nil, err
	}
	return &roadmap, nil
}

// Save bookmarks another user's (shared) roadmap. Idempotent per user+roadmap.
func (s *RoadmapService) Save(roadmapID, externalUserID string) (*models.RewardResult, error) {
	if _, err := s.Get(roadmapID, externalUserID); err != nil {
		return nil, err
	}

	var existing int64
	s.DB.Model(&models.SavedRoadmap{}).
		Where("external_user_id = ? AND roadmap_id = ?", externalUserID, roadmapID).
		Count(&existing)
	if existing > 0 {
		return nil, nil
	}

	saved := models.SavedRoadmap{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		RoadmapID:      roadmapID,
	}
	if err := s.DB.Create(&saved).Error; err != nil {
		return nil, err
	}

	reward, err := s.Engine.ApplyEvent(externalUserID, models.Event{
		Kind:       models.ActionRoadmapSaved,
		OccurredAt: time.Now().UTC(),
		Reason:     "Saved a roadmap",
	})
	if err != nil {
		return nil, nil
	}
	return reward, nil
}

func (s *RoadmapService) SavedForUser(externalUserID string) ([]models.SavedRoadmap, error) {
	var saved []models.SavedRoadmap
	err := s.DB.Where("external_user_id = ?", externalUserID).
		Preload("Roadmap").
		Order("created_at DESC").
		Find(&saved).Error
	return saved, err
}
