package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"career-counselor-service/models"
)

// CareerInsightsService wraps the AI provider for content generation. Every
// method degrades to static content when the provider is unconfigured or
// unreachable — the fallbacks are the contract, the AI answers are a bonus.
type CareerInsightsService struct {
	AI     *AIClient
	Engine *GamificationEngine
}

func NewCareerInsightsService(ai *AIClient, engine *GamificationEngine) *CareerInsightsService {
	return &CareerInsightsService{AI: ai, Engine: engine}
}

// CareerPath is the career exploration payload.
type CareerPath struct {
	Career             string            `json:"career"`
	Overview           string            `json:"overview"`
	RequiredSkills     []string          `json:"required_skills"`
	RecommendedCourses []Course          `json:"recommended_courses"`
	Certifications     []Certification   `json:"certifications"`
	JobRoles           []JobRole         `json:"job_roles"`
	SalaryRange        map[string]string `json:"salary_range"`
	GrowthOutlook      string            `json:"growth_outlook"`
	Source             string            `json:"source"` // "ai" or "fallback"
}

type Course struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Platform    string `json:"platform"`
	Duration    string `json:"duration"`
}

type Certification struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	Description string `json:"description"`
	Validity    string `json:"validity"`
}

type JobRole struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	ExperienceLevel string `json:"experience_level"`
}

// ExploreCareer returns a full career profile for any profession name.
func (s *CareerInsightsService) ExploreCareer(careerName string) *CareerPath {
	var path CareerPath
	err := s.AI.CompleteJSON(
		"You are a world-class career counselor with expertise in ALL professions globally. Respond with a JSON object with keys: career, overview, required_skills, recommended_courses, certifications, job_roles, salary_range, growth_outlook.",
		fmt.Sprintf("Provide a detailed career profile for: %s", careerName),
		&path,
	)
	if err == nil && path.Career != "" {
		path.Source = "ai"
		return &path
	}
	return careerPathFallback(careerName)
}

func careerPathFallback(careerName string) *CareerPath {
	lower := strings.ToLower(careerName)
	switch {
	case containsAny(lower, "software", "developer", "programmer", "engineer"):
		return &CareerPath{
			Career:         careerName,
			Overview:       "Software engineers design, develop, and maintain software applications and systems.",
			RequiredSkills: []string{"Programming (Python/Java/JavaScript)", "Data Structures & Algorithms", "Version Control (Git)", "Database Management", "Software Testing", "System Design"},
			RecommendedCourses: []Course{
				{"Complete Python Bootcamp", "Master Python programming from basics to advanced", "Udemy", "40 hours"},
				{"Data Structures and Algorithms", "Learn fundamental algorithms and data structures", "Coursera", "6 weeks"},
				{"Full Stack Web Development", "Build complete web applications", "freeCodeCamp", "300 hours"},
			},
			Certifications: []Certification{
				{"AWS Certified Developer", "Amazon Web Services", "Cloud development and deployment", "3 years"},
			},
			JobRoles: []JobRole{
				{"Junior Software Developer", "Entry-level development role", "Entry"},
				{"Software Engineer", "Mid-level development and design", "Mid"},
				{"Senior Software Engineer", "Lead development and architecture", "Senior"},
			},
			SalaryRange:   map[string]string{"entry": "$60,000 - $90,000", "mid": "$90,000 - $130,000", "senior": "$130,000 - $180,000+"},
			GrowthOutlook: "Excellent - High demand with 22% projected growth",
			Source:        "fallback",
		}
	case containsAny(lower, "data analyst", "data analysis"):
		return &CareerPath{
			Career:         careerName,
			Overview:       "Data analysts interpret complex data to help organizations make informed decisions.",
			RequiredSkills: []string{"SQL", "Python/R", "Excel", "Data Visualization (Tableau/Power BI)", "Statistics", "Data Cleaning"},
			RecommendedCourses: []Course{
				{"SQL for Data Analysis", "Master SQL queries and data manipulation", "DataCamp", "20 hours"},
				{"Python for Data Science", "Learn pandas, NumPy, and data analysis", "Coursera", "8 weeks"},
			},
			Certifications: []Certification{
				{"Google Data Analytics Certificate", "Google", "Comprehensive data analytics skills", "Lifetime"},
			},
			JobRoles: []JobRole{
				{"Junior Data Analyst", "Entry-level data analysis", "Entry"},
				{"Data Analyst", "Mid-level analysis and reporting", "Mid"},
				{"Senior Data Analyst", "Advanced analysis and strategy", "Senior"},
			},
			SalaryRange:   map[string]string{"entry": "$55,000 - $75,000", "mid": "$75,000 - $100,000", "senior": "$100,000 - $130,000+"},
			GrowthOutlook: "Excellent - 25% projected growth, high demand",
			Source:        "fallback",
		}
	case containsAny(lower, "teacher", "educator", "teaching"):
		return &CareerPath{
			Career:         careerName,
			Overview:       "Teachers educate and inspire students, creating engaging learning environments.",
			RequiredSkills: []string{"Subject Matter Expertise", "Lesson Planning", "Classroom Management", "Communication", "Assessment Design"},
			RecommendedCourses: []Course{
				{"Teaching Methods and Strategies", "Effective teaching techniques", "Coursera", "6 weeks"},
				{"Classroom Management", "Managing student behavior and engagement", "edX", "4 weeks"},
			},
			Certifications: []Certification{
				{"Teaching License/Certification", "State Education Board", "Required teaching credential", "Renewable"},
			},
			JobRoles: []JobRole{
				{"Substitute Teacher", "Temporary teaching assignments", "Entry"},
				{"Classroom Teacher", "Full-time teaching position", "Mid"},
				{"Department Head/Lead Teacher", "Leadership and curriculum development", "Senior"},
			},
			SalaryRange:   map[string]string{"entry": "$40,000 - $50,000", "mid": "$50,000 - $65,000", "senior": "$65,000 - $85,000+"},
			GrowthOutlook: "Stable - Consistent demand, varies by region",
			Source:        "fallback",
		}
	default:
		return &CareerPath{
			Career:         careerName,
			Overview:       fmt.Sprintf("%s is a professional career path that requires specific skills and qualifications.", careerName),
			RequiredSkills: []string{"Industry-specific knowledge", "Communication skills", "Problem-solving", "Continuous learning"},
			RecommendedCourses: []Course{
				{fmt.Sprintf("Introduction to %s", careerName), "Foundational course", "Various", "Varies"},
				{fmt.Sprintf("Advanced %s Skills", careerName), "Advanced techniques", "Various", "Varies"},
			},
			Certifications: []Certification{
				{fmt.Sprintf("%s Certification", careerName), "Industry Organization", "Professional certification", "Varies"},
			},
			JobRoles: []JobRole{
				{fmt.Sprintf("Junior %s", careerName), "Entry-level position", "Entry"},
				{careerName, "Mid-level professional", "Mid"},
				{fmt.Sprintf("Senior %s", careerName), "Advanced professional", "Senior"},
			},
			SalaryRange:   map[string]string{"entry": "Varies by location", "mid": "Varies by experience", "senior": "Varies by role"},
			GrowthOutlook: "Research current market trends for accurate information",
			Source:        "fallback",
		}
	}
}

// CourseRecommendations suggests courses for a target role.
func (s *CareerInsightsService) CourseRecommendations(targetRole string) []Course {
	var out struct {
		Courses []Course `json:"courses"`
	}
	err := s.AI.CompleteJSON(
		"You are a career counselor. Respond with a JSON object: {\"courses\": [{name, description, platform, duration}]}.",
		fmt.Sprintf("Recommend 10 courses for someone targeting the role: %s", targetRole),
		&out,
	)
	if err == nil && len(out.Courses) > 0 {
		return out.Courses
	}
	return careerPathFallback(targetRole).RecommendedCourses
}

// JobMarketInsights describes demand and trends for a career.
type JobMarketInsights struct {
	Career         string   `json:"career"`
	Demand         string   `json:"demand"`
	TrendingSkills []string `json:"trending_skills"`
	TopLocations   []string `json:"top_locations"`
	Summary        string   `json:"summary"`
	Source         string   `json:"source"`
}

func (s *CareerInsightsService) MarketInsights(careerName, region string) *JobMarketInsights {
	var insights JobMarketInsights
	err := s.AI.CompleteJSON(
		"You are a labor market analyst. Respond with a JSON object with keys: career, demand, trending_skills, top_locations, summary.",
		fmt.Sprintf("Give job market insights for %s%s", careerName, regionSuffix(region)),
		&insights,
	)
	if err == nil && insights.Career != "" {
		insights.Source = "ai"
		return &insights
	}
	return &JobMarketInsights{
		Career:         careerName,
		Demand:         "Moderate to high, varies by region",
		TrendingSkills: careerPathFallback(careerName).RequiredSkills,
		TopLocations:   []string{"Remote", "Major metro areas"},
		Summary:        fmt.Sprintf("Demand for %s roles remains steady; remote openings broaden the market.", careerName),
		Source:         "fallback",
	}
}

func regionSuffix(region string) string {
	if region == "" {
		return ""
	}
	return " in " + region
}

// SalaryTips is the negotiation assistant payload.
type SalaryTips struct {
	Role   string   `json:"role"`
	Tips   []string `json:"tips"`
	Market string   `json:"market_note"`
	Source string   `json:"source"`
}

func (s *CareerInsightsService) SalaryNegotiationTips(role, currentSalary, offerAmount, location string) *SalaryTips {
	var tips SalaryTips
	err := s.AI.CompleteJSON(
		"You are a salary negotiation coach. Respond with a JSON object with keys: role, tips (array of strings), market_note.",
		fmt.Sprintf("Role: %s. Current salary: %s. Offer: %s. Location: %s. Give negotiation tips.", role, currentSalary, offerAmount, location),
		&tips,
	)
	if err == nil && len(tips.Tips) > 0 {
		tips.Source = "ai"
		return &tips
	}
	return &SalaryTips{
		Role: role,
		Tips: []string{
			"Research market rates for the role and location before naming a number",
			"Let the employer make the first offer where possible",
			"Negotiate the whole package: base, bonus, equity, time off",
			"Anchor with a range whose bottom is your real target",
			"Get the final offer in writing before resigning elsewhere",
		},
		Market: "Use aggregate salary sites and peers in the role to calibrate.",
		Source: "fallback",
	}
}

// InterviewQuestions returns practice questions for a role.
func (s *CareerInsightsService) InterviewQuestions(role string) []string {
	var out struct {
		Questions []string `json:"questions"`
	}
	err := s.AI.CompleteJSON(
		"You are an interview coach. Respond with a JSON object: {\"questions\": [string]}.",
		fmt.Sprintf("Give 8 realistic interview questions for the role: %s", role),
		&out,
	)
	if err == nil && len(out.Questions) > 0 {
		return out.Questions
	}
	return []string{
		fmt.Sprintf("Why do you want to work as a %s?", role),
		"Tell me about a challenging problem you solved and how",
		"Describe a time you received difficult feedback",
		"How do you prioritize when everything is urgent?",
		"Where do you want to be in five years?",
		"What would your last teammates say about working with you?",
	}
}

// Chat answers a free-form career question.
func (s *CareerInsightsService) Chat(message string) string {
	reply, err := s.AI.Complete(
		"You are a friendly, practical career counselor. Keep answers concise and actionable.",
		message,
		false,
	)
	if err == nil && reply != "" {
		return reply
	}
	return "I'm offline right now, but here's a general tip: break your goal into the next single concrete step — update one resume section, message one contact, or finish one course module today."
}

// CareerMatch is one scored suggestion from the personality test.
type CareerMatch struct {
	Career          string   `json:"career"`
	FitScore        int      `json:"fit_score"`
	Reason          string   `json:"reason"`
	SkillsNeeded    []string `json:"skills_needed"`
	GrowthPotential string   `json:"growth_potential"`
}

// PersonalityResult is the full personality test payload.
type PersonalityResult struct {
	PersonalityType string        `json:"personality_type"`
	Careers         []CareerMatch `json:"careers"`
	Insights        string        `json:"insights"`
	Source          string        `json:"source"`
}

// PersonalityTest scores the answers into career matches and reports the
// completion to the engine (30 XP).
func (s *CareerInsightsService) PersonalityTest(externalUserID string, answersJSON string) (*PersonalityResult, *models.RewardResult, error) {
	var result PersonalityResult
	err := s.AI.CompleteJSON(
		"You are a career counselor expert in personality assessments and career matching. Respond with a JSON object with keys: personality_type, careers (career, fit_score, reason, skills_needed, growth_potential), insights.",
		fmt.Sprintf("Based on these personality test answers, suggest 5 career matches with fit scores:\n\nAnswers: %s", answersJSON),
		&result,
	)
	if err != nil || len(result.Careers) == 0 {
		result = PersonalityResult{
			PersonalityType: "Analytical & Creative",
			Careers: []CareerMatch{
				{"Software Engineer", 85, "Matches analytical thinking", []string{"Programming", "Problem-solving"}, "High"},
				{"Data Analyst", 80, "Good for detail-oriented people", []string{"Analytics", "Statistics"}, "High"},
			},
			Insights: "You have a balanced personality suitable for technical and creative roles.",
			Source:   "fallback",
		}
	} else {
		result.Source = "ai"
	}

	reward, err := s.Engine.ApplyEvent(externalUserID, models.Event{
		Kind:       models.ActionPersonalityTest,
		OccurredAt: time.Now().UTC(),
		Reason:     "Completed personality test",
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return &result, nil, nil
		}
		return nil, nil, err
	}
	return &result, reward, nil
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
