package services

import (
	"strings"

	"career-counselor-service/models"
)

// QuizBank is the static quiz content, keyed by normalized role, then level.
// Variants rotate so retakes of an activity see a different set.
var QuizBank = map[string]map[string][]models.Quiz{
	"teacher": {
		"basic": {
			{
				Title: "Teaching Fundamentals",
				Questions: []models.QuizQuestion{
					{ID: "q1", Text: "What is the purpose of learning objectives?", Choices: []string{"To confuse students", "To guide instruction and assessment", "To waste class time"}, Answer: 1},
					{ID: "q2", Text: "Which is a formative assessment?", Choices: []string{"Final exam", "Exit ticket during class", "Standardized test"}, Answer: 1},
					{ID: "q3", Text: "What does differentiated instruction mean?", Choices: []string{"Teaching everyone identically", "Adapting teaching to student needs", "Only teaching advanced students"}, Answer: 1},
					{ID: "q4", Text: "Why use a lesson plan?", Choices: []string{"Administrative requirement only", "To structure goals, activities and timing", "It is optional paperwork"}, Answer: 1},
				},
			},
			{
				Title: "Classroom Management",
				Questions: []models.QuizQuestion{
					{ID: "q1", Text: "Best first response to minor disruption?", Choices: []string{"Send the student out", "Nonverbal cue or proximity", "Stop the lesson entirely"}, Answer: 1},
					{ID: "q2", Text: "What builds classroom routines?", Choices: []string{"Changing rules daily", "Consistent expectations practiced early", "Avoiding all structure"}, Answer: 1},
					{ID: "q3", Text: "Positive reinforcement means?", Choices: []string{"Ignoring good behavior", "Recognizing desired behavior", "Punishing mistakes"}, Answer: 1},
				},
			},
		},
	},
	"software engineer": {
		"basic": {
			{
				Title: "Programming Basics",
				Questions: []models.QuizQuestion{
					{ID: "q1", Text: "What is version control for?", Choices: []string{"Deleting old code", "Tracking and merging code changes", "Compiling programs"}, Answer: 1},
					{ID: "q2", Text: "What does a unit test verify?", Choices: []string{"The whole system end to end", "A small piece of code in isolation", "Server uptime"}, Answer: 1},
					{ID: "q3", Text: "Big-O notation describes?", Choices: []string{"Code style", "Algorithmic complexity growth", "Memory addresses"}, Answer: 1},
					{ID: "q4", Text: "What is a code review?", Choices: []string{"A performance review", "Peers examining changes before merge", "Automated formatting"}, Answer: 1},
				},
			},
			{
				Title: "Web Fundamentals",
				Questions: []models.QuizQuestion{
					{ID: "q1", Text: "What does HTTP status 404 mean?", Choices: []string{"Server error", "Resource not found", "Unauthorized"}, Answer: 1},
					{ID: "q2", Text: "What is an API?", Choices: []string{"A database", "A contract for programmatic access", "A web browser"}, Answer: 1},
					{ID: "q3", Text: "What does SQL injection exploit?", Choices: []string{"Slow networks", "Unsanitized user input in queries", "Large images"}, Answer: 1},
				},
			},
		},
		"intermediate": {
			{
				Title: "System Design Basics",
				Questions: []models.QuizQuestion{
					{ID: "q1", Text: "Why add a cache in front of a database?", Choices: []string{"To encrypt data", "To reduce read latency and load", "To back up data"}, Answer: 1},
					{ID: "q2", Text: "Horizontal scaling means?", Choices: []string{"Bigger machines", "More machines", "Fewer machines"}, Answer: 1},
					{ID: "q3", Text: "What is idempotency?", Choices: []string{"Running once only", "Repeated calls give the same effect", "Parallel execution"}, Answer: 1},
				},
			},
		},
	},
	"data analyst": {
		"basic": {
			{
				Title: "Data Analysis Basics",
				Questions: []models.QuizQuestion{
					{ID: "q1", Text: "What is a median?", Choices: []string{"Most frequent value", "Middle value when sorted", "Sum divided by count"}, Answer: 1},
					{ID: "q2", Text: "Why clean data before analysis?", Choices: []string{"It is optional", "Errors and duplicates skew results", "To reduce file size only"}, Answer: 1},
					{ID: "q3", Text: "A histogram shows?", Choices: []string{"Relationships between two variables", "Distribution of one variable", "Time ordering"}, Answer: 1},
					{ID: "q4", Text: "What is class imbalance?", Choices: []string{"Not a problem", "Unequal class distribution", "Only in classification"}, Answer: 1},
				},
			},
		},
	},
	"ux designer": {
		"basic": {
			{
				Title: "UX Fundamentals",
				Questions: []models.QuizQuestion{
					{ID: "q1", Text: "What is a user persona?", Choices: []string{"A real customer", "A research-based archetype of a user", "A marketing slogan"}, Answer: 1},
					{ID: "q2", Text: "Usability testing measures?", Choices: []string{"Visual beauty", "How easily users complete tasks", "Server speed"}, Answer: 1},
					{ID: "q3", Text: "A wireframe is?", Choices: []string{"Final visual design", "Low-fidelity layout sketch", "Code prototype"}, Answer: 1},
				},
			},
		},
	},
	"default": {
		"basic": {
			{
				Title: "Career Skills",
				Questions: []models.QuizQuestion{
					{ID: "q1", Text: "Best way to grow professionally?", Choices: []string{"Avoid feedback", "Continuous learning and practice", "Change nothing"}, Answer: 1},
					{ID: "q2", Text: "What makes a good goal?", Choices: []string{"Vague and open-ended", "Specific and measurable", "Impossible to reach"}, Answer: 1},
					{ID: "q3", Text: "Networking helps because?", Choices: []string{"It replaces skills", "It surfaces opportunities and mentors", "It is required by law"}, Answer: 1},
				},
			},
		},
	},
}

// knownQuizRoles are matched against free-form role strings.
var knownQuizRoles = []string{
	"teacher", "software engineer", "data analyst", "ux designer",
	"product manager", "marketing", "graphic designer",
}

// NormalizeQuizRole maps a free-form role ("Senior Software Engineer") onto a
// quiz bank key, falling back to "default".
func NormalizeQuizRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, known := range knownQuizRoles {
		if role != "" && (strings.Contains(role, known) || strings.Contains(known, role)) {
			if _, ok := QuizBank[known]; ok {
				return known
			}
		}
	}
	if _, ok := QuizBank[role]; ok {
		return role
	}
	return "default"
}

// QuizFor picks the quiz for (role, level, variant). Falls back through
// level "basic" and role "default" so an activity always has a quiz.
func QuizFor(role, level string, variant int) models.Quiz {
	byLevel, ok := QuizBank[NormalizeQuizRole(role)]
	if !ok {
		byLevel = QuizBank["default"]
	}
	quizzes, ok := byLevel[strings.ToLower(level)]
	if !ok || len(quizzes) == 0 {
		quizzes = byLevel["basic"]
	}
	if len(quizzes) == 0 {
		quizzes = QuizBank["default"]["basic"]
	}
	if variant < 1 {
		variant = 1
	}
	return quizzes[(variant-1)%len(quizzes)]
}
