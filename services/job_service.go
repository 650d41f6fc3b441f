package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"career-counselor-service/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrApplicationNotFound = errors.New("application not found")
)

type JobService struct {
	DB       *gorm.DB
	Engine   *GamificationEngine
	Notifier *NotificationService
}

func NewJobService(db *gorm.DB, engine *GamificationEngine, notifier *NotificationService) *JobService {
	return &JobService{DB: db, Engine: engine, Notifier: notifier}
}

// JobInput carries the admin-editable posting fields.
type JobInput struct {
	Title              string     `json:"title"`
	Company            string     `json:"company"`
	Description        string     `json:"description"`
	Requirements       string     `json:"requirements"`
	ExperienceRequired string     `json:"experience_required"`
	SalaryRange        string     `json:"salary_range"`
	Location           string     `json:"location"`
	JobType            string     `json:"job_type"`
	CareerField        string     `json:"career_field"`
	Deadline           *time.Time `json:"deadline"`
}

// CreatePosting creates an admin job posting with a unique slug.
func (s *JobService) CreatePosting(adminID string, input JobInput) (*models.JobPosting, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Company) == "" {
		return nil, errors.New("title and company are required")
	}

	jobType := input.JobType
	if jobType == "" {
		jobType = "Full-time"
	}

	job := models.JobPosting{
		ID:                 uuid.NewString(),
		AdminID:            adminID,
		Title:              input.Title,
		Slug:               s.uniqueSlug(input.Title, input.Company),
		Company:            input.Company,
		Description:        input.Description,
		Requirements:       input.Requirements,
		ExperienceRequired: input.ExperienceRequired,
		SalaryRange:        input.SalaryRange,
		Location:           input.Location,
		JobType:            jobType,
		CareerField:        input.CareerField,
		Status:             models.JobStatusActive,
		Deadline:           input.Deadline,
	}
	if err := s.DB.Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// uniqueSlug derives "company-title", suffixing a short id on collision.
func (s *JobService) uniqueSlug(title, company string) string {
	base := slug.Make(fmt.Sprintf("%s %s", company, title))
	var count int64
	s.DB.Model(&models.JobPosting{}).Where("slug = ?", base).Count(&count)
	if count == 0 {
		return base
	}
	return fmt.Sprintf("%s-%.8s", base, uuid.NewString())
}

// ListPostings returns postings for the public site, newest first.
func (s *JobService) ListPostings(careerField string, status models.JobStatus) ([]models.JobPosting, error) {
	if status == "" {
		status = models.JobStatusActive
	}
	var jobs []models.JobPosting
	q := s.DB.Where("status = ?", status)
	if careerField != "" {
		q = q.Where("LOWER(career_field) = ?", strings.ToLower(careerField))
	}
	err := q.Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (s *JobService) GetPosting(jobID string) (*models.JobPosting, error) {
	var job models.JobPosting
	err := s.DB.Where("id = ? OR slug = ?", jobID, jobID).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobService) UpdatePostingStatus(jobID string, status models.JobStatus) (*models.JobPosting, error) {
	job, err := s.GetPosting(jobID)
	if err != nil {
		return nil, err
	}
	job.Status = status
	if err := s.DB.Save(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) DeletePosting(jobID string) error {
	res := s.DB.Where("id = ?", jobID).Delete(&models.JobPosting{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// ApplicationInput carries the applicant-submitted fields.
type ApplicationInput struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Experience  string `json:"experience"`
	Skills      string `json:"skills"`
	Education   string `json:"education"`
	CoverLetter string `json:"cover_letter"`
}

// Apply files an application (one per user+job) and awards the application XP.
func (s *JobService) Apply(externalUserID, jobID string, input ApplicationInput) (*models.JobApplication, *models.RewardResult, error) {
	job, err := s.GetPosting(jobID)
	if err != nil {
		return nil, nil, err
	}
	if job.Status != models.JobStatusActive {
		return nil, nil, ErrJobNotFound
	}

	var existing int64
	s.DB.Model(&models.JobApplication{}).
		Where("external_user_id = ? AND job_id = ?", externalUserID, job.ID).
		Count(&existing)
	if existing > 0 {
		return nil, nil, ErrAlreadyApplied
	}

	application := models.JobApplication{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		JobID:          job.ID,
		FullName:       input.FullName,
		Email:          input.Email,
		Phone:          input.Phone,
		Experience:     input.Experience,
		Skills:         input.Skills,
		Education:      input.Education,
		CoverLetter:    input.CoverLetter,
		Status:         models.ApplicationStatusPending,
	}
	if err := s.DB.Create(&application).Error; err != nil {
		return nil, nil, err
	}

	reward, err := s.Engine.ApplyEvent(externalUserID, models.Event{
		Kind:       models.ActionJobApplication,
		OccurredAt: time.Now().UTC(),
		Reason:     "Applied for a job: " + job.Title,
	})
	if err != nil {
		reward = nil
	}

	_, _ = s.Notifier.Create(externalUserID, models.NotificationApplicationUpdate,
		"Application Submitted",
		fmt.Sprintf("Your application for %s at %s was submitted.", job.Title, job.Company),
		"/applications")

	return &application, reward, nil
}

func (s *JobService) ListUserApplications(externalUserID string) ([]models.JobApplication, error) {
	var applications []models.JobApplication
	err := s.DB.Where("external_user_id = ?", externalUserID).
		Preload("Job").
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

// ListApplicationsForAdmin returns applications across the admin's postings.
func (s *JobService) ListApplicationsForAdmin(adminID string) ([]models.JobApplication, error) {
	var applications []models.JobApplication
	err := s.DB.
		Joins("JOIN job_postings ON job_postings.id = job_applications.job_id").
		Where("job_postings.admin_id = ?", adminID).
		Preload("Job").
		Order("job_applications.created_at DESC").
		Find(&applications).Error
	return applications, err
}

// UpdateApplicationStatus moves an application through review and notifies
// the applicant.
func (s *JobService) UpdateApplicationStatus(applicationID string, status models.ApplicationStatus, adminNotes string) (*models.JobApplication, error) {
	var application models.JobApplication
	err := s.DB.Preload("Job").Where("id = ?", applicationID).First(&application).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}

	application.Status = status
	if adminNotes != "" {
		application.AdminNotes = adminNotes
	}
	if err := s.DB.Save(&application).Error; err != nil {
		return nil, err
	}

	jobTitle := "the position"
	if application.Job != nil {
		jobTitle = application.Job.Title
	}
	_, _ = s.Notifier.Create(application.ExternalUserID, models.NotificationApplicationUpdate,
		"Application Update",
		fmt.Sprintf("Your application for %s is now %s.", jobTitle, status),
		"/applications")

	return &application, nil
}

// SaveJob bookmarks a posting (idempotent) and awards the saved-job XP once.
func (s *JobService) SaveJob(externalUserID, jobID string) (*models.RewardResult, error) {
	job, err := s.GetPosting(jobID)
	if err != nil {
		return nil, err
	}

	var existing int64
	s.DB.Model(&models.SavedJob{}).
		Where("external_user_id = ? AND job_id = ?", externalUserID, job.ID).
		Count(&existing)
	if existing > 0 {
		return nil, nil
	}

	saved := models.SavedJob{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		JobID:          job.ID,
	}
	if err := s.DB.Create(&saved).Error; err != nil {
		return nil, err
	}

	reward, err := s.Engine.ApplyEvent(externalUserID, models.Event{
		Kind:       models.ActionSavedJob,
		OccurredAt: time.Now().UTC(),
		Reason:     "Saved a job: " + job.Title,
	})
	if err != nil {
		return nil, nil
	}
	return reward, nil
}

func (s *JobService) UnsaveJob(externalUserID, jobID string) error {
	return s.DB.Where("external_user_id = ? AND job_id = ?", externalUserID, jobID).
		Delete(&models.SavedJob{}).Error
}

func (s *JobService) SavedJobs(externalUserID string) ([]models.SavedJob, error) {
	var saved []models.SavedJob
	err := s.DB.Where("external_user_id = ?", externalUserID).
		Preload("Job").
		Order("saved_at DESC").
		Find(&saved).Error
	return saved, err
}

// ExpirePastDeadline marks active postings past their deadline as expired.
// Called by the scheduler.
func (s *JobService) ExpirePastDeadline(now time.Time) (int64, error) {
	res := s.DB.Model(&models.JobPosting{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline <= ?", models.JobStatusActive, now).
		Update("status", models.JobStatusExpired)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("🗂 Expired %d job postings past deadline", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
