package services

import (
	"errors"
	"mime/multipart"
	"time"

	"career-counselor-service/models"
	"career-counselor-service/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrResumeNotFound = errors.New("resume not found")

type ResumeService struct {
	DB     *gorm.DB
	Engine *GamificationEngine
}

func NewResumeService(db *gorm.DB, engine *GamificationEngine) *ResumeService {
	return &ResumeService{DB: db, Engine: engine}
}

// Create stores a resume document and awards the resume XP.
func (s *ResumeService) Create(externalUserID, title, contentJSON string) (*models.Resume, *models.RewardResult, error) {
	if title == "" {
		title = "Untitled Resume"
	}
	if contentJSON == "" {
		contentJSON = "{}"
	}

	resume := models.Resume{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		Title:          title,
		Content:        contentJSON,
	}
	if err := s.DB.Create(&resume).Error; err != nil {
		return nil, nil, err
	}

	reward, err := s.Engine.ApplyEvent(externalUserID, models.Event{
		Kind:       models.ActionResumeCreated,
		OccurredAt: time.Now().UTC(),
		Reason:     "Created a resume",
	})
	if err != nil {
		reward = nil
	}
	return &resume, reward, nil
}

func (s *ResumeService) List(externalUserID string) ([]models.Resume, error) {
	var resumes []models.Resume
	err := s.DB.Where("external_user_id = ?", externalUserID).
		Order("updated_at DESC").
		Find(&resumes).Error
	return resumes, err
}

func (s *ResumeService) Get(resumeID, externalUserID string) (*models.Resume, error) {
	var resume models.Resume
	err := s.DB.Where("id = ? AND external_user_id = ?", resumeID, externalUserID).First(&resume).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResumeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (s *ResumeService) Update(resumeID, externalUserID, title, contentJSON string) (*models.Resume, error) {
	resume, err := s.Get(resumeID, externalUserID)
	if err != nil {
		return nil, err
	}
	if title != "" {
		resume.Title = title
	}
	if contentJSON != "" {
		resume.Content = contentJSON
	}
	if err := s.DB.Save(resume).Error; err != nil {
		return nil, err
	}
	return resume, nil
}

func (s *ResumeService) Delete(resumeID, externalUserID string) error {
	res := s.DB.Where("id = ? AND external_user_id = ?", resumeID, externalUserID).
		Delete(&models.Resume{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}

// AttachFile uploads an existing resume file (e.g. a PDF the user already
// has) to object storage and links it to the resume record.
func (s *ResumeService) AttachFile(resumeID, externalUserID string, file *multipart.FileHeader) (*models.Resume, error) {
	resume, err := s.Get(resumeID, externalUserID)
	if err != nil {
		return nil, err
	}

	key := "resumes/" + externalUserID + "/" + resumeID + "-" + file.Filename
	url, err := utils.UploadFile(file, key)
	if err != nil {
		return nil, err
	}

	resume.AttachmentURL = url
	if err := s.DB.Save(resume).Error; err != nil {
		return nil, err
	}
	return resume, nil
}
