package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/models"
)

type MessageService struct {
	DB *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{DB: db}
}

func (s *MessageService) Create(senderID string, destinationID *string, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("message content must not be empty")
	}

	if destinationID != nil {
		var count int64
		if err := s.DB.Model(&models.User{}).Where("id = ?", *destinationID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("check destination user: %w", err)
		}
		if count == 0 {
			return nil, ErrUserNotFound
		}
	}

	message := models.Message{
		SenderID:      senderID,
		DestinationID: destinationID,
		Content:       content,
	}
	if err := s.DB.Create(&message).Error; err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return &message, nil
}

func (s *MessageService) GetAll() ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.Find(&messages).Error
	return messages, err
}

func (s *MessageService) GetByID(id string) (models.Message, error) {
	var message models.Message
	err := s.DB.First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return message, ErrMessageNotFound
		}
		return message, err
	}
	return message, nil
}

// ForUser lists messages the user sent or received, oldest first.
func (s *MessageService) ForUser(userID string) ([]models.Message, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if count == 0 {
		return nil, ErrUserNotFound
	}

	messages := []models.Message{}
	err := s.DB.
		Where("sender_id = ? OR destination_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (s *MessageService) Delete(id string) error {
	res := s.DB.Delete(&models.Message{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}
