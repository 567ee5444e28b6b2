package services

import (
	"munext_backend/internal/models"
	"munext_backend/internal/repositories"
	"munext_backend/internal/services/dto"
	"munext_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type NotificationService interface {
	List(db *gorm.DB, userID string, criteria repositories.NotificationCriteria) (*dto.PaginatedResponse, error)
	UnreadCount(db *gorm.DB, userID string) (int64, error)
	MarkAsRead(db *gorm.DB, userID, notificationID string) (*models.Notification, error)
	MarkAllAsRead(db *gorm.DB, userID string) error
	Delete(db *gorm.DB, userID, notificationID string) error
	DeleteAll(db *gorm.DB, userID string) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) List(db *gorm.DB, userID string, criteria repositories.NotificationCriteria) (*dto.PaginatedResponse, error) {
	notifications, total, err := s.notificationRepo.FindUserNotifications(db, userID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(notifications, total, criteria.Page, criteria.PageSize), nil
}

func (s *NotificationServiceImpl) UnreadCount(db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.GetUnreadCount(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *NotificationServiceImpl) MarkAsRead(db *gorm.DB, userID, notificationID string) (*models.Notification, error) {
	if err := s.notificationRepo.MarkAsRead(db, userID, notificationID); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	notification, err := s.notificationRepo.FindByID(db, notificationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return notification, nil
}

func (s *NotificationServiceImpl) MarkAllAsRead(db *gorm.DB, userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) Delete(db *gorm.DB, userID, notificationID string) error {
	if err := s.notificationRepo.Delete(db, userID, notificationID); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) DeleteAll(db *gorm.DB, userID string) error {
	if err := s.notificationRepo.DeleteAll(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
