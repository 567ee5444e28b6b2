package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"munext_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	FindByID(db *gorm.DB, id string) (*models.Notification, error)
	FindUserNotifications(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	GetUnreadCount(db *gorm.DB, userID string) (int64, error)
	MarkAsRead(db *gorm.DB, userID, notificationID string) error
	MarkAllAsRead(db *gorm.DB, userID string) error
	Delete(db *gorm.DB, userID, notificationID string) error
	DeleteAll(db *gorm.DB, userID string) error

	// Factory methods for domain events
	CreateNewApplicationNotification(db *gorm.DB, employerID, jobID, applicationID, studentName, jobTitle string) error
	CreateApplicationStatusNotification(db *gorm.DB, studentID, jobID, applicationID, jobTitle string, status models.ApplicationStatus) error
	CreateAccountVerifiedNotification(db *gorm.DB, userID string) error
}

type NotificationRepositoryImpl struct{}

// NotificationCriteria фильтры списка уведомлений
type NotificationCriteria struct {
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Notification, error) {
	var notification models.Notification
	err := db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindUserNotifications(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	query := db.Model(&models.Notification{}).Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(criteria.Page, criteria.PageSize)

	var notifications []models.Notification
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *NotificationRepositoryImpl) GetUnreadCount(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead помечает уведомление прочитанным. Фильтр по user_id
// не дает пометить чужое уведомление.
func (r *NotificationRepositoryImpl) MarkAsRead(db *gorm.DB, userID, notificationID string) error {
	now := time.Now()
	result := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(db *gorm.DB, userID string) error {
	now := time.Now()
	return db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		}).Error
}

func (r *NotificationRepositoryImpl) Delete(db *gorm.DB, userID, notificationID string) error {
	result := db.Delete(&models.Notification{}, "id = ? AND user_id = ?", notificationID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) DeleteAll(db *gorm.DB, userID string) error {
	return db.Delete(&models.Notification{}, "user_id = ?", userID).Error
}

// --- Factory methods ---
// Уведомления создаются только доменными событиями и пишутся в той же
// транзакции, что и породившая их запись.

func (r *NotificationRepositoryImpl) CreateNewApplicationNotification(db *gorm.DB, employerID, jobID, applicationID, studentName, jobTitle string) error {
	data, err := json.Marshal(map[string]string{
		"job_id":         jobID,
		"application_id": applicationID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification data: %w", err)
	}

	return r.Create(db, &models.Notification{
		UserID:  employerID,
		Type:    models.NotificationTypeNewApplication,
		Title:   "New Application Received",
		Message: fmt.Sprintf("%s has applied for %s", studentName, jobTitle),
		Data:    datatypes.JSON(data),
	})
}

func (r *NotificationRepositoryImpl) CreateApplicationStatusNotification(db *gorm.DB, studentID, jobID, applicationID, jobTitle string, status models.ApplicationStatus) error {
	data, err := json.Marshal(map[string]string{
		"job_id":         jobID,
		"application_id": applicationID,
		"status":         string(status),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification data: %w", err)
	}

	return r.Create(db, &models.Notification{
		UserID:  studentID,
		Type:    models.NotificationTypeApplicationStatus,
		Title:   "Application Status Update",
		Message: fmt.Sprintf("%s for %s", models.ApplicantStatusMessage(status), jobTitle),
		Data:    datatypes.JSON(data),
	})
}

func (r *NotificationRepositoryImpl) CreateAccountVerifiedNotification(db *gorm.DB, userID string) error {
	return r.Create(db, &models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeAccountVerified,
		Title:   "Account Verified",
		Message: "Your account has been verified by an administrator.",
	})
}
