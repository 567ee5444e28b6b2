package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanWithdraw(t *testing.T) {
	assert.True(t, CanWithdraw(&Application{Status: ApplicationStatusPending}))
	assert.False(t, CanWithdraw(&Application{Status: ApplicationStatusReviewed}))
	assert.False(t, CanWithdraw(&Application{Status: ApplicationStatusShortlisted}))
	assert.False(t, CanWithdraw(&Application{Status: ApplicationStatusRejected}))
}

func TestStatusNotifiesApplicant(t *testing.T) {
	assert.True(t, StatusNotifiesApplicant(ApplicationStatusReviewed))
	assert.True(t, StatusNotifiesApplicant(ApplicationStatusShortlisted))
	assert.True(t, StatusNotifiesApplicant(ApplicationStatusRejected))

	// Возврат в pending тихий
	assert.False(t, StatusNotifiesApplicant(ApplicationStatusPending))
}

func TestApplicantStatusMessage(t *testing.T) {
	assert.Equal(t, "Your application has been reviewed", ApplicantStatusMessage(ApplicationStatusReviewed))
	assert.Equal(t, "Congratulations! You have been shortlisted", ApplicantStatusMessage(ApplicationStatusShortlisted))
	assert.Equal(t, "Your application status has been updated", ApplicantStatusMessage(ApplicationStatusRejected))
	assert.Empty(t, ApplicantStatusMessage(ApplicationStatusPending))
}
