package dto

// ApplyRequest тело отклика. Приходит либо JSON, либо multipart-форма
// с опциональным файлом резюме (файл хендлер достает отдельно).
type ApplyRequest struct {
	CoverLetter      string            `json:"cover_letter" form:"cover_letter" binding:"required,max=5000"`
	ScreeningAnswers map[string]string `json:"screening_answers" form:"-"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,is-application-status"`
}

type ApplicationNotesRequest struct {
	Notes string `json:"notes" binding:"max=5000"`
}
