package validator

import (
	"log"

	"munext_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Если правило не удалось зарегистрировать, приложение
			// не должно запускаться.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-job-type", validateJobType)
	mustRegister("is-job-status", validateJobStatus)
	mustRegister("is-experience-level", validateExperienceLevel)
	mustRegister("is-application-status", validateApplicationStatus)
	mustRegister("is-question-type", validateQuestionType)
}

// --- Функции валидации ---

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Не проверяем пустые значения, для этого есть 'required'
	}
	switch models.UserRole(value) {
	case models.UserRoleStudent, models.UserRoleAlumni, models.UserRoleEmployer, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateJobType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	switch models.JobType(value) {
	case models.JobTypeFullTime, models.JobTypePartTime, models.JobTypeContract, models.JobTypeInternship, models.JobTypeCoop:
		return true
	default:
		return false
	}
}

func validateJobStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.IsValidJobStatus(models.JobStatus(value))
}

func validateExperienceLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ExperienceLevel(value) {
	case models.ExperienceLevelEntry, models.ExperienceLevelIntermediate, models.ExperienceLevelSenior, models.ExperienceLevelExecutive:
		return true
	default:
		return false
	}
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.IsValidApplicationStatus(models.ApplicationStatus(value))
}

func validateQuestionType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.QuestionType(value) {
	case models.QuestionTypeText, models.QuestionTypeMultipleChoice, models.QuestionTypeYesNo:
		return true
	default:
		return false
	}
}
