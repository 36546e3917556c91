package validator

import (
	"log"

	"technest_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules wires the domain validation tags into the validator
// instance. Registration failures abort startup.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-member-role': individual or company
	mustRegister("is-member-role", validateMemberRole)

	// 'is-notification-type': news, quiz or job_match
	mustRegister("is-notification-type", validateNotificationType)
}

func validateMemberRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is handled by 'required'
	}

	switch models.Role(value) {
	case models.RoleIndividual, models.RoleCompany:
		return true
	default:
		return false
	}
}

func validateNotificationType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	switch value {
	case models.NotificationTypeNews, models.NotificationTypeQuiz, models.NotificationTypeJobMatch:
		return true
	default:
		return false
	}
}
