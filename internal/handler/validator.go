package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/FishBot_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("platform", validatePlatform)
	_ = v.RegisterValidation("itemtype", validateItemType)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError turns validator errors into a field -> message map
// keyed by the lower-cased field name
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "platform":
			errs[field] = "Invalid platform"
		case "itemtype":
			errs[field] = "Invalid item type"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "oneof":
			errs[field] = fmt.Sprintf("Must be one of: %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validatePlatform(fl validator.FieldLevel) bool {
	platform := fl.Field().String()
	if platform == "" {
		return true
	}
	return domain.ValidPlatforms[strings.ToLower(platform)]
}

func validateItemType(fl validator.FieldLevel) bool {
	switch domain.ItemType(fl.Field().String()) {
	case "", domain.ItemTypeRod, domain.ItemTypeAccessory, domain.ItemTypeBait, domain.ItemTypeFish:
		return true
	}
	return false
}
