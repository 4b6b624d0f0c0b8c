package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"gymbook/pkg/logger"
	"gymbook/pkg/model"

	"github.com/go-playground/validator/v10"
)

var hhmmRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

type HoursValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewHoursValidator(log *logger.Logger) *HoursValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("hhmm", validateHHMM); err != nil {
		log.Fatal("Failed to register 'hhmm' validator", "error", err)
	}
	v.RegisterStructValidation(validateDayHours, model.DayHours{})

	log.Debug("Hours validator initialized successfully")

	return &HoursValidator{
		validate: v,
		logger:   log,
	}
}

func validateHHMM(fl validator.FieldLevel) bool {
	return hhmmRegex.MatchString(fl.Field().String())
}

// validateDayHours requires both times on an open day and an opening time
// before the closing time, since the schedule has no overnight support.
func validateDayHours(sl validator.StructLevel) {
	day := sl.Current().Interface().(model.DayHours)
	if day.Closed {
		return
	}
	if day.Open == "" {
		sl.ReportError(day.Open, "open", "Open", "required_open", "")
	}
	if day.Close == "" {
		sl.ReportError(day.Close, "close", "Close", "required_open", "")
	}
	if hhmmRegex.MatchString(day.Open) && hhmmRegex.MatchString(day.Close) && day.Open >= day.Close {
		sl.ReportError(day.Close, "close", "Close", "after_open", "")
	}
}

func (v *HoursValidator) Validate(hours *model.OperatingHours) error {
	if err := v.validate.Struct(hours); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *HoursValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		// Namespace is "OperatingHours.monday.open"; drop the type name.
		field := err.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}

		message := err.Error()
		switch err.Tag() {
		case "hhmm":
			message = fmt.Sprintf("%s must be a 24-hour time in HH:MM format", field)
		case "required_open":
			message = fmt.Sprintf("%s is required unless the day is closed", field)
		case "after_open":
			message = fmt.Sprintf("%s must be later than the opening time", field)
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   field,
			Message: message,
		})
	}

	return validationErrors
}
