package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"class-booking/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	messages := make([]string, 0, len(e))
	for _, fe := range e {
		messages = append(messages, fe.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(e), strings.Join(messages, "; "))
}

// Is lets callers match record validation failures with errs.ErrDomainValidation.
func (e FieldErrors) Is(target error) bool {
	return target == errs.ErrDomainValidation
}

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		if err := v.RegisterValidation("booking_status", bookingStatus); err != nil {
			panic("failed to register booking_status validator: " + err.Error())
		}
		if err := v.RegisterValidation("event_type", eventType); err != nil {
			panic("failed to register event_type validator: " + err.Error())
		}
		instance = v
	})
	return instance
}

func bookingStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "confirmed", "cancelled":
		return true
	default:
		return false
	}
}

func eventType(fl validator.FieldLevel) bool {
	return strings.HasPrefix(fl.Field().String(), "booking.")
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	if err := get().Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}
	return nil
}

func translate(ves validator.ValidationErrors) FieldErrors {
	out := make(FieldErrors, 0, len(ves))
	for _, ve := range ves {
		message := ve.Error()
		switch ve.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", ve.Field())
		case "min", "gte":
			message = fmt.Sprintf("%s must be at least %s", ve.Field(), ve.Param())
		case "max", "lte":
			message = fmt.Sprintf("%s must be at most %s", ve.Field(), ve.Param())
		case "booking_status":
			message = fmt.Sprintf("%s must be confirmed or cancelled", ve.Field())
		case "event_type":
			message = fmt.Sprintf("%s must be a booking event type", ve.Field())
		}
		out = append(out, FieldError{Field: ve.Field(), Message: message})
	}
	return out
}
