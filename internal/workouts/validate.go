package workouts

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("daylabel", func(fl validator.FieldLevel) bool {
			return DayLabel(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// Validate checks the workout day invariants: a valid day label,
// a non blank title, 1..7 exercises each with an id and a non blank name
func Validate(w WorkoutDay) error {
	err := validatorInstance().Struct(w)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

// ValidateDraft checks a workout as sent by a client, whose new
// exercises carry no id until Upsert assigns one
func ValidateDraft(w WorkoutDay) error {
	return Validate(withIdentity(w))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "WorkoutDay.")
	switch fe.Tag() {
	case "daylabel":
		return fmt.Sprintf("%s must be one of %d..%d", field, MinDay, MaxDay)
	case "notblank", "required":
		return fmt.Sprintf("%s must not be empty", field)
	case "min", "max":
		return fmt.Sprintf("%s must have between 1 and %d entries", field, MaxExercisesDay)
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
