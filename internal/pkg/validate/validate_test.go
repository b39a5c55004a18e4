//go:build unit

package validate_test

import (
	"testing"

	"class-booking/internal/pkg/errs"
	"class-booking/internal/pkg/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title    string `validate:"required,max=10"`
	Capacity int    `validate:"gte=1"`
	Status   string `validate:"booking_status"`
	Type     string `validate:"event_type"`
}

func TestStruct(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		err := validate.Struct(sample{Title: "Yoga", Capacity: 1, Status: "confirmed", Type: "booking.confirmed"})
		assert.NoError(t, err)
	})

	t.Run("every failing field is reported", func(t *testing.T) {
		err := validate.Struct(sample{Capacity: 0, Status: "pending", Type: "class.created"})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)

		var fieldErrs validate.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field)
		}
		assert.ElementsMatch(t, []string{"Title", "Capacity", "Status", "Type"}, fields)
	})

	t.Run("messages are readable", func(t *testing.T) {
		err := validate.Struct(sample{Title: "Yoga", Capacity: 1, Status: "maybe", Type: "booking.x"})

		var fieldErrs validate.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		require.Len(t, fieldErrs, 1)
		assert.Equal(t, "Status must be confirmed or cancelled", fieldErrs[0].Message)
	})
}
