package checkout_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gidiparts.ng/gidiparts-web/internal/apperrors"
	"gidiparts.ng/gidiparts-web/internal/checkout"
)

func validShipping() checkout.ShippingDetails {
	return checkout.ShippingDetails{
		Recipient: "Ada Obi",
		Phone:     "+2348012345678",
		Email:     "ada@example.ng",
		Address:   "14 Adeola Odeku Street",
		City:      "Lagos",
		State:     "Lagos",
	}
}

func TestValidateShippingAccepts(t *testing.T) {
	t.Parallel()
	require.NoError(t, checkout.ValidateShipping(validShipping()))
}

func TestValidateShippingReportsFields(t *testing.T) {
	t.Parallel()

	details := validShipping()
	details.Email = "not-an-email"
	details.City = ""

	err := checkout.ValidateShipping(details)
	require.Error(t, err)

	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, apperrors.CodeValidation, appErr.Code())

	fields, ok := appErr.Details().(map[string]string)
	require.True(t, ok)
	require.Contains(t, fields, "email")
	require.Contains(t, fields, "city")
}

func TestValidateCoupon(t *testing.T) {
	t.Parallel()

	code, bps, err := checkout.ValidateCoupon(" parts10 ")
	require.NoError(t, err)
	require.Equal(t, "PARTS10", code)
	require.Equal(t, int64(1000), bps)

	code, bps, err = checkout.ValidateCoupon("")
	require.NoError(t, err)
	require.Empty(t, code)
	require.Zero(t, bps)

	_, _, err = checkout.ValidateCoupon("no spaces!")
	require.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	_, _, err = checkout.ValidateCoupon("NOSUCH1")
	require.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}
