package checkout

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"gidiparts.ng/gidiparts-web/internal/apperrors"
)

// ShippingDetails carries the recipient information collected once per
// checkout attempt. Persisted locally only when the user opts in.
type ShippingDetails struct {
	Recipient string `json:"recipient" validate:"required,min=2,max=120"`
	Phone     string `json:"phone" validate:"required,min=7,max=20"`
	Email     string `json:"email" validate:"required,email"`
	Address   string `json:"address" validate:"required,min=5,max=240"`
	City      string `json:"city" validate:"required,min=2,max=80"`
	State     string `json:"state" validate:"required,min=2,max=80"`
	Notes     string `json:"notes,omitempty" validate:"max=500"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateShipping checks required fields client-side; the backend is not
// assumed to duplicate this validation.
func ValidateShipping(details ShippingDetails) error {
	if err := validate.Struct(details); err != nil {
		fields := map[string]string{}
		var verrs validator.ValidationErrors
		if ok := asValidationErrors(err, &verrs); ok {
			for _, fe := range verrs {
				fields[strings.ToLower(fe.Field())] = fe.Tag()
			}
		}
		return apperrors.New(apperrors.CodeValidation, "please complete the required shipping fields").
			WithDetails(fields)
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = verrs
	return true
}

var couponPattern = regexp.MustCompile(`^[A-Z0-9]{4,12}$`)

// couponTable maps known promo codes to a display-only percentage discount in
// basis points. Coupons never change the authoritative amount; the backend
// reprices during checkout-session creation.
var couponTable = map[string]int64{
	"PARTS10":   1000,
	"GIDI5":     500,
	"FREESHIP":  0,
	"WELCOME15": 1500,
}

// ValidateCoupon normalizes and checks a coupon code. A malformed code is a
// validation error; an unknown well-formed code is reported the same way so
// the UI can show an inline message.
func ValidateCoupon(code string) (string, int64, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return "", 0, nil
	}
	if !couponPattern.MatchString(normalized) {
		return "", 0, apperrors.New(apperrors.CodeValidation, "that promo code is not valid")
	}
	discountBps, ok := couponTable[normalized]
	if !ok {
		return "", 0, apperrors.New(apperrors.CodeValidation, "we couldn't find that promo code")
	}
	return normalized, discountBps, nil
}
