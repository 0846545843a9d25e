package format

import (
	"fmt"
	"strings"
	"time"
)

// Money formats an amount in minor units (kobo for NGN, cents for USD).
// Example: Money(1250000, "NGN") => "₦12,500.00".
func Money(minor int64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	switch currency {
	case "", "NGN":
		return sign + "₦" + minorWithDecimals(minor)
	case "USD":
		return sign + "$" + minorWithDecimals(minor)
	default:
		return fmt.Sprintf("%s%s %s", sign, currency, minorWithDecimals(minor))
	}
}

func minorWithDecimals(minor int64) string {
	major := minor / 100
	frac := minor % 100
	return thousandSep(major) + fmt.Sprintf(".%02d", frac)
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	out := ""
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(c)
	}
	return out
}

// Date formats a timestamp in the short display form used across the store.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
