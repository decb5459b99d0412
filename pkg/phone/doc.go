// Package phone normalizes user-entered phone numbers into E.164-style
// international form and masks them for log output.
//
// Input is accepted in whatever shape users type it: spaces, dashes,
// parentheses, and dots are stripped before the country code is applied.
// Numbers that already carry a leading "+" keep their own country code.
//
// Usage:
//
//	number, err := phone.Normalize("91", "98765 43210")
//	if err != nil {
//		return err
//	}
//	// number == "+919876543210"
//
//	log.Info("code sent", slog.String("phone", phone.Mask(number)))
//	// logs "********3210"
package phone
