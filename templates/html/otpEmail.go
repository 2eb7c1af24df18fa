package templates

import "fmt"

// RenderOtpCode generates the HTML body for a one-time passcode email
func RenderOtpCode(code string) string {
	body := fmt.Sprintf(
		"Your one-time passcode is:\n\n%s\n\nIt expires in 10 minutes. If you did not request this code, you can ignore this email.",
		code,
	)
	return RenderGenericEmail("Your Login OTP", body)
}
