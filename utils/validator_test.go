package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"ada@example.com", "a.b+tag@sub.example.co.th"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}

	invalid := []string{"", "not-an-email", "a@b", "a b@example.com"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"+66812345678", "0812345678", "081-234-5678", "(081) 234 5678"}
	for _, phone := range valid {
		if !ValidatePhone(phone) {
			t.Errorf("expected %q to be valid", phone)
		}
	}

	invalid := []string{"", "12345", "phone", "+1234567890123456"}
	for _, phone := range invalid {
		if ValidatePhone(phone) {
			t.Errorf("expected %q to be invalid", phone)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  <b>Ada</b>  "); got == "" || got[0] == ' ' {
		t.Errorf("expected trimmed sanitized value, got %q", got)
	}
}
