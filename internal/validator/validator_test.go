package validator

import "testing"

func TestValidator(t *testing.T) {
	var v Validator

	v.CheckField(Between(12, 0, 23), "hour", "must be between 0 and 23")
	v.CheckField(Between(0, 0, 59), "second", "must be between 0 and 59")
	if !v.Valid() {
		t.Fatalf("Valid() = false, errors %v", v.FieldErrors)
	}

	v.CheckField(Between(60, 0, 59), "minute", "must be between 0 and 59")
	v.CheckField(Between(-1, 0, 59), "minute", "second message is dropped")
	v.CheckField(Between(24, 0, 23), "hour", "must be between 0 and 23")

	if v.Valid() {
		t.Fatal("Valid() = true after failed checks")
	}

	want := map[string]string{
		"minute": "must be between 0 and 59",
		"hour":   "must be between 0 and 23",
	}
	for key, msg := range want {
		if got := v.FieldErrors[key]; got != msg {
			t.Errorf("FieldErrors[%q] = %q, want %q", key, got, msg)
		}
	}
	if len(v.FieldErrors) != len(want) {
		t.Errorf("FieldErrors = %v, want %d entries", v.FieldErrors, len(want))
	}
}
