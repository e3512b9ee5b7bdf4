package errorx

import (
	"errors"
	"testing"

	validation "github.com/ARUMANDESU/validation"
)

func AssertValidationErrors(t *testing.T, err error, expected error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %v, got nil", expected)
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected error to be of type validation.Errors, got %T: %v", err, err)
	}

	var expectedVerrs validation.Errors
	if !errors.As(expected, &expectedVerrs) {
		t.Fatalf("expected expected error to be of type validation.Errors, got %T: %v", expected, expected)
	}

	if verrs == nil || expectedVerrs == nil {
		t.Fatalf("expected non-nil validation errors, got %v and %v", verrs, expectedVerrs)
	}

	if len(verrs) != len(expectedVerrs) {
		t.Fatalf("expected number of validation errors to match, got %v and %v", verrs, expectedVerrs)
	}

	for field, expectedErr := range expectedVerrs {
		if actualErr, found := verrs[field]; !found {
			t.Errorf("field %s: expected error %v, got %v", field, expectedErr, actualErr)
		} else {
			AssertValidationError(t, actualErr, expectedErr)
		}
	}
}

func AssertValidationError(t *testing.T, err error, expected error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %v, got nil", expected)
	}

	var verrs validation.Error
	if !errors.As(err, &verrs) {
		t.Fatalf("expected error to be of type validation.Error, got %T: %v", err, err)
	}
	var expectedVerrs validation.Error
	if !errors.As(expected, &expectedVerrs) {
		t.Fatalf("expected expected error to be of type validation.Error, got %T: %v", expected, expected)
	}
	if verrs == nil || expectedVerrs == nil {
		t.Fatalf("expected non-nil validation error, got %v and %v", verrs, expectedVerrs)
	}

	if verrs.Code() != expectedVerrs.Code() || verrs.Message() != expectedVerrs.Message() {
		t.Errorf("expected validation error to match, got %v and %v", verrs, expectedVerrs)
	}
}
