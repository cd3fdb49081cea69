package validate_test

import (
	"testing"

	"bookcourier/internal/validate"
)

func TestID(t *testing.T) {
	for _, ok := range []string{"bk-kafka", "b1", "550e8400-e29b-41d4-a716-446655440000"} {
		if _, valid := validate.ID(ok); !valid {
			t.Errorf("ID(%q) should be valid", ok)
		}
	}
	for _, bad := range []string{"", "  ", "a/b", "x'; DROP TABLE books;--"} {
		if _, valid := validate.ID(bad); valid {
			t.Errorf("ID(%q) should be invalid", bad)
		}
	}
}

func TestEmail(t *testing.T) {
	if _, ok := validate.Email(" c@x.com "); !ok {
		t.Error("trimmed email should be valid")
	}
	for _, bad := range []string{"", "plain", "a@b", "@x.com"} {
		if _, ok := validate.Email(bad); ok {
			t.Errorf("Email(%q) should be invalid", bad)
		}
	}
}

func TestRating(t *testing.T) {
	for _, n := range []int{1, 3, 5} {
		if !validate.Rating(n) {
			t.Errorf("Rating(%d) should be valid", n)
		}
	}
	for _, n := range []int{0, -1, 6, 100} {
		if validate.Rating(n) {
			t.Errorf("Rating(%d) should be invalid", n)
		}
	}
}
