package checkout

import (
	"errors"
	"slices"
	"testing"
)

func validAddress() Address {
	return Address{
		Email:    "asha@example.com",
		FullName: "Asha Rao",
		Phone:    "9876543210",
		Street:   "12 MG Road",
		Line2:    "Flat 4B",
		City:     "Pune",
		State:    "MH",
		Zip:      "411001",
	}
}

func TestValidate_AcceptsCompleteAddress(t *testing.T) {
	if err := validAddress().Validate(); err != nil {
		t.Fatalf("expected valid address, got %v", err)
	}
}

func TestValidate_ReportsMissingFields(t *testing.T) {
	a := validAddress()
	a.City = "   "
	a.FullName = ""

	err := a.Validate()
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	var mf *MissingFieldsError
	if !errors.As(err, &mf) {
		t.Fatalf("expected *MissingFieldsError, got %T", err)
	}
	if !slices.Contains(mf.Fields, "city") || !slices.Contains(mf.Fields, "fullName") {
		t.Fatalf("expected city and fullName in %v", mf.Fields)
	}
	if len(mf.Fields) != 2 {
		t.Fatalf("expected 2 missing fields, got %v", mf.Fields)
	}
}

func TestValidate_OptionalFieldsMayBeBlank(t *testing.T) {
	a := Address{FullName: "Asha", Street: "12 MG Road", City: "Pune", State: "MH"}
	if err := a.Validate(); err != nil {
		t.Fatalf("expected valid address, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	got := validAddress().Format()
	want := "Asha Rao\n12 MG Road\nFlat 4B\nPune, MH 411001\nPhone: 9876543210"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormat_DropsBlankLines(t *testing.T) {
	a := Address{FullName: " Asha ", Street: "12 MG Road", City: "Pune", State: "MH"}
	got := a.Format()
	want := "Asha\n12 MG Road\nPune, MH"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
