package checkout

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMissingFields matches any *MissingFieldsError.
var ErrMissingFields = errors.New("please fill in all required fields (Name, Address, City, State)")

// MissingFieldsError lists the required address fields left blank, by JSON name.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrMissingFields.Error(), strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingFields
}

// Address is the shipping form submitted on the address step.
type Address struct {
	Email    string `json:"email"`
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone"`
	Street   string `json:"address" validate:"required"`
	Line2    string `json:"apartment"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	Zip      string `json:"zip"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (a Address) Trimmed() Address {
	return Address{
		Email:    strings.TrimSpace(a.Email),
		FullName: strings.TrimSpace(a.FullName),
		Phone:    strings.TrimSpace(a.Phone),
		Street:   strings.TrimSpace(a.Street),
		Line2:    strings.TrimSpace(a.Line2),
		City:     strings.TrimSpace(a.City),
		State:    strings.TrimSpace(a.State),
		Zip:      strings.TrimSpace(a.Zip),
	}
}

// Validate checks the required fields of the trimmed address.
func (a Address) Validate() error {
	err := validate.Struct(a.Trimmed())
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return &MissingFieldsError{Fields: missing}
}

// Format joins the address into the multi-line string shown on the payment step.
func (a Address) Format() string {
	a = a.Trimmed()
	lines := []string{
		a.FullName,
		a.Street,
		a.Line2,
		strings.TrimSpace(fmt.Sprintf("%s, %s %s", a.City, a.State, a.Zip)),
	}
	if a.Phone != "" {
		lines = append(lines, "Phone: "+a.Phone)
	}

	kept := lines[:0]
	for _, l := range lines {
		if l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}
