package employee

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// idNamespace scopes the name-based UUIDs derived for registrations.
var idNamespace = uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479")

// RegistrationRequest is the body of POST /api/employee/registration.
type RegistrationRequest struct {
	ID         string       `json:"id"`
	Name       string       `json:"name" validate:"required"`
	Age        *FlexibleInt `json:"age" validate:"required,gte=0"`
	Department *string      `json:"department" validate:"required"`
	Position   *string      `json:"position" validate:"required"`
}

// RegistrationResponse is the 201 body of a successful registration.
type RegistrationResponse struct {
	Message  string   `json:"message"`
	Employee Employee `json:"employee"`
}

// RegisteredMessage is the message returned with a stored registration.
const RegisteredMessage = "Employee added successfully"

// FlexibleInt accepts a JSON number or a numeric string and truncates it toward zero.
type FlexibleInt int

func (n *FlexibleInt) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	var s string
	switch v := raw.(type) {
	case json.Number:
		s = v.String()
	case string:
		s = strings.TrimSpace(v)
	default:
		return fmt.Errorf("expected a number, got %s", data)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("%q is not a valid integer", s)
	}
	*n = FlexibleInt(math.Trunc(f))
	return nil
}

// ValidationError is a client error in a request; its message is safe to return.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseRegistration decodes and validates a registration body. Every failure
// is a *ValidationError.
func ParseRegistration(body []byte) (RegistrationRequest, error) {
	var req RegistrationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return RegistrationRequest{}, &ValidationError{Message: "Invalid request body"}
	}

	if err := validate.Struct(req); err != nil {
		return RegistrationRequest{}, &ValidationError{Message: formatValidationError(err)}
	}
	return req, nil
}

// Employee builds the record to store under id.
func (r RegistrationRequest) Employee(id string) Employee {
	return Employee{
		ID:         id,
		Name:       r.Name,
		Age:        int(*r.Age),
		Department: *r.Department,
		Position:   *r.Position,
	}
}

// DerivedID returns the deterministic id for the request's name and age.
func (r RegistrationRequest) DerivedID() string {
	return DeriveID(r.Name, int(*r.Age))
}

// DeriveID returns a version 5 UUID over name followed by the decimal age.
func DeriveID(name string, age int) string {
	return uuid.NewSHA1(idNamespace, []byte(name+strconv.Itoa(age))).String()
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Invalid request body"
	}

	var missing, invalid []string
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			missing = append(missing, e.Field())
		case "gte":
			invalid = append(invalid, fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param()))
		default:
			invalid = append(invalid, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "Missing required fields: "+strings.Join(missing, ", "))
	}
	return strings.Join(append(parts, invalid...), "; ")
}
