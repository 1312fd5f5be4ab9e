package employee

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Employee is a single directory entry. It is stored and returned by value.
type Employee struct {
	ID         string `json:"id" dynamodbav:"id"`
	Name       string `json:"name" dynamodbav:"name"`
	Age        int    `json:"age" dynamodbav:"age"`
	Department string `json:"department" dynamodbav:"department"`
	Position   string `json:"position" dynamodbav:"position"`
}

// ErrDecode matches every *DecodeError through errors.Is.
var ErrDecode = errors.New("employee: malformed record")

// DecodeError reports a stored record that does not hold a well-formed Employee.
type DecodeError struct {
	ID     string // empty when the id itself is missing
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("employee record: field %q %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("employee %s: field %q %s", e.ID, e.Field, e.Reason)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

const (
	reasonMissing     = "is missing"
	reasonNotString   = "is not a string"
	reasonNotAgeValue = "is not a non-negative integer"
)

// Decode validates a loosely typed field map. id, name and age are required;
// department and position default to "" when absent or null.
func Decode(fields map[string]any) (Employee, error) {
	var e Employee

	id, err := requiredString(fields, "id", "")
	if err != nil {
		return Employee{}, err
	}
	e.ID = id

	if e.Name, err = requiredString(fields, "name", id); err != nil {
		return Employee{}, err
	}

	rawAge, ok := fields["age"]
	if !ok || rawAge == nil {
		return Employee{}, &DecodeError{ID: id, Field: "age", Reason: reasonMissing}
	}
	if e.Age, ok = toAge(rawAge); !ok {
		return Employee{}, &DecodeError{ID: id, Field: "age", Reason: reasonNotAgeValue}
	}

	if e.Department, err = optionalString(fields, "department", id); err != nil {
		return Employee{}, err
	}
	if e.Position, err = optionalString(fields, "position", id); err != nil {
		return Employee{}, err
	}

	return e, nil
}

// FromItem decodes a DynamoDB item. NULL attributes are treated as absent.
func FromItem(item map[string]types.AttributeValue) (Employee, error) {
	var fields map[string]any
	err := attributevalue.UnmarshalMapWithOptions(item, &fields, func(o *attributevalue.DecoderOptions) {
		o.UseNumber = true
	})
	if err != nil {
		return Employee{}, &DecodeError{ID: itemID(item), Field: "*", Reason: "cannot be unmarshalled: " + err.Error()}
	}
	return Decode(fields)
}

// Item marshals e for a put under the given id.
func (e Employee) Item(id string) (map[string]types.AttributeValue, error) {
	e.ID = id
	return attributevalue.MarshalMap(e)
}

func itemID(item map[string]types.AttributeValue) string {
	if v, ok := item["id"].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func requiredString(fields map[string]any, field, id string) (string, error) {
	raw, ok := fields[field]
	if !ok || raw == nil {
		return "", &DecodeError{ID: id, Field: field, Reason: reasonMissing}
	}
	s, ok := raw.(string)
	if !ok {
		return "", &DecodeError{ID: id, Field: field, Reason: reasonNotString}
	}
	return s, nil
}

func optionalString(fields map[string]any, field, id string) (string, error) {
	raw, ok := fields[field]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", &DecodeError{ID: id, Field: field, Reason: reasonNotString}
	}
	return s, nil
}

func toAge(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, v >= 0
	case int32:
		return int(v), v >= 0
	case int64:
		return int(v), v >= 0
	case float32:
		return floatAge(float64(v))
	case float64:
		return floatAge(v)
	case json.Number:
		return numericStringAge(string(v))
	case attributevalue.Number:
		return numericStringAge(string(v))
	default:
		return 0, false
	}
}

func numericStringAge(s string) (int, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(i), i >= 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return floatAge(f)
}

func floatAge(f float64) (int, bool) {
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
