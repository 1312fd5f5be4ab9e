package employee

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// failingStore returns err from every operation.
type failingStore struct {
	err error
}

func (s failingStore) Get(context.Context, string) (Employee, bool, error) { return Employee{}, false, s.err }
func (s failingStore) List(context.Context, string) ([]Employee, error)    { return nil, s.err }
func (s failingStore) Put(context.Context, string, Employee) error         { return s.err }

func newTestHandlers(t *testing.T, store Store) *Handlers {
	return NewHandlers(store, zaptest.NewLogger(t))
}

func TestGetEmployeesHandler(t *testing.T) {
	handlers := newTestHandlers(t, NewMemoryStore(SeedEmployees()))

	request := events.LambdaFunctionURLRequest{
		QueryStringParameters: map[string]string{"filterText": "smith"},
	}

	response, err := handlers.GetEmployees(context.Background(), request, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)

	var employees []Employee
	require.NoError(t, json.Unmarshal([]byte(response.Body), &employees))
	assert.Equal(t, []Employee{johnSmith}, employees)
}

func TestGetEmployeesHandlerEmptyResultIsArray(t *testing.T) {
	handlers := newTestHandlers(t, NewMemoryStore(nil))

	response, err := handlers.GetEmployees(context.Background(), events.LambdaFunctionURLRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "[]", response.Body)
}

func TestGetEmployeeHandler(t *testing.T) {
	handlers := newTestHandlers(t, NewMemoryStore(SeedEmployees()))

	response, err := handlers.GetEmployee(context.Background(), events.LambdaFunctionURLRequest{}, map[string]string{"id": "3"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)

	var got Employee
	require.NoError(t, json.Unmarshal([]byte(response.Body), &got))
	assert.Equal(t, yamada, got)

	response, err = handlers.GetEmployee(context.Background(), events.LambdaFunctionURLRequest{}, map[string]string{"id": "999"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
	assert.Empty(t, response.Body)
}

func TestHandlersHideStoreFailures(t *testing.T) {
	secret := errors.New("dial tcp 10.0.0.7:443: connection refused")
	handlers := newTestHandlers(t, failingStore{err: secret})
	ctx := context.Background()

	responses := []events.LambdaFunctionURLResponse{}
	response, err := handlers.GetEmployees(ctx, events.LambdaFunctionURLRequest{}, nil)
	require.NoError(t, err)
	responses = append(responses, response)

	response, err = handlers.GetEmployee(ctx, events.LambdaFunctionURLRequest{}, map[string]string{"id": "1"})
	require.NoError(t, err)
	responses = append(responses, response)

	response, err = handlers.PostRegistration(ctx, events.LambdaFunctionURLRequest{
		Body: `{"name":"Alice","age":31,"department":"Eng","position":"SRE"}`,
	}, nil)
	require.NoError(t, err)
	responses = append(responses, response)

	for _, response := range responses {
		assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
		assert.JSONEq(t, `{"message":"Internal Server Error"}`, response.Body)
		assert.NotContains(t, response.Body, "10.0.0.7")
	}
}

func TestGetEmployeeHandlerMalformedRecord(t *testing.T) {
	decodeErr := &DecodeError{ID: "1", Field: "name", Reason: reasonMissing}
	handlers := newTestHandlers(t, failingStore{err: decodeErr})

	response, err := handlers.GetEmployee(context.Background(), events.LambdaFunctionURLRequest{}, map[string]string{"id": "1"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	assert.NotContains(t, response.Body, "name")
}

func TestPostRegistrationHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("supplied id is kept", func(t *testing.T) {
		store := NewMemoryStore(nil)
		handlers := newTestHandlers(t, store)

		response, err := handlers.PostRegistration(ctx, events.LambdaFunctionURLRequest{
			Body: `{"id":"42","name":"Alice","age":"31","department":"Eng","position":"SRE"}`,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, response.StatusCode)

		var body RegistrationResponse
		require.NoError(t, json.Unmarshal([]byte(response.Body), &body))
		want := Employee{ID: "42", Name: "Alice", Age: 31, Department: "Eng", Position: "SRE"}
		assert.Equal(t, RegisteredMessage, body.Message)
		assert.Equal(t, want, body.Employee)

		stored, found, err := store.Get(ctx, "42")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, want, stored)
	})

	t.Run("missing id is derived", func(t *testing.T) {
		store := NewMemoryStore(nil)
		handlers := newTestHandlers(t, store)

		response, err := handlers.PostRegistration(ctx, events.LambdaFunctionURLRequest{
			Body: `{"name":"Alice","age":31,"department":"Eng","position":"SRE"}`,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, response.StatusCode)

		var body RegistrationResponse
		require.NoError(t, json.Unmarshal([]byte(response.Body), &body))
		assert.Equal(t, DeriveID("Alice", 31), body.Employee.ID)
	})

	t.Run("base64 body", func(t *testing.T) {
		handlers := newTestHandlers(t, NewMemoryStore(nil))
		body := base64.StdEncoding.EncodeToString([]byte(`{"id":"5","name":"Bob","age":40,"department":"Ops","position":"Lead"}`))

		response, err := handlers.PostRegistration(ctx, events.LambdaFunctionURLRequest{Body: body, IsBase64Encoded: true}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, response.StatusCode)
	})

	t.Run("missing fields", func(t *testing.T) {
		handlers := newTestHandlers(t, NewMemoryStore(nil))

		response, err := handlers.PostRegistration(ctx, events.LambdaFunctionURLRequest{Body: `{"name":"Alice"}`}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
		assert.JSONEq(t, `{"message":"Missing required fields: age, department, position"}`, response.Body)
	})

	t.Run("malformed body", func(t *testing.T) {
		handlers := newTestHandlers(t, NewMemoryStore(nil))

		response, err := handlers.PostRegistration(ctx, events.LambdaFunctionURLRequest{Body: `not json`}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
		assert.JSONEq(t, `{"message":"Invalid request body"}`, response.Body)
	})
}
