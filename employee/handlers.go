package employee

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	"employee-directory-backend/common"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// InternalErrorMessage is the only failure detail ever sent to clients.
const InternalErrorMessage = "Internal Server Error"

// Handlers serves the employee routes of the Lambda function URL.
type Handlers struct {
	store  Store
	logger *zap.Logger
}

// NewHandlers creates the Lambda handlers over store.
func NewHandlers(store Store, logger *zap.Logger) *Handlers {
	return &Handlers{store: store, logger: logger}
}

// GetEmployees handles GET /api/employees?filterText=...
func (h *Handlers) GetEmployees(ctx context.Context, request events.LambdaFunctionURLRequest, _ map[string]string) (events.LambdaFunctionURLResponse, error) {
	filterText := request.QueryStringParameters["filterText"]
	h.logger.Info("Getting employees", zap.String("filterText", filterText))

	employees, err := h.store.List(ctx, filterText)
	if err != nil {
		h.logger.Error("Failed to list employees", zap.String("filterText", filterText), zap.Error(err))
		return common.CreateErrorResponse(http.StatusInternalServerError, InternalErrorMessage)
	}

	return common.CreateJSONResponse(http.StatusOK, employees)
}

// GetEmployee handles GET /api/employees/{id}.
func (h *Handlers) GetEmployee(ctx context.Context, _ events.LambdaFunctionURLRequest, params map[string]string) (events.LambdaFunctionURLResponse, error) {
	id := params["id"]

	employee, found, err := h.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDecode) {
			h.logger.Error("Stored employee is malformed", zap.String("id", id), zap.Error(err))
		} else {
			h.logger.Error("Failed to get employee", zap.String("id", id), zap.Error(err))
		}
		return common.CreateErrorResponse(http.StatusInternalServerError, InternalErrorMessage)
	}
	if !found {
		h.logger.Info("Employee not found", zap.String("id", id))
		return common.CreateEmptyResponse(http.StatusNotFound)
	}

	return common.CreateJSONResponse(http.StatusOK, employee)
}

// PostRegistration handles POST /api/employee/registration. A missing id is
// derived from the name and age.
func (h *Handlers) PostRegistration(ctx context.Context, request events.LambdaFunctionURLRequest, _ map[string]string) (events.LambdaFunctionURLResponse, error) {
	body := []byte(request.Body)
	if request.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(request.Body)
		if err != nil {
			h.logger.Warn("Failed to decode base64 request body", zap.Error(err))
			return common.CreateErrorResponse(http.StatusBadRequest, "Invalid request body")
		}
		body = decoded
	}

	req, err := ParseRegistration(body)
	if err != nil {
		h.logger.Info("Rejected registration", zap.Error(err))
		return common.CreateErrorResponse(http.StatusBadRequest, err.Error())
	}

	id := req.ID
	if id == "" {
		id = req.DerivedID()
	}
	employee := req.Employee(id)

	if err := h.store.Put(ctx, id, employee); err != nil {
		h.logger.Error("Failed to store employee", zap.String("id", id), zap.Error(err))
		return common.CreateErrorResponse(http.StatusInternalServerError, InternalErrorMessage)
	}

	h.logger.Info("Registered employee", zap.String("id", id))
	return common.CreateJSONResponse(http.StatusCreated, RegistrationResponse{
		Message:  RegisteredMessage,
		Employee: employee,
	})
}
