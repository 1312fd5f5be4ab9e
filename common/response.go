package common

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

// MessageResponse is the JSON body used for error and status messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateErrorResponse builds a JSON {"message": ...} response with the given status.
func CreateErrorResponse(statusCode int, message string) (events.LambdaFunctionURLResponse, error) {
	return CreateJSONResponse(statusCode, MessageResponse{Message: message})
}

// CreateJSONResponse marshals payload as the response body.
func CreateJSONResponse(statusCode int, payload any) (events.LambdaFunctionURLResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		// This should not happen, but if it does, log it and return a generic error
		zap.L().Error("Failed to marshal response", zap.Error(err))
		return events.LambdaFunctionURLResponse{
			StatusCode: 500,
			Headers:    jsonHeaders,
			Body:       `{"message":"Internal Server Error"}`,
		}, nil
	}

	return events.LambdaFunctionURLResponse{
		StatusCode: statusCode,
		Headers:    jsonHeaders,
		Body:       string(body),
	}, nil
}

// CreateEmptyResponse returns a response that carries only a status code.
func CreateEmptyResponse(statusCode int) (events.LambdaFunctionURLResponse, error) {
	return events.LambdaFunctionURLResponse{StatusCode: statusCode}, nil
}
