package api

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"employee-directory-backend/common"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// HandlerFunc defines the function signature for our Lambda handlers.
// params holds the named groups captured from the route's path pattern.
type HandlerFunc func(ctx context.Context, request events.LambdaFunctionURLRequest, params map[string]string) (events.LambdaFunctionURLResponse, error)

// Route defines the structure for a single API route.
type Route struct {
	Method  string
	Path    *regexp.Regexp
	Handler HandlerFunc
}

// Router is a collection of routes that can be served.
type Router struct {
	routes []Route
	logger *zap.Logger
}

// NewRouter creates a new Router instance.
func NewRouter(logger *zap.Logger) *Router {
	return &Router{logger: logger}
}

// AddRoute adds a new route to the router.
func (r *Router) AddRoute(method, path string, handler HandlerFunc) {
	route := Route{
		Method:  method,
		Path:    regexp.MustCompile("^" + path + "$"),
		Handler: handler,
	}
	r.routes = append(r.routes, route)
}

// Serve handles the incoming function URL event by finding the appropriate
// route. Unknown routes get a 400 and handler errors a generic 500.
func (r *Router) Serve(ctx context.Context, request events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	method := request.RequestContext.HTTP.Method
	path := NormalizePath(request.RequestContext.HTTP.Path)
	r.logger.Info("Received request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("requestID", request.RequestContext.RequestID),
	)

	for _, route := range r.routes {
		if route.Method != method {
			continue
		}
		matches := route.Path.FindStringSubmatch(path)
		if len(matches) == 0 {
			continue
		}

		// Extract path parameters
		pathParams := make(map[string]string)
		for i, name := range route.Path.SubexpNames() {
			if i != 0 && name != "" {
				pathParams[name] = matches[i]
			}
		}

		response, err := route.Handler(ctx, request, pathParams)
		if err != nil {
			r.logger.Error("Internal Server Error", zap.String("path", path), zap.Error(err))
			return common.CreateErrorResponse(http.StatusInternalServerError, "Internal Server Error")
		}
		return response, nil
	}

	// No matching route found
	r.logger.Info("Invalid path", zap.String("method", method), zap.String("path", path))
	return common.CreateEmptyResponse(http.StatusBadRequest)
}

// NormalizePath strips a single trailing slash.
func NormalizePath(path string) string {
	return strings.TrimSuffix(path, "/")
}
