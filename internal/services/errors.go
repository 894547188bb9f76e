// Package services provides the business logic layer between handlers and
// the fetch/analytics collaborators.
package services

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Service error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnsupportedMetric  = "UNSUPPORTED_METRIC"
	CodeMetricNotFound     = "METRIC_NOT_FOUND"
	CodeRepositoryNotFound = "REPOSITORY_NOT_FOUND"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeUpstreamFailure    = "UPSTREAM_FAILURE"
)
