package pkg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
)

// EntityNotFoundError records an error indicating an entity was not found in any case that caused it.
// You can use it to representing a Database not found, cache not found or any other repository.
type EntityNotFoundError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

// Error implements the error interface.
func (e EntityNotFoundError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		if strings.TrimSpace(e.EntityType) != "" {
			return fmt.Sprintf("Entity %s not found", e.EntityType)
		}

		if e.Err != nil {
			return e.Err.Error()
		}

		return "entity not found"
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e EntityNotFoundError) Unwrap() error {
	return e.Err
}

// ValidationError records an error indicating a request carried values the
// business rules reject.
type ValidationError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string
	Message    string
	Code       string
	Err        error `json:"err,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if strings.TrimSpace(e.Code) != "" {
		return fmt.Sprintf("%s - %s", e.Code, e.Message)
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e ValidationError) Unwrap() error {
	return e.Err
}

// UnprocessableOperationError indicates an operation that couldn't be performed because
// the environment cannot currently serve it, even though the request itself is valid.
type UnprocessableOperationError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

func (e UnprocessableOperationError) Error() string {
	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e UnprocessableOperationError) Unwrap() error {
	return e.Err
}

// InternalServerError indicates an unexpected failure inside the service.
type InternalServerError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e InternalServerError) Error() string {
	return e.Message
}

// ResponseError is a struct used to return errors to the client.
type ResponseError struct {
	Code    int    `json:"code,omitempty"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

// Error returns the message of the ResponseError.
func (r ResponseError) Error() string {
	return r.Message
}

// ValidationKnownFieldsError records an error that occurred during a validation of known fields.
type ValidationKnownFieldsError struct {
	EntityType string           `json:"entityType,omitempty"`
	Title      string           `json:"title,omitempty"`
	Code       string           `json:"code,omitempty"`
	Message    string           `json:"message,omitempty"`
	Fields     FieldValidations `json:"fields,omitempty"`
}

// Error returns the error message for a ValidationKnownFieldsError.
func (r ValidationKnownFieldsError) Error() string {
	return r.Message
}

// FieldValidations is a map of known fields and their validation errors.
type FieldValidations map[string]string

// ValidationUnknownFieldsError records an error raised by fields the contract does not define.
type ValidationUnknownFieldsError struct {
	EntityType string        `json:"entityType,omitempty"`
	Title      string        `json:"title,omitempty"`
	Code       string        `json:"code,omitempty"`
	Message    string        `json:"message,omitempty"`
	Fields     UnknownFields `json:"fields,omitempty"`
}

// Error returns the error message for a ValidationUnknownFieldsError.
func (r ValidationUnknownFieldsError) Error() string {
	return r.Message
}

// UnknownFields is a map of unknown fields and their error messages.
type UnknownFields map[string]any

// ValidateInternalError validates the error and returns an appropriate InternalServerError.
func ValidateInternalError(err error, entityType string) error {
	return InternalServerError{
		EntityType: entityType,
		Code:       constant.ErrInternalServer.Error(),
		Title:      "Internal Server Error",
		Message:    "The server encountered an unexpected error. Please try again later or contact support.",
		Err:        err,
	}
}

// ValidateBadRequestFieldsError validates the error and returns the appropriate bad request
// error code, title, message, and the invalid fields.
func ValidateBadRequestFieldsError(requiredFields, knownInvalidFields map[string]string, entityType string, unknownFields map[string]any) error {
	if len(unknownFields) == 0 && len(knownInvalidFields) == 0 && len(requiredFields) == 0 {
		return errors.New("expected knownInvalidFields, unknownFields and requiredFields to be non-empty")
	}

	if len(unknownFields) > 0 {
		return ValidationUnknownFieldsError{
			EntityType: entityType,
			Code:       constant.ErrUnexpectedFieldsInTheRequest.Error(),
			Title:      "Unexpected Fields in the Request",
			Message:    "The request body contains more fields than expected. Please send only the allowed fields as per the documentation. The unexpected fields are listed in the fields object.",
			Fields:     unknownFields,
		}
	}

	if len(requiredFields) > 0 {
		return ValidationKnownFieldsError{
			EntityType: entityType,
			Code:       constant.ErrMissingFieldsInRequest.Error(),
			Title:      "Missing Fields in Request",
			Message:    "Your request is missing one or more required fields. Please refer to the documentation to ensure all necessary fields are included in your request.",
			Fields:     requiredFields,
		}
	}

	return ValidationKnownFieldsError{
		EntityType: entityType,
		Code:       constant.ErrBadRequest.Error(),
		Title:      "Bad Request",
		Message:    "The server could not understand the request due to malformed syntax. Please check the listed fields and try again.",
		Fields:     knownInvalidFields,
	}
}

// ValidateBusinessError validates the error and returns the appropriate business error code, title, and message.
func ValidateBusinessError(err error, entityType string, args ...any) error {
	errorMap := map[error]error{
		constant.ErrEntityNotFound: EntityNotFoundError{
			EntityType: entityType,
			Code:       constant.ErrEntityNotFound.Error(),
			Title:      "Entity Not Found",
			Message:    "No entity was found for the given ID. Please make sure to use the correct ID for the entity you are trying to manage.",
		},
		constant.ErrInvalidReportType: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidReportType.Error(),
			Title:      "Invalid Report Type",
			Message:    fmt.Sprintf("The report type '%v' is not supported. Valid types are patient, appointment, financial, staff, inventory and feedback.", args),
		},
		constant.ErrInvalidDisplayMode: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidDisplayMode.Error(),
			Title:      "Invalid Display Mode",
			Message:    fmt.Sprintf("The display mode '%v' is not supported. Valid modes are list and details.", args),
		},
		constant.ErrInvalidOutputFormat: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidOutputFormat.Error(),
			Title:      "Invalid Output Format",
			Message:    fmt.Sprintf("The output format '%v' is not supported. Valid formats are pdf, excel and csv.", args),
		},
		constant.ErrInvalidDateFormat: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidDateFormat.Error(),
			Title:      "Invalid Date Format Error",
			Message:    "The 'date' path parameter is in the incorrect format. Please use the 'yyyy-mm-dd' format and try again.",
		},
		constant.ErrRenderSurfaceUnavailable: UnprocessableOperationError{
			EntityType: entityType,
			Code:       constant.ErrRenderSurfaceUnavailable.Error(),
			Title:      "Rendering Surface Unavailable",
			Message:    "The rendering surface could not be opened for this report. The report was not archived. Please try again once the service is healthy.",
		},
		constant.ErrClinicDataUnavailable: UnprocessableOperationError{
			EntityType: entityType,
			Code:       constant.ErrClinicDataUnavailable.Error(),
			Title:      "Clinic Data Unavailable",
			Message:    "The clinic database could not be reached to build the report. Please try again later.",
		},
		constant.ErrReportArchiveUnavailable: UnprocessableOperationError{
			EntityType: entityType,
			Code:       constant.ErrReportArchiveUnavailable.Error(),
			Title:      "Report Archive Unavailable",
			Message:    "The report archive could not be reached. Please try again later.",
		},
		constant.ErrMessageBrokerUnavailable: UnprocessableOperationError{
			EntityType: entityType,
			Code:       constant.ErrMessageBrokerUnavailable.Error(),
			Title:      "Message Broker Unavailable",
			Message:    "The message broker could not be reached. Please try again later.",
		},
		constant.ErrArtifactStorageUnavailable: UnprocessableOperationError{
			EntityType: entityType,
			Code:       constant.ErrArtifactStorageUnavailable.Error(),
			Title:      "Artifact Storage Unavailable",
			Message:    "The report artifact could not be stored. The report was not archived. Please try again later.",
		},
	}

	if mappedError, found := errorMap[err]; found {
		return mappedError
	}

	return err
}
