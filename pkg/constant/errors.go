package constant

import "errors"

var (
	ErrInternalServer               = errors.New("RPT-0001")
	ErrBadRequest                   = errors.New("RPT-0002")
	ErrMissingFieldsInRequest       = errors.New("RPT-0003")
	ErrUnexpectedFieldsInTheRequest = errors.New("RPT-0004")
	ErrEntityNotFound               = errors.New("RPT-0005")
	ErrInvalidReportType            = errors.New("RPT-0006")
	ErrInvalidDisplayMode           = errors.New("RPT-0007")
	ErrInvalidOutputFormat          = errors.New("RPT-0008")
	ErrInvalidDateFormat            = errors.New("RPT-0009")
	ErrRenderSurfaceUnavailable     = errors.New("RPT-0010")
	ErrClinicDataUnavailable        = errors.New("RPT-0011")
	ErrReportArchiveUnavailable     = errors.New("RPT-0012")
	ErrMessageBrokerUnavailable     = errors.New("RPT-0013")
	ErrArtifactStorageUnavailable   = errors.New("RPT-0014")
)
