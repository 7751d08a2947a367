package encoder

import (
	"strings"

	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"
)

// ContentType returns the MIME type for an output format.
func ContentType(outputFormat string) string {
	switch outputFormat {
	case constant.OutputFormatPDF:
		return "application/pdf"
	case constant.OutputFormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case constant.OutputFormatCSV:
		return "text/csv"
	}

	return "application/octet-stream"
}

// Extension returns the file extension for an output format.
func Extension(outputFormat string) string {
	switch outputFormat {
	case constant.OutputFormatPDF:
		return "pdf"
	case constant.OutputFormatExcel:
		return "xlsx"
	case constant.OutputFormatCSV:
		return "csv"
	}

	return "bin"
}

// ArtifactName builds the stored object name for a record:
// the report name with spaces replaced by underscores, the date, the extension.
func ArtifactName(record *model.ReportRecord) string {
	name := strings.ReplaceAll(record.Name, " ", "_")
	return name + "_" + record.Date + "." + Extension(record.OutputFormat())
}
