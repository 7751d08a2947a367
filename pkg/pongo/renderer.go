package pongo

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"github.com/LerianStudio/lib-commons/v2/commons/log"
	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.html
var templatesFS embed.FS

// TemplateRenderer renders report records to HTML using pongo2.
type TemplateRenderer struct{}

// NewTemplateRenderer creates a new TemplateRenderer.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{}
}

// RenderRecord renders a report record using the template of the given display
// mode. The record is passed to the template through a JSON round trip so the
// template sees the same field names the wire format uses.
func (r *TemplateRenderer) RenderRecord(_ context.Context, record *model.ReportRecord, displayMode string, logger log.Logger) (string, error) {
	name := "templates/list.html"
	if displayMode == constant.DisplayModeDetails {
		name = "templates/details.html"
	}

	raw, err := templatesFS.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to load template %s: %w", name, err)
	}

	tpl, err := pongo2.FromBytes(raw)
	if err != nil {
		logger.Errorf("Error parsing template: %s", err.Error())
		return "", err
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return "", err
	}

	var recordMap map[string]any
	if err := json.Unmarshal(payload, &recordMap); err != nil {
		return "", err
	}

	headers, rows := record.FlatTable()

	pongoCtx := pongo2.Context{
		"record":  recordMap,
		"data":    recordMap["data"],
		"headers": headers,
		"rows":    rows,
	}

	out, err := tpl.Execute(pongoCtx)
	if err != nil {
		logger.Errorf("Error executing template: %s", err.Error())
		return "", err
	}

	return out, nil
}
