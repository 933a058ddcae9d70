package httpserver

import (
	_ "embed"
	"html/template"
)

//go:embed templates/dashboard.html.tmpl
var dashboardTemplateSrc string

var dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardTemplateSrc))
