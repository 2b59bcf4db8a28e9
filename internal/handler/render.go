package handler

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/uma-arai/hotel-dashboard/internal/viewstate"
)

const pageTemplate = "dashboard.html"

//go:embed templates/*.html
var templateFS embed.FS

// TemplateRenderer は埋め込みテンプレートでHTMLを描画するecho.Rendererです
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer はテンプレートを読み込んでTemplateRendererを作成します
func NewTemplateRenderer() (*TemplateRenderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"isReady":    func(p viewstate.Phase) bool { return p == viewstate.PhaseReady },
		"isNotFound": func(p viewstate.Phase) bool { return p == viewstate.PhaseNotFound },
		"isFailed":   func(p viewstate.Phase) bool { return p == viewstate.PhaseFailed },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: tmpl}, nil
}

// Render はecho.Rendererを実装します
func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
