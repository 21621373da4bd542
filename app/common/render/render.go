package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
)

//go:embed templates/*.html assets/*
var files embed.FS

// Renderer 渲染输入页和报告页
type Renderer struct {
	tpl *template.Template
}

// New 解析内嵌模板
func New() (*Renderer, error) {
	css, err := files.ReadFile("assets/style.css")
	if err != nil {
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}
	js, err := files.ReadFile("assets/app.js")
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	funcs := template.FuncMap{
		"num": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
		// 样式和脚本来自内嵌文件，不需要转义
		"stylesheet": func() template.CSS { return template.CSS(css) },
		"script":     func() template.JS { return template.JS(js) },
	}
	tpl, err := template.New("scope").Funcs(funcs).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Input 渲染输入页
func (r *Renderer) Input(w io.Writer, p InputPage) error {
	return r.tpl.ExecuteTemplate(w, "input", p)
}

// Report 渲染报告页，静态模式下输出包含全部页签的单个文档
func (r *Renderer) Report(w io.Writer, p ReportPage) error {
	return r.tpl.ExecuteTemplate(w, "report", p)
}
