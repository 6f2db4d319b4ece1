// Package web 持有服务端渲染的页面模板。
// 模板通过 embed 打包进二进制，测试无需依赖工作目录。
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var files embed.FS

// Templates 解析并返回全部页面模板
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.tmpl"))
}
