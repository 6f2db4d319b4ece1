// Package form 校验用户提交的帖子和评论数据。
// author、pub_date 等字段始终由调用方补全，不接受来自提交者的值。
package form

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SupportedImageFormats 允许上传的图片扩展名白名单
var SupportedImageFormats = []string{
	"bmp", "gif", "jpe", "jpg", "jpeg", "png", "apng",
	"tif", "tiff", "webp", "ico",
}

// FieldErrors 是字段名到错误消息的映射，空表示校验通过
type FieldErrors map[string]string

func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// PostForm 对应帖子的提交表单，group 为社区的 slug，可以为空
type PostForm struct {
	Text  string `form:"text" validate:"required"`
	Group string `form:"group"`
}

// Validate 校验表单字段及可选的图片文件
func (f *PostForm) Validate(image *multipart.FileHeader) FieldErrors {
	errs := FieldErrors{}

	if err := validate.Struct(f); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			if fieldErr.Field() == "Text" {
				errs["text"] = "请填写帖子内容"
			}
		}
	}

	if image != nil {
		if err := CheckImage(image.Filename); err != nil {
			errs["image"] = err.Error()
		}
	}

	return errs
}

// CheckImage 检查文件扩展名是否在白名单内。
// 错误消息指明被拒绝的格式并列出全部受支持的格式。
func CheckImage(filename string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, supported := range SupportedImageFormats {
		if ext == supported {
			return nil
		}
	}
	return fmt.Errorf("文件格式 '%s' 不受支持。支持的文件格式：'%s'。",
		ext, strings.Join(SupportedImageFormats, ", "))
}
