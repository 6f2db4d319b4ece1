package form

import "github.com/go-playground/validator/v10"

// CommentForm 对应评论的提交表单，post、author、created 由调用方补全
type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

func (f *CommentForm) Validate() FieldErrors {
	errs := FieldErrors{}

	if err := validate.Struct(f); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			if fieldErr.Field() == "Text" {
				errs["text"] = "请填写评论内容"
			}
		}
	}

	return errs
}
