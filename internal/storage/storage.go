package storage

import "mime/multipart"

// Storage 定义上传图片的存储接口
type Storage interface {
	// UploadFile 保存上传的文件并返回其相对路径或访问地址
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}
