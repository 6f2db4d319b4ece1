package util

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// GenerateUniqueFilename 在文件名和扩展名之间插入纳秒时间戳，
// 避免同名图片在存储中相互覆盖
func GenerateUniqueFilename(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	return fmt.Sprintf("%s_%d%s", base, time.Now().UnixNano(), ext)
}
