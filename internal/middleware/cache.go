package middleware

import (
	"bytes"
	"net/http"
	"time"

	"blog-platform/internal/cache"

	"github.com/gin-gonic/gin"
)

const pageCacheKeyPrefix = "page:"

// bodyCaptureWriter 在写出响应的同时记录响应体
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageCache 缓存整页渲染结果。缓存键按路径加查询串区分，
// 存活期内无论数据如何变化都返回相同的字节；
// 写操作不会使缓存失效，只有超时或显式 Flush 才会触发重新渲染。
func PageCache(store cache.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := pageCacheKeyPrefix + c.Request.URL.RequestURI()
		if entry, ok := store.Get(c.Request.Context(), key); ok {
			c.Data(http.StatusOK, entry.ContentType, entry.Body)
			c.Abort()
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Next()

		if writer.Status() == http.StatusOK {
			store.Set(c.Request.Context(), key, cache.Entry{
				ContentType: writer.Header().Get("Content-Type"),
				Body:        writer.body.Bytes(),
			}, ttl)
		}
	}
}
