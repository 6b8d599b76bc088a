package respond

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Attachment writes data as a downloadable file.
func Attachment(c *gin.Context, fileName, contentType string, data []byte) {
	setAttachmentHeaders(c, fileName, contentType)
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, contentType, data)
}

// AttachmentStream copies r to the response as a downloadable file.
func AttachmentStream(c *gin.Context, fileName, contentType string, r io.Reader) {
	setAttachmentHeaders(c, fileName, contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, r)
}

func setAttachmentHeaders(c *gin.Context, fileName, contentType string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
}
