package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/dutyreport/errors"
)

// JSON writes data as the body on success. Errors are written as
// {"error": msg}; a nil data with a message becomes {"message": msg}.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if data == nil {
		c.JSON(status, gin.H{"message": message})
		return
	}
	c.JSON(status, data)
}

// HandleErrors writes err with the status of its taxonomy entry.
func HandleErrors(c *gin.Context, err error) {
	if e, ok := errs.As(err); ok {
		JSON(c, "", e.Status, nil, e)
		return
	}
	JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
}
