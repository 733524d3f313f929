package response

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
)

// Error body shape matches the legacy API: {message, error?}.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// OK sends a 200 response. Nil slices are normalized to empty arrays so the
// client never sees JSON null where it expects a list.
func OK(c *gin.Context, data interface{}) {
	if data != nil {
		v := reflect.ValueOf(data)
		if v.Kind() == reflect.Slice && v.IsNil() {
			c.JSON(http.StatusOK, reflect.MakeSlice(v.Type(), 0, 0).Interface())
			return
		}
	}
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message sends a 200 response with only a message field.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Message: message})
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: message})
}

// NotFoundMsg sends a 404 error response. The same message is used whether the
// record is absent or owned by another user, so existence never leaks.
func NotFoundMsg(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, errorBody{Message: message})
}

// InternalError sends a 500 error response with a user-facing message and the
// underlying error string, mirroring the legacy {message, error} bodies.
func InternalError(c *gin.Context, message string, err error) {
	body := errorBody{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, errorBody{Message: "Method Not Allowed"})
}

// NotFound sends a generic 404 error response for unmatched routes.
func NotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, errorBody{Message: "Not Found"})
}
