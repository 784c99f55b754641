package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/gin-gonic/gin"
)

// writeError maps service errors onto status codes. Unexpected errors are
// logged and reported without detail.
func (s *Server) writeError(c *gin.Context, err error) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, messageResponse{Message: verr.Msg})
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, messageResponse{Message: "not found"})
	default:
		s.logger.Error(c.Request.Context(), err.Error(), "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, messageResponse{Message: "internal error"})
	}
}

func badBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
}
