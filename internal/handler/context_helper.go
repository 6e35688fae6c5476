package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/workforce-api/internal/models"
	appErrors "github.com/noah-isme/workforce-api/pkg/errors"
)

// parseDateQuery reads a required YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (models.DateCode, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is required (YYYY-MM-DD)", name))
	}
	code, err := models.ParseDateCode(raw)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid %s, expected YYYY-MM-DD", name))
	}
	return code, nil
}
