package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDate(t *testing.T) {
	assert.NoError(t, ValidateDate("2024-11-04"))

	for _, bad := range []string{"", "../x", "2024-13-01", "11-04-2024", "2024-11-04/../../etc"} {
		err := ValidateDate(bad)
		var customErr *CustomError
		if assert.True(t, errors.As(err, &customErr), bad) {
			assert.Equal(t, http.StatusBadRequest, customErr.StatusCode)
		}
	}
}
