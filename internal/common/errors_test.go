package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := Validationf("Invalid ownerId - user with id %s does not exist.", "u-1")

	assert.True(t, errors.Is(err, ErrorValidation))
	assert.False(t, errors.Is(err, ErrorNotFound))
	assert.Equal(t, "Invalid ownerId - user with id u-1 does not exist.", err.Error())
}

func TestValidationError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("create task: %w", Validationf("title is required"))

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "title is required", ve.Msg)
	assert.True(t, errors.Is(err, ErrorValidation))
}
