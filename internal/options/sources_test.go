package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oapistub/oaserrors"
)

func TestExactlyOne(t *testing.T) {
	assert.NoError(t, ExactlyOne(Named("file", false), Named("url", true), Named("content", false)))

	err := ExactlyOne(Named("file", false), Named("url", false), Named("content", false))
	assert.EqualError(t, err, "configuration error for source: one of file, url or content is required")
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))

	err = ExactlyOne(Named("file", true), Named("url", false), Named("content", true))
	assert.EqualError(t, err, "configuration error for source: only one of file, url or content may be given, got file and content")

	assert.EqualError(t, ExactlyOne(), "configuration error for source: one of an input is required")
	assert.EqualError(t, ExactlyOne(Named("bytes", false)), "configuration error for source: one of bytes is required")
}
