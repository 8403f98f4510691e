package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := NotFound("chat %s not found", "abc")
	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindNotFound, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestKindOfWrapped(t *testing.T) {
	inner := ArtifactUnavailable("object missing", errors.New("404"))
	wrapped := fmt.Errorf("resolve url: %w", inner)

	assert.True(t, IsKind(wrapped, KindArtifactUnavailable))
	assert.False(t, IsKind(wrapped, KindNotFound))
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := Wrap(Conflict("preferences already exist"), cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "conflict")
}
