package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_KindsAndCodes(t *testing.T) {
	tests := []struct {
		err  error
		kind error
		code string
	}{
		{err: NotFound("event not found"), kind: ErrNotFound, code: CodeNotFound},
		{err: Unauthorized("nope"), kind: ErrUnauthorized, code: CodeUnauthorized},
		{err: Conflict("venue is already booked", "ev-1", "ev-2"), kind: ErrConflict, code: CodeConflict},
		{err: InputValidation("bad"), kind: ErrInputValidation, code: CodeInputValidation},
		{err: AlreadyRegistered("twice"), kind: ErrAlreadyRegistered, code: CodeAlreadyRegistered},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			wrapped := fmt.Errorf("service: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.kind)
			assert.Equal(t, tt.code, ErrorCode(wrapped))
		})
	}
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "venue is already booked: ev-1, ev-2", Conflict("venue is already booked", "ev-1", "ev-2").Error())
	assert.Equal(t, "event not found", NotFound("event not found").Error())
	assert.Equal(t, CodeNotFound, ErrorCode(ErrNotFound))
	assert.Empty(t, ErrorCode(errors.New("boom")))
}
