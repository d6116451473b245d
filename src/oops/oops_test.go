package oops

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

var SampleErrorValue = errors.New("upstream returned garbage")

type SampleErrorType struct {
	Message string
}

func (s SampleErrorType) Error() string {
	return s.Message
}

func init() {
	zerolog.ErrorStackMarshaler = ZerologStackMarshaler
}

func TestNew(t *testing.T) {
	t.Run("errors.Is", func(t *testing.T) {
		err := New(SampleErrorValue, "failed to fetch news")
		assert.ErrorIs(t, err, SampleErrorValue)
	})
	t.Run("errors.As", func(t *testing.T) {
		err := New(SampleErrorType{Message: "bad slug"}, "failed to resolve article")
		var sErr SampleErrorType
		assert.True(t, errors.As(err, &sErr))
		assert.Equal(t, "bad slug", sErr.Message)
	})
	t.Run("message", func(t *testing.T) {
		assert.Equal(t, "failed to fetch news: upstream returned garbage", New(SampleErrorValue, "failed to fetch %s", "news").Error())
		assert.Equal(t, "no token", New(nil, "no token").Error())
	})
	t.Run("stack", func(t *testing.T) {
		err := New(nil, "with stack")
		stack, ok := ZerologStackMarshaler(err).(CallStack)
		assert.True(t, ok)
		assert.NotEmpty(t, stack)
		assert.Nil(t, ZerologStackMarshaler(SampleErrorValue))
	})
}
