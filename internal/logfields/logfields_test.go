package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorAttr(t *testing.T) {
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
	assert.Equal(t, KeyError, Error(nil).Key)
}

func TestAttrKeys(t *testing.T) {
	assert.Equal(t, KeyDepositCap, DepositCap("1").Key)
	assert.Equal(t, KeyChannel, Channel("webhook").Key)
	assert.Equal(t, 12.5, DurationMS(12.5).Value.Float64())
}
