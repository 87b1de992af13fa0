package io

import (
	"errors"

	"github.com/ezrec/bfc/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull = errors.New(f("channel full"))
)
