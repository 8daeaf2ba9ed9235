package airquality

import "errors"

var ErrInvalidRange = errors.New("history range end precedes start")
