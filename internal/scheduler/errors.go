package scheduler

import "errors"

// ErrInvalidArgument は評価値や前回状態が範囲外の場合に返されます。
var ErrInvalidArgument = errors.New("scheduler: invalid argument")
