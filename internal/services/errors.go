package services

import (
	"errors"
)

// 稳定的错误类别，HTTP 层据此映射状态码，不允许吞成笼统失败
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidRelation = errors.New("invalid relation")
	ErrConflict        = errors.New("conflict")
)
