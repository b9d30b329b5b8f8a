package domain

import "errors"

var (
	// ErrNotFound lookup miss,caller 視為 empty/absent
	ErrNotFound = errors.New("not found")
	// ErrOutOfOrder append 違反 strict ordering
	ErrOutOfOrder = errors.New("append out of order")
	// ErrDuplicateID append 了已存在的 message id
	ErrDuplicateID = errors.New("duplicate message id")
	// ErrStaleReference reply 的 parent id 不存在,僅作 orphan 顯示,不往上拋
	ErrStaleReference = errors.New("stale parent reference")
	// ErrBusUnavailable event bus 不可達,presence/typing 靜默降級
	ErrBusUnavailable = errors.New("event bus unavailable")
)
