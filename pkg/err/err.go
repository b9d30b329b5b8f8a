package errprocess

import (
	"errors"
	"fmt"

	"workspace_chat_service/pkg/logger"
)

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}

// Wrap log 並包裝既有錯誤
func Wrap(msg string, err error) error {
	logger.Log.Errorf(msg, err)
	return fmt.Errorf("%s: %w", msg, err)
}
