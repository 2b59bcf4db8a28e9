package utils

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

const stackMarker = "\nStack trace:\n"

// StackError は取得時点のスタックトレースを保持するエラーです
type StackError struct {
	err   error
	stack []byte
}

func (e *StackError) Error() string {
	return fmt.Sprintf("%v%s%s", e.err, stackMarker, e.stack)
}

func (e *StackError) Unwrap() error {
	return e.err
}

// Stack はエラー作成時のスタックトレースを返します
func (e *StackError) Stack() string {
	return string(e.stack)
}

// GetStackWithError はエラーに呼び出し時点のスタックトレースを付与します
// 既に StackError を含む場合は最初のスタックを残します
func GetStackWithError(err error) error {
	if err == nil {
		return nil
	}
	var se *StackError
	if errors.As(err, &se) {
		return err
	}
	return &StackError{err: err, stack: debug.Stack()}
}

// FailureCause はスタックトレースを除いたエラーメッセージを返します
// Step Functionsのタスク失敗通知の Cause に使います
func FailureCause(err error) string {
	if err == nil {
		return ""
	}
	msg, _, _ := strings.Cut(err.Error(), stackMarker)
	return msg
}
