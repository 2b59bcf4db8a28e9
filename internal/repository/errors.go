package repository

import "errors"

// ErrNotFound は単一行の取得で該当する行が存在しない場合に返されます
// 呼び出し側は errors.Is で判定し、エラーではなく「見つからない」状態として扱います
var ErrNotFound = errors.New("record not found")

// ErrInvalidQuery はテーブルや列がクエリ定義に存在しない場合に返されます
var ErrInvalidQuery = errors.New("invalid query")
