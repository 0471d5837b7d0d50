package errors

import "errors"

// ErrOptimisticLock iyimser kilit çakışması: kayıt başka bir işlem tarafından değiştirilmiş
var ErrOptimisticLock = errors.New("kayıt başka bir işlem tarafından değiştirildi, lütfen yenileyip tekrar deneyin")
