package repo

import "errors"

// ErrNotFound — запись отсутствует или принадлежит другому пользователю.
// Снаружи эти случаи неразличимы (404 в обоих).
var ErrNotFound = errors.New("record not found")
