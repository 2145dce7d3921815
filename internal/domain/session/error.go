package session

import "errors"

// ErrNoSession - сохраненной сессии нет
var ErrNoSession = errors.New("no active session")
