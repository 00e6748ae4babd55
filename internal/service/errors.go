package service

import (
	"errors"
	"sync"
)

var (
	ErrUnauthenticated   = errors.New("not logged in")
	ErrOperationInFlight = errors.New("operation already in progress")
	ErrPillNotFound      = errors.New("pill not found")
	ErrAlertNotFound     = errors.New("alert not found")
)

// ValidationError ошибка проверки пользовательского ввода до обращения к API
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// inFlight не даёт запустить вторую операцию над той же сущностью,
// пока первая не завершилась
type inFlight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInFlight() *inFlight {
	return &inFlight{keys: make(map[string]struct{})}
}

// acquire возвращает функцию освобождения или ErrOperationInFlight
func (f *inFlight) acquire(key string) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, busy := f.keys[key]; busy {
		return nil, ErrOperationInFlight
	}
	f.keys[key] = struct{}{}

	return func() {
		f.mu.Lock()
		delete(f.keys, key)
		f.mu.Unlock()
	}, nil
}
