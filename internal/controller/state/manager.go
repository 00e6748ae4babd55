package state

import (
	"sync"
	"time"

	"github.com/Freeeeeet/pillbot/internal/schedule"
)

// Manager управляет состояниями пользователей
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
	now    func() time.Time
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
		now:    time.Now,
	}
}

// SetClock подменяет источник времени (для тестов)
func (sm *Manager) SetClock(now func() time.Time) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.now = now
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние пользователя.
// Данные диалога сохраняются: переход между шагами их не сбрасывает.
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData := sm.entry(telegramID)
	userData.State = state
	if state == StateNone && len(userData.Data) == 0 {
		delete(sm.states, telegramID)
	}
}

// GetData получает временные данные пользователя
func (sm *Manager) GetData(telegramID int64, key string) (any, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// GetString возвращает строковое значение или ""
func (sm *Manager) GetString(telegramID int64, key string) string {
	value, ok := sm.GetData(telegramID, key)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

// SetData устанавливает временные данные пользователя
func (sm *Manager) SetData(telegramID int64, key string, value any) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.entry(telegramID).Data[key] = value
}

// DeleteData удаляет ключ из временных данных
func (sm *Manager) DeleteData(telegramID int64, key string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if userData, exists := sm.states[telegramID]; exists {
		delete(userData.Data, key)
		userData.Touched = sm.now()
	}
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// GetAllData получает все временные данные пользователя
func (sm *Manager) GetAllData(telegramID int64) map[string]any {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		// Возвращаем копию, чтобы избежать race condition
		dataCopy := make(map[string]any, len(userData.Data))
		for k, v := range userData.Data {
			dataCopy[k] = v
		}
		return dataCopy
	}
	return nil
}

// Draft возвращает открытый черновик alert, если он есть
func (sm *Manager) Draft(telegramID int64) (*schedule.Draft, bool) {
	value, ok := sm.GetData(telegramID, KeyDraft)
	if !ok {
		return nil, false
	}
	draft, ok := value.(*schedule.Draft)
	return draft, ok && draft != nil
}

// OpenDraft сохраняет черновик и переводит пользователя в редактор
func (sm *Manager) OpenDraft(telegramID int64, draft *schedule.Draft) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData := sm.entry(telegramID)
	userData.State = StateAlertEditor
	userData.Data[KeyDraft] = draft
	delete(userData.Data, KeySlot)
}

// Touch продлевает жизнь диалога без изменения данных
func (sm *Manager) Touch(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if userData, exists := sm.states[telegramID]; exists {
		userData.Touched = sm.now()
	}
}

// SweepExpired удаляет диалоги, не менявшиеся дольше ttl, и возвращает их telegramID.
// Брошенный черновик при этом отменяется.
func (sm *Manager) SweepExpired(ttl time.Duration) []int64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	deadline := sm.now().Add(-ttl)
	var expired []int64
	for telegramID, userData := range sm.states {
		if userData.Touched.After(deadline) {
			continue
		}
		if draft, ok := userData.Data[KeyDraft].(*schedule.Draft); ok && draft != nil {
			// сохранение ещё идёт, черновик закроет сам Commit
			if phase := draft.Phase(); phase == schedule.PhaseSubmitting || phase == schedule.PhaseValidating {
				continue
			}
			draft.Cancel()
		}
		delete(sm.states, telegramID)
		expired = append(expired, telegramID)
	}
	return expired
}

// Len возвращает количество активных диалогов
func (sm *Manager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.states)
}

// entry возвращает запись пользователя, создавая её при необходимости. Вызывать под mu.
func (sm *Manager) entry(telegramID int64) *UserData {
	userData, exists := sm.states[telegramID]
	if !exists {
		userData = &UserData{
			State: StateNone,
			Data:  make(map[string]any),
		}
		sm.states[telegramID] = userData
	}
	userData.Touched = sm.now()
	return userData
}
