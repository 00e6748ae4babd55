package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Freeeeeet/pillbot/internal/model"
)

// Phase этап редактирования alert
type Phase string

const (
	PhaseDraft      Phase = "draft"
	PhaseValidating Phase = "validating"
	PhaseSubmitting Phase = "submitting"
	PhasePersisted  Phase = "persisted"
	PhaseFailed     Phase = "failed"
	PhaseCancelled  Phase = "cancelled"
)

// AlertStore сохраняет alert на сервере
type AlertStore interface {
	CreateAlert(ctx context.Context, a model.Alert) (model.Alert, error)
	UpdateAlert(ctx context.Context, id string, a model.Alert) (model.Alert, error)
}

// Op локальная операция над рабочей копией
type Op func(model.Alert) (model.Alert, error)

// Draft рабочая копия alert. Для нового alert оригинала нет,
// для существующего оригинал не меняется до успешного Commit.
type Draft struct {
	mu sync.Mutex

	id       uuid.UUID
	working  model.Alert
	original *model.Alert
	phase    Phase
	err      error
	touched  time.Time
}

// NewDraft создаёт черновик нового alert: ничего не выбрано, isActive = true
func NewDraft() *Draft {
	return &Draft{
		id: uuid.New(),
		working: model.Alert{
			DaysOfWeek: []model.Weekday{},
			AlertTimes: []model.AlertTime{},
			IsActive:   true,
			Pills:      []model.Pill{},
		},
		phase:   PhaseDraft,
		touched: time.Now(),
	}
}

// BeginEdit создаёт рабочую копию сохранённого alert.
// Если передан каталог, ссылки на удалённые pills отбрасываются; nil каталог
// только убирает пустые ссылки.
func BeginEdit(persisted model.Alert, catalog []model.Pill) *Draft {
	original := persisted.Clone()

	working := persisted.Clone()
	working.DaysOfWeek = NormalizeDays(working.DaysOfWeek)
	if catalog != nil {
		working = ResolvePills(working, catalog)
	} else {
		working.Pills = ValidPills(working.Pills)
	}

	return &Draft{
		id:       uuid.New(),
		working:  working,
		original: &original,
		phase:    PhaseDraft,
		touched:  time.Now(),
	}
}

// ID идентификатор черновика
func (d *Draft) ID() uuid.UUID {
	return d.id
}

// LockKey ключ блокировки на время сохранения: id alert или id черновика
func (d *Draft) LockKey() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.original != nil && d.original.ID != "" {
		return d.original.ID
	}
	return d.id.String()
}

// IsNew true для черновика нового alert
func (d *Draft) IsNew() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.original == nil
}

// Working возвращает копию текущего состояния
func (d *Draft) Working() model.Alert {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.working.Clone()
}

// Original возвращает сохранённую версию, если черновик редактирует существующий alert
func (d *Draft) Original() (model.Alert, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.original == nil {
		return model.Alert{}, false
	}
	return d.original.Clone(), true
}

// Phase текущий этап
func (d *Draft) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

// Err ошибка последнего неудачного Commit
func (d *Draft) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// TouchedAt время последнего изменения
func (d *Draft) TouchedAt() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.touched
}

// Apply применяет локальную операцию. Ошибка операции не меняет ни рабочую
// копию, ни этап. Во время сохранения правки отклоняются.
func (d *Draft) Apply(op Op) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.editableLocked(); err != nil {
		return err
	}

	next, err := op(d.working.Clone())
	if err != nil {
		return err
	}

	d.working = next
	d.phase = PhaseDraft
	d.err = nil
	d.touched = time.Now()
	return nil
}

// Commit проверяет рабочую копию и сохраняет её через store.
// Перед проверкой ссылки на pills сверяются с каталогом (если он передан).
// При ошибке черновик переходит в PhaseFailed и остаётся доступным для правок.
func (d *Draft) Commit(ctx context.Context, store AlertStore, catalog []model.Pill) (model.Alert, error) {
	d.mu.Lock()
	if err := d.editableLocked(); err != nil {
		d.mu.Unlock()
		return model.Alert{}, err
	}

	d.phase = PhaseValidating
	candidate := d.working.Clone()
	if catalog != nil {
		candidate = ResolvePills(candidate, catalog)
	}
	if err := Validate(candidate); err != nil {
		d.failLocked(err)
		d.mu.Unlock()
		return model.Alert{}, err
	}
	candidate.TimesPerDay = len(candidate.AlertTimes)

	d.phase = PhaseSubmitting
	var originalID string
	if d.original != nil {
		originalID = d.original.ID
	}
	d.mu.Unlock()

	var (
		saved model.Alert
		err   error
	)
	if originalID == "" {
		saved, err = store.CreateAlert(ctx, candidate)
	} else {
		saved, err = store.UpdateAlert(ctx, originalID, candidate)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		d.failLocked(err)
		return model.Alert{}, err
	}

	d.working = saved.Clone()
	d.original = &saved
	d.phase = PhasePersisted
	d.err = nil
	d.touched = time.Now()
	return saved.Clone(), nil
}

// Cancel отбрасывает рабочую копию. Для существующего alert возвращает
// нетронутый оригинал.
func (d *Draft) Cancel() (model.Alert, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.phase != PhasePersisted {
		d.phase = PhaseCancelled
	}
	if d.original == nil {
		return model.Alert{}, false
	}
	return d.original.Clone(), true
}

func (d *Draft) editableLocked() error {
	switch d.phase {
	case PhaseValidating, PhaseSubmitting:
		return ErrDraftBusy
	case PhasePersisted, PhaseCancelled:
		return ErrDraftClosed
	}
	return nil
}

func (d *Draft) failLocked(err error) {
	d.phase = PhaseFailed
	d.err = err
	d.touched = time.Now()
}
