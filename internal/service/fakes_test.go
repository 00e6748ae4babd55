package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/Freeeeeet/pillbot/internal/api"
	"github.com/Freeeeeet/pillbot/internal/model"
)

type memorySessions struct {
	mu       sync.Mutex
	sessions map[int64]*model.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: make(map[int64]*model.Session)}
}

func (m *memorySessions) Get(_ context.Context, telegramID int64) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[telegramID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memorySessions) Save(_ context.Context, session *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *session
	m.sessions[session.TelegramID] = &cp
	return nil
}

func (m *memorySessions) Delete(_ context.Context, telegramID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, telegramID)
	return nil
}

// fakeAPI реализует AuthAPI, PillAPI и AlertAPI поверх map
type fakeAPI struct {
	mu sync.Mutex

	token    string
	user     *model.User
	pills    []model.Pill
	alerts   []model.Alert
	nextID   int
	failWith error
	calls    map[string]int

	// block задерживает CreateAlert/UpdateAlert до закрытия канала
	block chan struct{}
	// entered получает сигнал, когда CreateAlert/UpdateAlert начал работу
	entered chan struct{}

	updateMe *api.ProfileResult
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		token: "tok",
		user:  &model.User{ID: "u1", Username: "jane", FirstName: "Jane"},
		calls: make(map[string]int),
	}
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) begin(name, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[name]++
	if f.failWith != nil {
		return f.failWith
	}
	if token != "" && token != f.token {
		return &api.Error{StatusCode: 401, Message: "Token expired"}
	}
	return nil
}

func (f *fakeAPI) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

func (f *fakeAPI) Signup(_ context.Context, req api.SignupRequest) (string, error) {
	if err := f.begin("Signup", ""); err != nil {
		return "", err
	}
	return "OTP sent to " + req.PhoneNumber, nil
}

func (f *fakeAPI) Login(_ context.Context, username, password string) (*api.AuthResult, error) {
	if err := f.begin("Login", ""); err != nil {
		return nil, err
	}
	if password != "secret123" {
		return nil, &api.Error{StatusCode: 401, Message: "Incorrect username or password"}
	}
	return &api.AuthResult{Token: f.token, User: f.user}, nil
}

func (f *fakeAPI) VerifyOTP(_ context.Context, phone, otp, purpose string) (*api.AuthResult, error) {
	if err := f.begin("VerifyOTP", ""); err != nil {
		return nil, err
	}
	if purpose == api.OTPPurposeResetPassword {
		return &api.AuthResult{Message: "OTP verified"}, nil
	}
	return &api.AuthResult{Token: f.token, User: f.user}, nil
}

func (f *fakeAPI) ResendOTP(_ context.Context, phone string) (string, error) {
	if err := f.begin("ResendOTP", ""); err != nil {
		return "", err
	}
	return "OTP resent", nil
}

func (f *fakeAPI) ForgotPassword(_ context.Context, phone string) (string, error) {
	if err := f.begin("ForgotPassword", ""); err != nil {
		return "", err
	}
	return "OTP sent", nil
}

func (f *fakeAPI) ResetPassword(_ context.Context, phone, otp, newPassword string) (string, error) {
	if err := f.begin("ResetPassword", ""); err != nil {
		return "", err
	}
	return "Password reset", nil
}

func (f *fakeAPI) UpdateMe(_ context.Context, token string, update api.ProfileUpdate) (*api.ProfileResult, error) {
	if err := f.begin("UpdateMe", token); err != nil {
		return nil, err
	}
	if f.updateMe != nil {
		return f.updateMe, nil
	}
	user := *f.user
	if update.FirstName != "" {
		user.FirstName = update.FirstName
	}
	return &api.ProfileResult{User: &user}, nil
}

func (f *fakeAPI) ListPills(_ context.Context, token string) ([]model.Pill, error) {
	if err := f.begin("ListPills", token); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Pill(nil), f.pills...), nil
}

func (f *fakeAPI) CreatePill(_ context.Context, token string, fields model.PillFields) (model.Pill, error) {
	if err := f.begin("CreatePill", token); err != nil {
		return model.Pill{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	p := model.Pill{ID: f.id("p"), Name: fields.Name, TotalCapsules: fields.TotalCapsules, CapsulesPerServing: fields.CapsulesPerServing}
	f.pills = append(f.pills, p)
	return p, nil
}

func (f *fakeAPI) UpdatePill(_ context.Context, token, id string, fields model.PillFields) (model.Pill, error) {
	if err := f.begin("UpdatePill", token); err != nil {
		return model.Pill{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.pills {
		if f.pills[i].ID == id {
			f.pills[i] = model.Pill{ID: id, Name: fields.Name, TotalCapsules: fields.TotalCapsules, CapsulesPerServing: fields.CapsulesPerServing}
			return f.pills[i], nil
		}
	}
	return model.Pill{}, &api.Error{StatusCode: 404, Message: "Pill not found"}
}

func (f *fakeAPI) DeletePill(_ context.Context, token, id string) error {
	if err := f.begin("DeletePill", token); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.pills[:0]
	for _, p := range f.pills {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.pills = kept
	return nil
}

func (f *fakeAPI) ListAlerts(_ context.Context, token string) ([]model.Alert, error) {
	if err := f.begin("ListAlerts", token); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.Alert, len(f.alerts))
	for i, a := range f.alerts {
		out[i] = a.Clone()
	}
	return out, nil
}

func (f *fakeAPI) wait() {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
}

// CreateAlert сохраняет pills только id, как сервер
func (f *fakeAPI) CreateAlert(_ context.Context, token string, a model.Alert) (model.Alert, error) {
	if err := f.begin("CreateAlert", token); err != nil {
		return model.Alert{}, err
	}
	f.wait()

	f.mu.Lock()
	defer f.mu.Unlock()

	saved := idsOnly(a)
	saved.ID = f.id("a")
	saved.User = f.user.ID
	f.alerts = append(f.alerts, saved)
	return saved.Clone(), nil
}

func (f *fakeAPI) UpdateAlert(_ context.Context, token, id string, a model.Alert) (model.Alert, error) {
	if err := f.begin("UpdateAlert", token); err != nil {
		return model.Alert{}, err
	}
	f.wait()

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.alerts {
		if f.alerts[i].ID == id {
			saved := idsOnly(a)
			saved.ID = id
			saved.User = f.alerts[i].User
			f.alerts[i] = saved
			return saved.Clone(), nil
		}
	}
	return model.Alert{}, &api.Error{StatusCode: 404, Message: "Failed to update alert"}
}

func (f *fakeAPI) DeleteAlert(_ context.Context, token, id string) error {
	if err := f.begin("DeleteAlert", token); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.alerts[:0]
	for _, a := range f.alerts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	f.alerts = kept
	return nil
}

func idsOnly(a model.Alert) model.Alert {
	out := a.Clone()
	out.Pills = make([]model.Pill, 0, len(a.Pills))
	for _, p := range a.Pills {
		out.Pills = append(out.Pills, model.Pill{ID: p.ID})
	}
	return out
}
