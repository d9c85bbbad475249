package services

import (
	"context"
	"sync"

	"github.com/salemerge/quotedesk/internal/client/api"
	"github.com/salemerge/quotedesk/internal/client/models"
	"github.com/salemerge/quotedesk/internal/client/session"
)

// fakeAPI implements api.Client; unset hooks succeed with zero values.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	login          func(models.LoginRequest) (*models.LoginResult, error)
	requestOTP     func(string) (string, error)
	verifyOTP      func(models.VerifyOTPRequest) (string, error)
	resetPassword  func(models.ResetPasswordRequest) (string, error)
	changePassword func(models.ChangePasswordRequest) (string, error)
	listUsers      func(models.ListUsersQuery) (*models.UserPage, error)
	getUser        func(int64) (*models.AccountUser, error)
	createUser     func(models.CreateUserRequest) (string, error)
	updateUser     func(int64, models.UpdateUserRequest) (string, error)
	deleteUser     func(int64) (string, error)
	setUserStatus  func(int64, bool) (string, error)
	setLimit       func(int64, int) (string, error)
	resetDownloads func(int64) (string, error)
	updateProfile  func(models.ProfileUpdate) (string, error)
	generateVideo  func(models.GenerateVideoRequest) (*models.GenerateResult, error)
	listVideos     func(int64) ([]models.VideoRecord, error)
}

var _ api.Client = (*fakeAPI)(nil)

func (f *fakeAPI) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeAPI) Login(_ context.Context, r models.LoginRequest) (*models.LoginResult, error) {
	f.hit("Login")
	if f.login == nil {
		return &models.LoginResult{}, nil
	}
	return f.login(r)
}

func (f *fakeAPI) RequestOTP(_ context.Context, email string) (string, error) {
	f.hit("RequestOTP")
	if f.requestOTP == nil {
		return "", nil
	}
	return f.requestOTP(email)
}

func (f *fakeAPI) VerifyOTP(_ context.Context, r models.VerifyOTPRequest) (string, error) {
	f.hit("VerifyOTP")
	if f.verifyOTP == nil {
		return "RT", nil
	}
	return f.verifyOTP(r)
}

func (f *fakeAPI) ResetPassword(_ context.Context, r models.ResetPasswordRequest) (string, error) {
	f.hit("ResetPassword")
	if f.resetPassword == nil {
		return "", nil
	}
	return f.resetPassword(r)
}

func (f *fakeAPI) ChangePassword(_ context.Context, r models.ChangePasswordRequest) (string, error) {
	f.hit("ChangePassword")
	if f.changePassword == nil {
		return "", nil
	}
	return f.changePassword(r)
}

func (f *fakeAPI) ListUsers(_ context.Context, q models.ListUsersQuery) (*models.UserPage, error) {
	f.hit("ListUsers")
	if f.listUsers == nil {
		return &models.UserPage{}, nil
	}
	return f.listUsers(q)
}

func (f *fakeAPI) GetUser(_ context.Context, id int64) (*models.AccountUser, error) {
	f.hit("GetUser")
	if f.getUser == nil {
		return &models.AccountUser{ID: id, IsActive: true}, nil
	}
	return f.getUser(id)
}

func (f *fakeAPI) CreateUser(_ context.Context, r models.CreateUserRequest) (string, error) {
	f.hit("CreateUser")
	if f.createUser == nil {
		return "", nil
	}
	return f.createUser(r)
}

func (f *fakeAPI) UpdateUser(_ context.Context, id int64, r models.UpdateUserRequest) (string, error) {
	f.hit("UpdateUser")
	if f.updateUser == nil {
		return "", nil
	}
	return f.updateUser(id, r)
}

func (f *fakeAPI) DeleteUser(_ context.Context, id int64) (string, error) {
	f.hit("DeleteUser")
	if f.deleteUser == nil {
		return "", nil
	}
	return f.deleteUser(id)
}

func (f *fakeAPI) SetUserStatus(_ context.Context, id int64, active bool) (string, error) {
	f.hit("SetUserStatus")
	if f.setUserStatus == nil {
		return "", nil
	}
	return f.setUserStatus(id, active)
}

func (f *fakeAPI) SetDownloadLimit(_ context.Context, id int64, limit int) (string, error) {
	f.hit("SetDownloadLimit")
	if f.setLimit == nil {
		return "", nil
	}
	return f.setLimit(id, limit)
}

func (f *fakeAPI) ResetDownloads(_ context.Context, id int64) (string, error) {
	f.hit("ResetDownloads")
	if f.resetDownloads == nil {
		return "", nil
	}
	return f.resetDownloads(id)
}

func (f *fakeAPI) UpdateProfile(_ context.Context, r models.ProfileUpdate) (string, error) {
	f.hit("UpdateProfile")
	if f.updateProfile == nil {
		return "", nil
	}
	return f.updateProfile(r)
}

func (f *fakeAPI) GenerateVideo(_ context.Context, r models.GenerateVideoRequest) (*models.GenerateResult, error) {
	f.hit("GenerateVideo")
	if f.generateVideo == nil {
		return &models.GenerateResult{}, nil
	}
	return f.generateVideo(r)
}

func (f *fakeAPI) ListVideos(_ context.Context, id int64) ([]models.VideoRecord, error) {
	f.hit("ListVideos")
	if f.listVideos == nil {
		return nil, nil
	}
	return f.listVideos(id)
}

type note struct {
	Kind    string
	Message string
}

type fakeNotifier struct {
	mu    sync.Mutex
	notes []note
}

func (n *fakeNotifier) add(kind, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, note{Kind: kind, Message: msg})
}

func (n *fakeNotifier) Success(m string, _ ...string) { n.add("success", m) }
func (n *fakeNotifier) Error(m string, _ ...string)   { n.add("error", m) }
func (n *fakeNotifier) Warning(m string, _ ...string) { n.add("warning", m) }
func (n *fakeNotifier) Info(m string, _ ...string)    { n.add("info", m) }

func (n *fakeNotifier) all() []note {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]note, len(n.notes))
	copy(out, n.notes)
	return out
}

func (n *fakeNotifier) last() note {
	all := n.all()
	if len(all) == 0 {
		return note{}
	}
	return all[len(all)-1]
}

type fakeNav struct {
	mu    sync.Mutex
	views []session.View
}

func (n *fakeNav) Navigate(_ context.Context, v session.View) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.views = append(n.views, v)
}

func (n *fakeNav) visited() []session.View {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]session.View, len(n.views))
	copy(out, n.views)
	return out
}

// memStore is an in-memory SessionStore.
type memStore struct {
	mu      sync.Mutex
	sess    session.Session
	saveErr error
	loadErr error
	cleared int
}

func (m *memStore) Load(context.Context) (session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess, m.loadErr
}

func (m *memStore) Token(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.Token, m.loadErr
}

func (m *memStore) SetToken(_ context.Context, t string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess.Token = t
	return nil
}

func (m *memStore) Save(_ context.Context, s session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.sess = s
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = session.Session{}
	m.cleared++
	return nil
}
