package usecase

import (
	"context"
	"sync"

	"complainhub/internal/domain/entity"
	"complainhub/internal/domain/repository"
	"complainhub/internal/infrastructure/firebase"
	"complainhub/pkg/errors"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []*entity.User{}
	for _, u := range r.users {
		copied := *u
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return errors.NotFound("User", nil)
	}
	if name, ok := fields["name"].(string); ok {
		user.Name = name
	}
	if department, ok := fields["department"].(string); ok {
		user.Department = department
	}
	return nil
}

func (r *fakeUserRepo) SetAccountStatus(ctx context.Context, id string, status entity.AccountStatus, blockReason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.Status = status
	user.BlockReason = blockReason
	return nil
}

// fakeAuthClient answers sign-ins from a static credential table and issues
// "token-<uid>" tokens.
type fakeAuthClient struct {
	passwords map[string]string // email -> password
	uids      map[string]string // email -> uid
	signInErr error
}

func (f *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	uid := "uid-" + email
	if f.uids == nil {
		f.uids = map[string]string{}
	}
	if f.passwords == nil {
		f.passwords = map[string]string{}
	}
	f.uids[email] = uid
	f.passwords[email] = password
	return uid, nil
}

func (f *fakeAuthClient) SignInWithEmailPassword(ctx context.Context, email, password string) (string, error) {
	if f.signInErr != nil {
		return "", f.signInErr
	}
	stored, ok := f.passwords[email]
	if !ok {
		return "", errors.Unauthorized("No account found with this email address.", nil)
	}
	if stored != password {
		return "", errors.Unauthorized("Incorrect password. Please try again.", nil)
	}
	return "token-" + f.uids[email], nil
}

func (f *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	if len(token) <= len("token-") {
		return "", errors.Unauthorized("Invalid or expired token", nil)
	}
	return token[len("token-"):], nil
}

func (f *fakeAuthClient) VerifyTokenClaims(ctx context.Context, token string) (*firebase.TokenClaims, error) {
	uid, err := f.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return &firebase.TokenClaims{UID: uid, Email: uid + "@example.edu"}, nil
}

func (f *fakeAuthClient) ListUsers(ctx context.Context) ([]firebase.AuthUser, error) {
	result := []firebase.AuthUser{}
	for email, uid := range f.uids {
		result = append(result, firebase.AuthUser{UID: uid, Email: email})
	}
	return result, nil
}

type fakeClassifier struct {
	priority entity.Priority
	err      error
	lastText string
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (entity.Priority, error) {
	f.lastText = text
	if f.err != nil {
		return "", f.err
	}
	return f.priority, nil
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	messages [][]byte
}

func (f *fakeBroadcaster) Broadcast(message []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
}

func (f *fakeBroadcaster) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

// silentComplaintRepo never emits on Watch, standing in for an unreachable
// store.
type silentComplaintRepo struct{}

func (silentComplaintRepo) Create(ctx context.Context, complaint *entity.Complaint) error {
	return errors.Internal("store unavailable", nil)
}

func (silentComplaintRepo) GetByID(ctx context.Context, id string) (*entity.Complaint, error) {
	return nil, errors.Internal("store unavailable", nil)
}

func (silentComplaintRepo) List(ctx context.Context, filter repository.ComplaintFilter) ([]*entity.Complaint, error) {
	return nil, errors.Internal("store unavailable", nil)
}

func (silentComplaintRepo) UpdateStatus(ctx context.Context, id string, change repository.StatusChange) error {
	return errors.Internal("store unavailable", nil)
}

func (silentComplaintRepo) AddComment(ctx context.Context, id string, comment entity.Comment) error {
	return errors.Internal("store unavailable", nil)
}

func (silentComplaintRepo) Watch(ctx context.Context, filter repository.ComplaintFilter) (*repository.Subscription, error) {
	ch := make(chan []*entity.Complaint)
	return repository.NewSubscription(ch, func() {}), nil
}

// scriptedComplaintRepo emits exactly the snapshots the test pushes.
type scriptedComplaintRepo struct {
	silentComplaintRepo
	snapshots chan []*entity.Complaint
}

func newScriptedComplaintRepo() *scriptedComplaintRepo {
	return &scriptedComplaintRepo{snapshots: make(chan []*entity.Complaint)}
}

func (r *scriptedComplaintRepo) Watch(ctx context.Context, filter repository.ComplaintFilter) (*repository.Subscription, error) {
	return repository.NewSubscription(r.snapshots, func() {}), nil
}
