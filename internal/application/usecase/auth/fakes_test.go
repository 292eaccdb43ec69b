package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[email]
	return ok, nil
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeAccountRepo struct {
	created []*entity.Account
	err     error
}

func (r *fakeAccountRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	return r.created, nil
}

func (r *fakeAccountRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Account, error) {
	return nil, domainerror.ErrAccountNotFound
}

func (r *fakeAccountRepo) Upsert(_ context.Context, account *entity.Account) error {
	r.created = append(r.created, account)
	return nil
}

func (r *fakeAccountRepo) CreateMany(_ context.Context, accounts []*entity.Account) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, accounts...)
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	return nil
}

type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (fakePasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

type fakeTokenService struct {
	issued      map[string]adapter.TokenClaims
	invalidated []uuid.UUID
	counter     int
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{issued: map[string]adapter.TokenClaims{}}
}

func (s *fakeTokenService) GenerateTokenPair(_ context.Context, userID uuid.UUID, email string, rememberMe bool) (*adapter.TokenPair, error) {
	s.counter++
	refresh := "refresh-" + uuid.NewString()
	expires := time.Now().Add(15 * time.Minute)
	s.issued[refresh] = adapter.TokenClaims{UserID: userID, Email: email, ExpiresAt: expires}
	return &adapter.TokenPair{AccessToken: "access-" + uuid.NewString(), RefreshToken: refresh, ExpiresAt: expires}, nil
}

func (s *fakeTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func (s *fakeTokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	claims, ok := s.issued[token]
	if !ok {
		return nil, domainerror.ErrInvalidToken
	}
	return &claims, nil
}

func (s *fakeTokenService) RevokeRefreshToken(_ context.Context, token string) error {
	delete(s.issued, token)
	return nil
}

func (s *fakeTokenService) RevokeUserSessions(_ context.Context, userID uuid.UUID) error {
	s.invalidated = append(s.invalidated, userID)
	for k, c := range s.issued {
		if c.UserID == userID {
			delete(s.issued, k)
		}
	}
	return nil
}
