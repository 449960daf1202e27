package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/freetrust/backend/pkg/logging"
)

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, user User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *userRepoMock) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	args := m.Called(ctx, email, passwordHash)
	return args.Error(0)
}

type resetRepoMock struct{ mock.Mock }

func (m *resetRepoMock) Create(ctx context.Context, token ResetToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *resetRepoMock) GetByToken(ctx context.Context, token string) (ResetToken, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(ResetToken), args.Error(1)
}

func (m *resetRepoMock) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type senderMock struct{ mock.Mock }

func (m *senderMock) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

// stubHasher keeps unit tests fast; bcrypt behavior is covered in hasher_test.go.
type stubHasher struct{}

func (stubHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }
func (stubHasher) Verify(plaintext, digest string) bool  { return digest == "hashed:"+plaintext }

func newTestService(users UserRepository, tokens ResetTokenRepository, sender Sender) AuthUseCase {
	return NewAuthService(users, tokens, stubHasher{}, sender, "http://localhost:3000", time.Hour, logging.New(0))
}

func TestSignup_Success(t *testing.T) {
	users := new(userRepoMock)
	users.On("GetByEmail", mock.Anything, "a@x.com").Return(User{}, ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u User) bool {
		return u.Email == "a@x.com" && u.Username == "alice" && u.PasswordHash == "hashed:pw1"
	})).Return(nil)

	svc := newTestService(users, new(resetRepoMock), new(senderMock))

	user, err := svc.Signup(context.Background(), "alice", "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "pw1", user.PasswordHash)
	users.AssertExpectations(t)
}

func TestSignup_MissingFields(t *testing.T) {
	svc := newTestService(new(userRepoMock), new(resetRepoMock), new(senderMock))

	for _, tc := range []struct{ username, email, password string }{
		{"", "a@x.com", "pw"},
		{"alice", "", "pw"},
		{"alice", "a@x.com", ""},
	} {
		_, err := svc.Signup(context.Background(), tc.username, tc.email, tc.password)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	users := new(userRepoMock)
	users.On("GetByEmail", mock.Anything, "a@x.com").Return(User{Email: "a@x.com"}, nil)

	svc := newTestService(users, new(resetRepoMock), new(senderMock))

	_, err := svc.Signup(context.Background(), "alice", "a@x.com", "whatever")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_DuplicateEmailRace(t *testing.T) {
	// The pre-check misses but the unique index catches the concurrent insert.
	users := new(userRepoMock)
	users.On("GetByEmail", mock.Anything, "a@x.com").Return(User{}, ErrNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(ErrDuplicateEmail)

	svc := newTestService(users, new(resetRepoMock), new(senderMock))

	_, err := svc.Signup(context.Background(), "alice", "a@x.com", "pw")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLogin_Success(t *testing.T) {
	users := new(userRepoMock)
	users.On("GetByEmail", mock.Anything, "a@x.com").
		Return(User{Email: "a@x.com", PasswordHash: "hashed:pw1"}, nil)

	svc := newTestService(users, new(resetRepoMock), new(senderMock))

	user, err := svc.Login(context.Background(), "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestLogin_NonDisclosure(t *testing.T) {
	users := new(userRepoMock)
	users.On("GetByEmail", mock.Anything, "unknown@x.com").Return(User{}, ErrNotFound)
	users.On("GetByEmail", mock.Anything, "a@x.com").
		Return(User{Email: "a@x.com", PasswordHash: "hashed:pw1"}, nil)

	svc := newTestService(users, new(resetRepoMock), new(senderMock))

	_, unknownErr := svc.Login(context.Background(), "unknown@x.com", "pw1")
	_, wrongErr := svc.Login(context.Background(), "a@x.com", "wrong")

	// Unknown email and wrong password must be indistinguishable.
	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	users := new(userRepoMock)
	users.On("GetByEmail", mock.Anything, "nobody@x.com").Return(User{}, ErrNotFound)

	tokens := new(resetRepoMock)
	svc := newTestService(users, tokens, new(senderMock))

	err := svc.ForgotPassword(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestForgotPassword_IssuesTokenAndSendsLink(t *testing.T) {
	users := new(userRepoMock)
	users.On("GetByEmail", mock.Anything, "a@x.com").Return(User{Email: "a@x.com"}, nil)

	var issued ResetToken
	tokens := new(resetRepoMock)
	tokens.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		issued = args.Get(1).(ResetToken)
	}).Return(nil)

	sender := new(senderMock)
	sender.On("Send", mock.Anything, "a@x.com", "Password Reset Request", mock.Anything).Return(nil)

	svc := newTestService(users, tokens, sender)

	require.NoError(t, svc.ForgotPassword(context.Background(), "a@x.com"))

	assert.Len(t, issued.Token, 64)
	assert.Equal(t, "a@x.com", issued.Email)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), issued.ExpiresAt, time.Minute)

	sender.AssertCalled(t, "Send", mock.Anything, "a@x.com", "Password Reset Request",
		mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "http://localhost:3000/reset-password?token="+issued.Token)
		}))
}

func TestForgotPassword_SendFailureKeepsToken(t *testing.T) {
	users := new(userRepoMock)
	users.On("GetByEmail", mock.Anything, "a@x.com").Return(User{Email: "a@x.com"}, nil)

	tokens := new(resetRepoMock)
	tokens.On("Create", mock.Anything, mock.Anything).Return(nil)

	sender := new(senderMock)
	sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp: connection refused"))

	svc := newTestService(users, tokens, sender)

	err := svc.ForgotPassword(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, ErrNotificationFailure)
	// The token stays issued; it expires on its own.
	tokens.AssertNumberOfCalls(t, "Create", 1)
	tokens.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestResetPassword_Success_UpdatesBeforeConsuming(t *testing.T) {
	record := ResetToken{
		Token:     "tok",
		Email:     "a@x.com",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}

	var calls []string
	tokens := new(resetRepoMock)
	tokens.On("GetByToken", mock.Anything, "tok").Return(record, nil)
	tokens.On("Delete", mock.Anything, "tok").Run(func(mock.Arguments) {
		calls = append(calls, "delete")
	}).Return(nil)

	users := new(userRepoMock)
	users.On("UpdatePassword", mock.Anything, "a@x.com", "hashed:pw2").Run(func(mock.Arguments) {
		calls = append(calls, "update")
	}).Return(nil)

	svc := newTestService(users, tokens, new(senderMock))

	require.NoError(t, svc.ResetPassword(context.Background(), "tok", "pw2"))
	// Password must change before the token is consumed so a failed delete
	// leaves the token retryable.
	assert.Equal(t, []string{"update", "delete"}, calls)
}

func TestResetPassword_UnknownToken(t *testing.T) {
	tokens := new(resetRepoMock)
	tokens.On("GetByToken", mock.Anything, "bogus").Return(ResetToken{}, ErrNotFound)

	users := new(userRepoMock)
	svc := newTestService(users, tokens, new(senderMock))

	err := svc.ResetPassword(context.Background(), "bogus", "pw2")
	assert.ErrorIs(t, err, ErrInvalidToken)
	users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	record := ResetToken{
		Token:     "tok",
		Email:     "a@x.com",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	tokens := new(resetRepoMock)
	tokens.On("GetByToken", mock.Anything, "tok").Return(record, nil)

	users := new(userRepoMock)
	svc := newTestService(users, tokens, new(senderMock))

	err := svc.ResetPassword(context.Background(), "tok", "pw2")
	assert.ErrorIs(t, err, ErrInvalidToken)
	users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPassword_UpdateFailureLeavesToken(t *testing.T) {
	record := ResetToken{
		Token:     "tok",
		Email:     "a@x.com",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	tokens := new(resetRepoMock)
	tokens.On("GetByToken", mock.Anything, "tok").Return(record, nil)

	users := new(userRepoMock)
	users.On("UpdatePassword", mock.Anything, "a@x.com", mock.Anything).
		Return(errors.New("connection reset"))

	svc := newTestService(users, tokens, new(senderMock))

	err := svc.ResetPassword(context.Background(), "tok", "pw2")
	require.Error(t, err)
	tokens.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
