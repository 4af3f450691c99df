package http

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/truefeedback/truefeedback/internal/feedback/service"
	"github.com/truefeedback/truefeedback/internal/feedback/store/drivers/sqlite"
	"github.com/truefeedback/truefeedback/pkg/cryptox"
	"github.com/truefeedback/truefeedback/pkg/jwtx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "feedback-http-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// capturingMailer records the last verification code so tests can redeem it.
type capturingMailer struct {
	lastCode string
}

func (m *capturingMailer) SendVerificationCode(_ context.Context, _, _, code string) error {
	m.lastCode = code
	return nil
}

type fixture struct {
	router   *Router
	accounts *service.AccountService
	sessions *service.SessionService
	mailer   *capturingMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  "test-issuer",
		NumKeys: 1,
	})
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	mailer := &capturingMailer{}

	accounts := &service.AccountService{
		Store:   st,
		Mailer:  mailer,
		Logger:  logger,
		CodeTTL: time.Hour,
	}
	sessions := &service.SessionService{
		Store:      st,
		KeyManager: km,
		Issuer:     "test-issuer",
		SessionTTL: time.Hour,
	}

	router := NewRouter(km.KeySet, km.Verifier, "test", false, st, logger)
	router.AccountService = accounts
	router.SessionService = sessions
	router.MessageService = service.NewMessageService(st)
	router.ApplyRoutes()

	return &fixture{
		router:   router,
		accounts: accounts,
		sessions: sessions,
		mailer:   mailer,
	}
}

// signUpVerified registers and verifies an account, returning its id.
func (f *fixture) signUpVerified(t *testing.T, username, email, password string) string {
	t.Helper()

	res, err := f.accounts.Register(context.Background(), username, email, password)
	require.NoError(t, err)
	require.NoError(t, f.accounts.VerifyCode(context.Background(), username, f.mailer.lastCode))
	return res.AccountID
}

// signIn returns a session token for the given credentials.
func (f *fixture) signIn(t *testing.T, identifier, password string) string {
	t.Helper()

	res, err := f.sessions.SignIn(context.Background(), identifier, password)
	require.NoError(t, err)
	return res.Token
}
