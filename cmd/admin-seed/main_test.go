package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"appointme.backend/internal/config"
	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/infrastructure/datasources/testdb"
	"appointme.backend/internal/infrastructure/repositories"
	"appointme.backend/pkg/crypto"
)

type seederStub struct {
	signupFn func(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error)
}

func (s seederStub) Signup(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	return s.signupFn(ctx, input)
}

type closerSpy struct{ closed bool }

func (c *closerSpy) Close() error {
	c.closed = true
	return nil
}

func TestParseSeedFlags(t *testing.T) {
	t.Setenv("ADMIN_SEED_PASSWORD", "")

	_, err := parseSeedFlags(nil)
	assert.EqualError(t, err, "--email is required")

	_, err = parseSeedFlags([]string{"--email", "root@example.com", "--password", "short"})
	assert.ErrorContains(t, err, "at least 8 characters")

	in, err := parseSeedFlags([]string{"--email", "root@example.com", "--password", "long-enough"})
	require.NoError(t, err)
	assert.Equal(t, "Administrator", in.Name)

	_, err = parseSeedFlags([]string{"--unknown"})
	assert.Error(t, err)
}

func TestParseSeedFlags_PasswordFromEnv(t *testing.T) {
	t.Setenv("ADMIN_SEED_PASSWORD", "from-the-env")

	in, err := parseSeedFlags([]string{"--email", "root@example.com", "--name", "Root"})
	require.NoError(t, err)
	assert.Equal(t, "from-the-env", in.Password)
	assert.Equal(t, "Root", in.Name)
}

func TestRunAdminSeed_PrintsCreatedAdmin(t *testing.T) {
	closer := &closerSpy{}
	var out bytes.Buffer
	var got *entities.RegisterInput

	err := runAdminSeed([]string{"--email", "root@example.com", "--password", "secret123"}, adminSeedDeps{
		loadEnv: func() error { return errors.New("no .env") },
		loadCfg: func() *config.Config { return &config.Config{} },
		prepare: func(*config.Config) (adminSeeder, io.Closer, error) {
			return seederStub{signupFn: func(_ context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
				got = input
				return &entities.AuthResponse{User: &entities.Admin{Email: input.Email}}, nil
			}}, closer, nil
		},
		out: &out,
	})
	require.NoError(t, err)
	assert.True(t, closer.closed)
	assert.Equal(t, "secret123", got.Password)
	assert.Contains(t, out.String(), "Created admin account")
	assert.Contains(t, out.String(), "email=root@example.com")
}

func TestRunAdminSeed_Errors(t *testing.T) {
	args := []string{"--email", "root@example.com", "--password", "secret123"}
	base := adminSeedDeps{
		loadEnv: func() error { return nil },
		loadCfg: func() *config.Config { return &config.Config{} },
		out:     io.Discard,
	}

	t.Run("prepare fails", func(t *testing.T) {
		deps := base
		deps.prepare = func(*config.Config) (adminSeeder, io.Closer, error) {
			return nil, nil, errors.New("db down")
		}
		assert.EqualError(t, runAdminSeed(args, deps), "db down")
	})

	t.Run("signup conflict", func(t *testing.T) {
		deps := base
		deps.prepare = func(*config.Config) (adminSeeder, io.Closer, error) {
			return seederStub{signupFn: func(context.Context, *entities.RegisterInput) (*entities.AuthResponse, error) {
				return nil, domainerrors.Conflict("email already registered")
			}}, nil, nil
		}
		err := runAdminSeed(args, deps)
		assert.ErrorIs(t, err, domainerrors.ErrConflict)
		assert.ErrorContains(t, err, "failed creating admin root@example.com")
	})

	t.Run("wrong account type", func(t *testing.T) {
		deps := base
		deps.prepare = func(*config.Config) (adminSeeder, io.Closer, error) {
			return seederStub{signupFn: func(context.Context, *entities.RegisterInput) (*entities.AuthResponse, error) {
				return &entities.AuthResponse{User: &entities.User{}}, nil
			}}, nil, nil
		}
		assert.ErrorContains(t, runAdminSeed(args, deps), "unexpected account type")
	})
}

func TestDefaultPrepare_CreatesAdminInDatabase(t *testing.T) {
	db := testdb.New(t)

	origOpen := openAdminSeedDB
	t.Cleanup(func() { openAdminSeedDB = origOpen })
	origSQL := openAdminSQLDB
	t.Cleanup(func() { openAdminSQLDB = origSQL })
	openAdminSeedDB = func(config.DatabaseConfig) (*gorm.DB, error) { return db, nil }
	// keep the shared handle open across both runs
	openAdminSQLDB = func(*gorm.DB) (io.Closer, error) { return nopCloser{}, nil }

	cfg := &config.Config{JWT: config.JWTConfig{Secret: "secret"}}
	var out bytes.Buffer
	err := runAdminSeed([]string{"--email", "Root@Example.com", "--password", "secret123"}, adminSeedDeps{
		loadEnv: func() error { return nil },
		loadCfg: func() *config.Config { return cfg },
		out:     &out,
	})
	require.NoError(t, err)

	admin, err := repositories.NewAdminRepository(db).GetByEmail(context.Background(), "root@example.com")
	require.NoError(t, err)
	assert.True(t, crypto.CheckPassword("secret123", admin.PasswordHash))
	assert.Contains(t, out.String(), admin.ID.String())

	err = runAdminSeed([]string{"--email", "root@example.com", "--password", "secret123"}, adminSeedDeps{
		loadEnv: func() error { return nil },
		loadCfg: func() *config.Config { return cfg },
		out:     io.Discard,
	})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestDefaultPrepare_OpenFailure(t *testing.T) {
	origOpen := openAdminSeedDB
	t.Cleanup(func() { openAdminSeedDB = origOpen })
	openAdminSeedDB = func(config.DatabaseConfig) (*gorm.DB, error) { return nil, errors.New("refused") }

	_, _, err := defaultAdminSeedDeps().prepare(&config.Config{})
	assert.EqualError(t, err, "failed to connect db: refused")
}

func TestMain_ExitsWhenEmailMissing(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_ADMIN_SEED") == "1" {
		os.Args = []string{"admin-seed"}
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestMain_ExitsWhenEmailMissing")
	cmd.Env = append(os.Environ(), "GO_WANT_HELPER_ADMIN_SEED=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.True(t, strings.Contains(stderr.String(), "--email is required"), stderr.String())
}
