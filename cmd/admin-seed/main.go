package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"appointme.backend/internal/config"
	"appointme.backend/internal/domain/entities"
	"appointme.backend/internal/infrastructure/datasources/postgres"
	"appointme.backend/internal/infrastructure/repositories"
	"appointme.backend/internal/usecases"
	"appointme.backend/pkg/crypto"
	"appointme.backend/pkg/jwt"
)

var openAdminSeedDB = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
	return postgres.OpenGorm(cfg, false)
}

var openAdminSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type adminSeeder interface {
	Signup(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error)
}

type adminSeedDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (adminSeeder, io.Closer, error)
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultAdminSeedDeps() adminSeedDeps {
	return adminSeedDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (adminSeeder, io.Closer, error) {
			db, err := openAdminSeedDB(cfg.Database)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}

			sqlDB, err := openAdminSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}

			jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
			adminRepo := repositories.NewAdminRepository(db)
			return usecases.NewAdminAuthUsecase(adminRepo, jwtService, nil), sqlDB, nil
		},
		out: os.Stdout,
	}
}

type seedInput struct {
	Email    string
	Name     string
	Password string
}

func parseSeedFlags(args []string) (*seedInput, error) {
	fs := flag.NewFlagSet("admin-seed", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", "", "admin email (required)")
	name := fs.String("name", "Administrator", "admin display name")
	password := fs.String("password", os.Getenv("ADMIN_SEED_PASSWORD"), "admin password, defaults to $ADMIN_SEED_PASSWORD")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *email == "" {
		return nil, fmt.Errorf("--email is required")
	}
	if len(*password) < crypto.MinPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", crypto.MinPasswordLength)
	}
	return &seedInput{Email: *email, Name: *name, Password: *password}, nil
}

func runAdminSeed(args []string, deps adminSeedDeps) error {
	def := defaultAdminSeedDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = def.out
	}

	input, err := parseSeedFlags(args)
	if err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	seeder, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	resp, err := seeder.Signup(context.Background(), &entities.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return fmt.Errorf("failed creating admin %s: %w", input.Email, err)
	}

	admin, ok := resp.User.(*entities.Admin)
	if !ok {
		return fmt.Errorf("unexpected account type %T", resp.User)
	}

	_, _ = fmt.Fprintln(deps.out, "Created admin account")
	_, _ = fmt.Fprintf(deps.out, "admin_id=%s\n", admin.ID)
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", admin.Email)
	return nil
}

func main() {
	if err := runAdminSeed(os.Args[1:], defaultAdminSeedDeps()); err != nil {
		log.Fatal(err)
	}
}
