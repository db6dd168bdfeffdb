package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"notehub/cmd/internal/domain/sqlite"
	"notehub/cmd/internal/domain/sqlite/repository"
	"notehub/cmd/internal/http/handler"
	authmw "notehub/cmd/internal/http/middleware"
	"notehub/cmd/internal/ratelimit"
	"notehub/cmd/internal/service"
	"notehub/cmd/internal/service/jobs"
	"notehub/cmd/internal/utils"
	"notehub/cmd/internal/utils/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/notehub/prod/"

// Login attempts allowed per email: one every 10s, bursts of 5.
const (
	loginRPS   = 0.1
	loginBurst = 5
)

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			panic(err)
		}
	}

	if err := utils.InitJWT(os.Getenv("JWT_SECRET")); err != nil {
		panic(err)
	}

	// Init SQLite
	db, err := sqlite.Init(envOr("DB_PATH", "database.db"))
	if err != nil {
		panic(err)
	}

	if err := sqlite.Seed(db); err != nil {
		panic(err)
	}

	// Getting repos
	noteRepo := repository.NewNoteRepository(db)
	userRepo := repository.NewUserRepository(db)
	policyRepo := repository.NewPolicyRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	// Getting services
	loginLimiter := ratelimit.NewKeyedLimiter(loginRPS, loginBurst)
	authService := service.NewAuthService(userRepo, tokenRepo, validate, loginLimiter, tokenTTL())
	noteService := service.NewNoteService(noteRepo, validate)
	profileService := service.NewProfileService(userRepo, validate)
	policyService := service.NewPolicyService(policyRepo)

	// Getting handlers
	authRoutes := handler.NewAuthDefault(authService)
	noteRoutes := handler.NewNoteDefault(noteService)
	profileRoutes := handler.NewProfileDefault(profileService)
	policyRoutes := handler.NewPolicyDefault(policyService)

	// Background purge of dead tokens and stale resets
	cleaner := jobs.NewTokenCleaner(tokenRepo)
	go cleaner.Start(context.Background())

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))

	// Public
	e.POST("/auth/register", authRoutes.Register)
	e.POST("/auth/login", authRoutes.Login)
	e.POST("/auth/sendPasswordResetLink", authRoutes.SendPasswordResetLink)
	e.POST("/auth/resetPassword", authRoutes.ResetPassword)
	e.GET("/getPrivacyPolicy", policyRoutes.GetPrivacyPolicy)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	// Protected
	g := e.Group("")
	g.Use(authmw.NewAuthMiddleware(&authmw.AuthMiddlewareConfig{
		UserRepo:  userRepo,
		TokenRepo: tokenRepo,
	}))

	g.GET("/auth/getProfile", authRoutes.GetProfile)
	g.POST("/auth/logout", authRoutes.Logout)
	g.DELETE("/delete-account", authRoutes.DeleteAccount)

	g.PUT("/profile/updateProfile", profileRoutes.UpdateProfile)
	g.PUT("/profile/updatePassword", profileRoutes.UpdatePassword)

	// Bulk operations (registered before single note routes)
	g.POST("/notes/bulk", noteRoutes.BulkCreate)
	g.PUT("/notes/bulk", noteRoutes.BulkUpdate)
	g.DELETE("/notes/bulk", noteRoutes.BulkDelete)

	g.GET("/notes", noteRoutes.GetNotes)
	g.POST("/notes", noteRoutes.CreateNote)
	g.GET("/notes/:id", noteRoutes.GetNote)
	g.PUT("/notes/:id", noteRoutes.UpdateNote)
	g.DELETE("/notes/:id", noteRoutes.DeleteNote)
	g.PUT("/notes/:id/pin", noteRoutes.TogglePin)

	if err := e.Start(envOr("SERVER_ADDR", ":8080")); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("hasupper", validators.HasUpper)
	_ = validate.RegisterValidation("haslower", validators.HasLower)
	_ = validate.RegisterValidation("hasdigit", validators.HasDigit)
	_ = validate.RegisterValidation("hasspecial", validators.HasSpecial)
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func tokenTTL() time.Duration {
	hours, err := strconv.Atoi(envOr("TOKEN_TTL_HOURS", "24"))
	if err != nil || hours <= 0 {
		log.Warnf("invalid TOKEN_TTL_HOURS, falling back to 24h")
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
