// Command aula-demo runs the full aulakit surface against either the
// hosted Postgres backend (AULA_DATABASE_URL set) or local file-backed
// stores. It is the reference wiring for hosts embedding the library.
package main

import (
	"log"
	"log/slog"
	"net/http"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	aulakit "github.com/aulakit/aulakit"
	"github.com/aulakit/aulakit/device"
	"github.com/aulakit/aulakit/oauth2"
	"github.com/aulakit/aulakit/stores"
	gormstore "github.com/aulakit/aulakit/stores/gorm"
)

func main() {
	cfg := aulakit.LoadConfig()

	dev, err := device.New(device.Config{
		Kind: cfg.StorageKind,
		Path: cfg.StoragePath,
	})
	if err != nil {
		log.Fatalf("could not open device storage: %v", err)
	}
	adapter := device.NewAdapter(dev)

	app := buildApp(cfg, adapter)

	google := oauth2.NewGoogle(oauth2.GoogleConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		CallbackURL:  cfg.GoogleCallbackURL,
	}, app.Auth)
	if google.Configured() {
		google.Subscribe(func(sess *aulakit.Session) {
			slog.Info("delegated login completed", "email", sess.User.Email)
		})
		app.AddAuth("/auth/google", google.Handler())
	} else {
		slog.Warn("google login disabled: client ID not configured")
	}

	slog.Info("listening", "addr", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, app.Handler()))
}

func buildApp(cfg *aulakit.Config, adapter *device.Adapter) *aulakit.App {
	var (
		users         aulakit.UserStore
		courses       aulakit.CourseStore
		lessons       aulakit.LessonStore
		enrollments   aulakit.EnrollmentStore
		completions   aulakit.CompletionStore
		subscriptions aulakit.SubscriptionStore
		questions     aulakit.QuestionStore
		materials     aulakit.MaterialStore
		profiles      aulakit.ProfileStore
	)

	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("could not connect to database: %v", err)
		}
		if err := gormstore.AutoMigrate(db); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		users = gormstore.NewUserStore(db)
		courses = gormstore.NewCourseStore(db)
		lessons = gormstore.NewLessonStore(db)
		enrollments = gormstore.NewEnrollmentStore(db)
		completions = gormstore.NewCompletionStore(db)
		subscriptions = gormstore.NewSubscriptionStore(db)
		questions = gormstore.NewQuestionStore(db)
		materials = gormstore.NewMaterialStore(db)
		profiles = gormstore.NewProfileStore(db)
	} else {
		fs := stores.NewFS(cfg.DataDir)
		users = fs.Users
		courses = fs.Courses
		lessons = fs.Lessons
		enrollments = fs.Enrollments
		completions = fs.Completions
		subscriptions = fs.Subscriptions
		questions = fs.Questions
		materials = fs.Materials
		profiles = fs.Profiles
	}

	files := stores.NewFSFileStore(
		filepath.Join(cfg.DataDir, "uploads"),
		cfg.BaseURL+"/uploads",
	)

	auth := aulakit.NewAuthenticator(users, adapter)
	app := aulakit.NewApp("AulaDemo")
	// Single-device host: cookie-less requests may use the device
	// session, which is how the Google flow's logins surface.
	app.UseDeviceSession = true
	app.Auth = auth
	app.Catalog = aulakit.NewCatalog(courses, lessons, enrollments, completions, materials)
	app.Search = &aulakit.Search{Courses: courses, Lessons: lessons}
	app.QA = aulakit.NewQA(questions, cfg.Notifier())
	app.Admin = &aulakit.Admin{
		Profiles:      profiles,
		Subscriptions: subscriptions,
		Courses:       courses,
		Lessons:       lessons,
		Materials:     materials,
		Files:         files,
	}
	app.JWTSecretKey = cfg.JWTSecret
	app.JwtIssuer = cfg.JWTIssuer
	return app
}
