//go:build !wasm
// +build !wasm

// Package gorm provides GORM-based implementations of the aulakit store
// interfaces. It targets the hosted PostgreSQL backend (ILIKE search,
// unique indexes on natural keys) but works with any database GORM
// supports.
//
// # Database Schema
//
// The package auto-migrates the following tables:
//   - users: Accounts (unique email)
//   - courses: The catalog
//   - lessons: Course content, ordered by order_index
//   - enrollments: Per-user course access, unique (email, course)
//   - lesson_completions: Unique (email, course, lesson)
//   - course_subscriptions: Access requests for the approval workflow
//   - lesson_questions: Per-lesson Q&A threads
//   - lesson_materials: Supplementary files per lesson
//   - profiles: Per-user flags (admin bit)
//
// # Usage
//
//	db, _ := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	userStore := gormstore.NewUserStore(db)
//	courseStore := gormstore.NewCourseStore(db)
package gorm
