// Package aulakit is the application core of a small learning-management
// client: authentication, course catalog, lesson progress, search, a Q&A
// thread per lesson, and an admin console, all backed by a hosted
// relational database.
//
// The package is a library consumed by host applications ("screens").
// Two pieces do the heavy lifting:
//
// Session & Credential Manager: Authenticator implements email/password
// registration and login against the backend users table, plus a soft
// current-session query that re-validates the cached session on every
// read. Delegated Google sign-in lives in the oauth2 subpackage and
// biometric re-entry in Biometric; both layer on top of Authenticator.
//
// Resource Adapter: the device subpackage presents one interface for
// durable key-value storage and crypto primitives, with a file-backed
// and an in-memory backend selected once at construction.
//
// # Basic Usage
//
// Wire stores and the adapter, then construct the services:
//
//	storage, _ := device.New(device.Config{Kind: "file", AppName: "aula"})
//	dev := device.NewAdapter(storage)
//
//	users := stores.NewFSUserStore(dataDir)
//	auth := aulakit.NewAuthenticator(users, dev)
//
//	sess, err := auth.Login("jane@example.com", "secret1")
//
// For the hosted backend, use the gorm stores instead:
//
//	db, _ := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	gormstores.AutoMigrate(db)
//	users := gormstores.NewUserStore(db)
//
// The App type mounts the whole thing as an http.Handler for web-style
// hosts; native hosts call the services directly.
//
// # Store Implementations
//
// File-backed stores in the stores package suit development, tests and
// single-user installs. The stores/gorm package targets the hosted
// Postgres backend.
package aulakit
