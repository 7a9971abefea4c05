// Package database provides the data access layer for the book tracker.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, default user seeding
//	├── books/           # Books and per-user reading statuses
//	├── stats/           # Aggregate queries over read books
//	├── users/           # User profiles
//	└── audit/           # Audit trail of API mutations
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type over a *gorm.DB. Pass the
// transaction handle instead of the root connection to run several
// repository calls atomically:
//
//	db, err := database.NewDatabase("./booktracker.db", database.DefaultOptions())
//
//	err = db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
//		repo := books.NewRepository(tx)
//		book, err := repo.FindBookByISBN(ctx, "9780441013593")
//		...
//	})
//
// # Bootstrap
//
// NewDatabase auto-migrates every entity and creates the default user
// (id=1) when it is missing, so opening the database is enough to serve
// requests. Dates on reading statuses are stored as SQL dates via
// gorm.io/datatypes.
package database
