package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./booktracker.db"

	// DefaultPort matches the port the web frontend expects
	DefaultPort = 5000

	// DefaultUserPassword is the placeholder password of the seeded default user
	DefaultUserPassword = "default_password"
)
