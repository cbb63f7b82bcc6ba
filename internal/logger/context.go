package logger

// Component-specific logger functions

// DB returns a logger for database operations
func DB() Logger {
	return WithField("component", "db")
}

// Repo returns a logger for repository operations
func Repo() Logger {
	return WithField("component", "repo")
}

// Export returns a logger for export operations
func Export() Logger {
	return WithField("component", "export")
}

// CLI returns a logger for CLI operations
func CLI() Logger {
	return WithField("component", "cli")
}
