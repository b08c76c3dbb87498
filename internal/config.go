package internal

// Config holds the application settings
type Config struct {
	// Inactivity timeout in milliseconds before the overlay appears
	// (0 = show immediately and reopen after every dismissal)
	TimeoutMS int

	// Exit after the overlay is dismissed for the first time
	ExitOnHide bool
}
