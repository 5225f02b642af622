package utils

import "os"

// Getenv reads a configuration variable such as DB_HOST, JWT_SECRET,
// RABBITMQ_URL or PORT and falls back to the given default when the variable
// is unset or empty. Empty values are treated as absent so a blank entry in
// the .env file does not silence the fallback.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}
