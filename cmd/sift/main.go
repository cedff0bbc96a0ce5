package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// Best effort: provider keys may live in a .env during development.
	_ = godotenv.Load()

	Execute()
}
