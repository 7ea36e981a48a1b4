package main

import (
	"github.com/joho/godotenv"

	"github.com/angelofallars/hourbill/internal/cli"
)

func main() {
	// .env carries the invoice generator API key; a missing file just
	// means the key comes from the real environment.
	_ = godotenv.Load()

	cli.Execute()
}
