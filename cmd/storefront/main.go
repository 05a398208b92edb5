package main

import (
	"github.com/joho/godotenv"

	"github.com/gustavohenri316/Montink-Store/internal/cli"
)

func main() {
	// a missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()
	cli.Execute()
}
