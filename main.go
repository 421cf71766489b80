package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/kennyg/yokogaki/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
