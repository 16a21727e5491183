package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/xyz-asif/travlr/internal/cli"
)

func main() {
	_ = godotenv.Load()
	os.Exit(cli.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
