package main

import (
	"os"

	"github.com/shahbajlive/mdskin/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
