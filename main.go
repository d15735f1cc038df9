package main

import (
	"os"

	"github.com/amixedcolor/aws-identity-gift/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
