package main

import (
	"os"

	"github.com/profilemanager/profilemanager/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
