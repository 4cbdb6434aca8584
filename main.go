package main

import (
	"os"

	"github.com/emailcapture/emailcapture/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
