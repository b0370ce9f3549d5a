// Command course-ical exports Berkeley class schedule pages to an .ics file.
package main

import (
	"github.com/joho/godotenv"

	"github.com/pfrederiksen/course-ical/internal/cli"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cli.Execute()
}
