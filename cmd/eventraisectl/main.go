// Command eventraisectl drives the EventraiseHub API from a terminal: it
// renders an event page, submits the page's forms and runs the owner and
// admin panels.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
