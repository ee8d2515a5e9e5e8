package main

import (
	"log"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
