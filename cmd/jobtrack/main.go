package main

import (
	"errors"
	"log"
	"os"

	"jobtrack/internal/cli"
	"jobtrack/internal/pipeline"
)

func main() {
	log.SetFlags(0)

	if err := cli.Execute(); err != nil {
		log.Printf("error: %v", err)
		var se *pipeline.StageError
		if errors.As(err, &se) {
			os.Exit(se.Code)
		}
		os.Exit(1)
	}
}
