package main

import (
	"fmt"
	"os"

	"scribe/cmd/scribe/cmd"
	"scribe/internal/config"

	// Import providers to register them
	_ "scribe/internal/app/api/gemini"
	_ "scribe/internal/app/api/openai/whisper"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cmd.Execute()
}
