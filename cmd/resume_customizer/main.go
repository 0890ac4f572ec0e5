// Package main provides the entry point for the resume customizer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_customizer",
	Short: "Customize a LaTeX resume for a job posting and compile it to PDF",
	Long: `resume_customizer rewrites a LaTeX resume to match a specific job description
using a generative AI model, then compiles the result to PDF with the
configured LaTeX toolchain.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
