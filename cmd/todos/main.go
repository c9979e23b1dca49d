// Package main is the todos binary. It serves the task API as an AWS Lambda
// function behind API Gateway, or over plain HTTP for local use, and runs
// database migrations for the postgres backend.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "todos",
	Short:        "todos - task list API",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newServeCmd(), newLambdaCmd(), newMigrateCmd())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
