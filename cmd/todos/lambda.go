package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
)

func newLambdaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Handle API Gateway proxy events as an AWS Lambda function",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initializeApp(cmd.Context())
			if err != nil {
				return err
			}
			lambda.Start(app.handler.HandleAPIGateway)
			return nil
		},
	}
}
