package dynamo

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/phrazzld/todos-api/internal/store"
)

// MapError maps a DynamoDB error to a store error, keeping the original in
// the chain.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if IsConditionalCheckFailed(err) {
		return fmt.Errorf("%w: %v", store.ErrConditionFailed, err)
	}

	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: table: %v", store.ErrNotFound, err)
	}

	return err
}

// IsConditionalCheckFailed reports whether err is a rejected condition
// expression.
func IsConditionalCheckFailed(err error) bool {
	var condErr *types.ConditionalCheckFailedException
	return errors.As(err, &condErr)
}
