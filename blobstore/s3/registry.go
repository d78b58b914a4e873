package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrConcurrentPublish is returned when another writer published the same
// version concurrently. Re-read the latest version and retry.
var ErrConcurrentPublish = errors.New("concurrent publish detected")

// ErrModelNotFound is returned when a model has no published versions.
var ErrModelNotFound = errors.New("model not found in registry")

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Registry tracks published model snapshot versions in DynamoDB,
// providing the atomic compare-and-swap semantics that S3 lacks. Each
// publish writes a monotonically increasing version row; the highest
// version is the current model.
//
// Table schema:
//   - Partition key: model (string) - the model name
//   - Sort key: version (number) - monotonically increasing version
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name clustergo-models \
//	  --attribute-definitions AttributeName=model,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=model,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type Registry struct {
	client    DDBClient
	tableName string
}

// NewRegistry creates a new model registry.
func NewRegistry(client DDBClient, tableName string) *Registry {
	return &Registry{
		client:    client,
		tableName: tableName,
	}
}

// Publish records a new snapshot key for the model and returns the
// assigned version. A conditional write guarantees two concurrent
// publishers cannot claim the same version.
func (r *Registry) Publish(ctx context.Context, model, snapshotKey string) (int64, error) {
	latest, _, err := r.latestVersion(ctx, model)
	if err != nil && !errors.Is(err, ErrModelNotFound) {
		return 0, err
	}
	version := latest + 1

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item: map[string]ddbtypes.AttributeValue{
			"model":        &ddbtypes.AttributeValueMemberS{Value: model},
			"version":      &ddbtypes.AttributeValueMemberN{Value: strconv.FormatInt(version, 10)},
			"snapshot_key": &ddbtypes.AttributeValueMemberS{Value: snapshotKey},
		},
		ConditionExpression: aws.String("attribute_not_exists(model) AND attribute_not_exists(version)"),
	})
	if err != nil {
		var cond *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return 0, fmt.Errorf("%w: version %d already published", ErrConcurrentPublish, version)
		}
		return 0, err
	}

	return version, nil
}

// Latest returns the snapshot key and version of the newest published
// model. Returns ErrModelNotFound if nothing has been published.
func (r *Registry) Latest(ctx context.Context, model string) (string, int64, error) {
	version, key, err := r.latestVersion(ctx, model)
	if err != nil {
		return "", 0, err
	}
	return key, version, nil
}

func (r *Registry) latestVersion(ctx context.Context, model string) (int64, string, error) {
	resp, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("#m = :model"),
		ExpressionAttributeNames: map[string]string{
			"#m": "model",
		},
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":model": &ddbtypes.AttributeValueMemberS{Value: model},
		},
		ScanIndexForward: aws.Bool(false), // newest first
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", err
	}
	if len(resp.Items) == 0 {
		return 0, "", ErrModelNotFound
	}

	item := resp.Items[0]
	vAttr, ok := item["version"].(*ddbtypes.AttributeValueMemberN)
	if !ok {
		return 0, "", fmt.Errorf("malformed registry item: missing version")
	}
	version, err := strconv.ParseInt(vAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("malformed registry item: %w", err)
	}

	var key string
	if kAttr, ok := item["snapshot_key"].(*ddbtypes.AttributeValueMemberS); ok {
		key = kAttr.Value
	}

	return version, key, nil
}
