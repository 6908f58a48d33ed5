// Package table writes metadata rows to a DynamoDB table.
package table

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Row is one item as stored in the table. FileSize is written as a number.
type Row struct {
	ID        string
	Account   string
	Detail    string
	FileName  string
	FileSize  int64
	Uploader  string
	Timestamp string
}

// PutItemAPI is the slice of the DynamoDB client the writer needs.
type PutItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Writer persists rows.
type Writer interface {
	Put(ctx context.Context, row Row) error
}

// DynamoWriter writes rows with PutItem. The client is built on first use and
// kept for the life of the process.
type DynamoWriter struct {
	name    string
	connect func(ctx context.Context) (PutItemAPI, error)

	mu     sync.Mutex
	client PutItemAPI
}

// NewDynamoWriter returns a writer for the named table that loads the default
// AWS configuration lazily.
func NewDynamoWriter(name, region string) *DynamoWriter {
	return NewLazyWriter(name, func(ctx context.Context) (PutItemAPI, error) {
		var opts []func(*awsconfig.LoadOptions) error
		if region != "" {
			opts = append(opts, awsconfig.WithRegion(region))
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return dynamodb.NewFromConfig(cfg), nil
	})
}

// NewLazyWriter returns a writer whose client comes from connect on the first
// Put. A failed connect is not cached.
func NewLazyWriter(name string, connect func(ctx context.Context) (PutItemAPI, error)) *DynamoWriter {
	return &DynamoWriter{name: name, connect: connect}
}

func (w *DynamoWriter) clientFor(ctx context.Context) (PutItemAPI, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.client != nil {
		return w.client, nil
	}
	cl, err := w.connect(ctx)
	if err != nil {
		return nil, err
	}
	w.client = cl
	return cl, nil
}

// Put writes row keyed by its ID.
func (w *DynamoWriter) Put(ctx context.Context, row Row) error {
	if w.name == "" {
		return errors.New("table name is not configured")
	}

	cl, err := w.clientFor(ctx)
	if err != nil {
		return err
	}

	_, err = cl.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(w.name),
		Item:      Item(row),
	})
	if err != nil {
		return fmt.Errorf("put item into %s: %w", w.name, err)
	}
	return nil
}

// Item renders row as a DynamoDB attribute map.
func Item(row Row) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"Id":        &types.AttributeValueMemberS{Value: row.ID},
		"Account":   &types.AttributeValueMemberS{Value: row.Account},
		"Detail":    &types.AttributeValueMemberS{Value: row.Detail},
		"FileName":  &types.AttributeValueMemberS{Value: row.FileName},
		"FileSize":  &types.AttributeValueMemberN{Value: strconv.FormatInt(row.FileSize, 10)},
		"Uploader":  &types.AttributeValueMemberS{Value: row.Uploader},
		"Timestamp": &types.AttributeValueMemberS{Value: row.Timestamp},
	}
}
