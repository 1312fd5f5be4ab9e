package employee

import (
	"context"
	"fmt"

	"employee-directory-backend/common"
	"employee-directory-backend/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// DynamoStore keeps one item per employee in a DynamoDB table keyed by "id".
// The table has no secondary indexes, so List scans the whole table and
// filters in process.
type DynamoStore struct {
	client    common.DynamoDBAPI
	tableName string
	matcher   NameMatcher
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

var _ Store = (*DynamoStore)(nil)

// NewDynamoStore creates a store over tableName.
func NewDynamoStore(client common.DynamoDBAPI, tableName string, opts ...Option) *DynamoStore {
	o := newOptions(opts)
	return &DynamoStore{
		client:    client,
		tableName: tableName,
		matcher:   o.matcher,
		logger:    o.logger,
		metrics:   o.metrics,
	}
}

func (s *DynamoStore) Get(ctx context.Context, id string) (Employee, bool, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return Employee{}, false, fmt.Errorf("get employee %s: %w", id, err)
	}
	if result.Item == nil {
		return Employee{}, false, nil
	}

	employees, err := DecodeItems([]map[string]types.AttributeValue{result.Item}, FailOnInvalid, nil)
	if err != nil {
		return Employee{}, false, fmt.Errorf("get employee %s: %w", id, err)
	}
	return employees[0], true, nil
}

func (s *DynamoStore) List(ctx context.Context, filterText string) ([]Employee, error) {
	projection := expression.NamesList(
		expression.Name("id"),
		expression.Name("name"),
		expression.Name("age"),
		expression.Name("department"),
		expression.Name("position"),
	)
	expr, err := expression.NewBuilder().WithProjection(projection).Build()
	if err != nil {
		return nil, fmt.Errorf("build scan projection: %w", err)
	}

	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:                aws.String(s.tableName),
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
	})

	var matched []map[string]types.AttributeValue
	scanned := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.tableName, err)
		}
		scanned += len(page.Items)
		for _, item := range page.Items {
			if s.matcher.Match(itemName(item), filterText) {
				matched = append(matched, item)
			}
		}
	}

	employees, _ := DecodeItems(matched, SkipInvalid, func(err error) {
		s.logger.Warn("Skipping malformed employee record", zap.Error(err))
		s.metrics.RecordSkipped()
	})

	s.logger.Debug("Scanned employees",
		zap.String("table", s.tableName),
		zap.String("filterText", filterText),
		zap.Int("scanned", scanned),
		zap.Int("returned", len(employees)),
	)
	return employees, nil
}

func (s *DynamoStore) Put(ctx context.Context, id string, e Employee) error {
	item, err := e.Item(id)
	if err != nil {
		return fmt.Errorf("marshal employee %s: %w", id, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put employee %s: %w", id, err)
	}
	return nil
}

// itemName reads the raw name attribute; anything but a string counts as "".
func itemName(item map[string]types.AttributeValue) string {
	if v, ok := item["name"].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}
