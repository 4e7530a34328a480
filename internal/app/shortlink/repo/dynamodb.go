package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"shorturl.local/internal/app/shortlink"
)

// DynamoAPI 是 DynamoStore 用到的 *dynamodb.Client 方法子集，测试里可以替换成假实现。
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoStore 表结构：hash key id (S)，属性 longUrl / shortUrl / createdAt。
type DynamoStore struct {
	client  DynamoAPI
	table   string
	timeout time.Duration
}

var _ shortlink.Store = (*DynamoStore)(nil)

func NewDynamoStore(client DynamoAPI, table string, timeout time.Duration) *DynamoStore {
	return &DynamoStore{
		client:  client,
		table:   table,
		timeout: orDefault(timeout),
	}
}

// PutIfAbsent 使用条件写 attribute_not_exists(id)，条件失败即 id 已被占用。
func (s *DynamoStore) PutIfAbsent(ctx context.Context, m shortlink.Mapping) error {
	item, err := attributevalue.MarshalMap(toRecord(m))
	if err != nil {
		return fmt.Errorf("encode mapping %s: %w", m.ID, err)
	}
	dctx, cancel := writeContext(ctx, s.timeout)
	defer cancel()

	_, err = s.client.PutItem(dctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return shortlink.ErrAlreadyExists
		}
		slog.Error("dynamodb put failed", "id", m.ID, "err", err)
		return err
	}
	return nil
}

// Get 使用强一致读，保证刚创建的短链立即可跳转。
func (s *DynamoStore) Get(ctx context.Context, id string) (shortlink.Mapping, error) {
	dctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.client.GetItem(dctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		slog.Error("dynamodb get failed", "id", id, "err", err)
		return shortlink.Mapping{}, err
	}
	if len(out.Item) == 0 {
		return shortlink.Mapping{}, shortlink.ErrNotFound
	}
	var r record
	if err := attributevalue.UnmarshalMap(out.Item, &r); err != nil {
		return shortlink.Mapping{}, fmt.Errorf("decode mapping %s: %w", id, err)
	}
	r.ID = id
	return r.mapping(), nil
}

func (s *DynamoStore) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)})
	return err
}
