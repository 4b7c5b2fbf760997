package userdetail

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"
)

// DetailRow is the DynamoDB representation of a profile.
type DetailRow struct {
	UserUuid             string    `dynamo:"user_uuid,hash"` // Primary key
	Fullname             string    `dynamo:"fullname"`
	Age                  int       `dynamo:"age"`
	Gender               string    `dynamo:"gender"`
	MotherTongue         []string  `dynamo:"mother_tongue"`
	LanguagesKnown       []string  `dynamo:"languages_known"`
	HighestQualification string    `dynamo:"highest_qualification"`
	Section              string    `dynamo:"section"`
	Residence            string    `dynamo:"residence"`
	CreatedAt            time.Time `dynamo:"created_at"`
	UpdatedAt            time.Time `dynamo:"updated_at"`
	Version              int64     `dynamo:"version"` // For optimistic locking
}

type DynamoDbDetailTable struct {
	ddbClient   *dynamodb.Client
	tableName   string
	detailTable *dynamo.Table
}

func NewDynamoDbDetailTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbDetailTable {
	ddb := &DynamoDbDetailTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.detailTable = &table

	return ddb
}

func (ddb *DynamoDbDetailTable) Store(ctx context.Context, d *Detail) error {
	row := rowFromDetail(d)

	var existing DetailRow
	err := ddb.detailTable.Get("user_uuid", d.UserID).One(ctx, &existing)
	if err != nil && !errors.Is(err, dynamo.ErrNotFound) {
		return err
	}

	row.Version = existing.Version + 1
	put := ddb.detailTable.Put(row).If("attribute_not_exists(version) OR version = ?", row.Version-1)
	return put.Run(ctx)
}

func (ddb *DynamoDbDetailTable) Get(ctx context.Context, userID string) (*Detail, error) {
	row := new(DetailRow)

	err := ddb.detailTable.Get("user_uuid", userID).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return detailFromRow(row), nil
}

func (ddb *DynamoDbDetailTable) Delete(ctx context.Context, userID string) error {
	return ddb.detailTable.Delete("user_uuid", userID).Run(ctx)
}

func (ddb *DynamoDbDetailTable) List(ctx context.Context) ([]*Detail, error) {
	var rows []*DetailRow
	err := ddb.detailTable.Scan().All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	details := make([]*Detail, 0, len(rows))
	for _, row := range rows {
		details = append(details, detailFromRow(row))
	}
	return details, nil
}

func rowFromDetail(d *Detail) *DetailRow {
	return &DetailRow{
		UserUuid:             d.UserID,
		Fullname:             d.Fullname,
		Age:                  d.Age,
		Gender:               d.Gender,
		MotherTongue:         d.MotherTongue,
		LanguagesKnown:       d.LanguagesKnown,
		HighestQualification: d.HighestQualification,
		Section:              d.Section,
		Residence:            d.Residence,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

func detailFromRow(row *DetailRow) *Detail {
	return &Detail{
		UserID:               row.UserUuid,
		Fullname:             row.Fullname,
		Age:                  row.Age,
		Gender:               row.Gender,
		MotherTongue:         row.MotherTongue,
		LanguagesKnown:       row.LanguagesKnown,
		HighestQualification: row.HighestQualification,
		Section:              row.Section,
		Residence:            row.Residence,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
}
