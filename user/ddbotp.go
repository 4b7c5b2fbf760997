package user

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"
)

// OtpRow is the DynamoDB representation of a one-time code. The ttl
// attribute lets DynamoDB expire stale rows on its own.
type OtpRow struct {
	Email       string    `dynamo:"email,hash"`          // Primary key
	CreatedAtNs int64     `dynamo:"created_at_ns,range"` // Sort key
	Code        string    `dynamo:"code"`
	Purpose     string    `dynamo:"purpose"`
	ExpiresAt   time.Time `dynamo:"expires_at"`
	Attempts    int       `dynamo:"attempts"`
	MaxAttempts int       `dynamo:"max_attempts"`
	Ttl         time.Time `dynamo:"ttl,unixtime"`
}

type DynamoDbOtpTable struct {
	ddbClient *dynamodb.Client
	tableName string
	otpTable  *dynamo.Table
}

func NewDynamoDbOtpTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbOtpTable {
	ddb := &DynamoDbOtpTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.otpTable = &table

	return ddb
}

func (ddb *DynamoDbOtpTable) Store(ctx context.Context, otp *OTP) error {
	row := &OtpRow{
		Email:       otp.Email,
		CreatedAtNs: otp.CreatedAt.UnixNano(),
		Code:        otp.Code,
		Purpose:     otp.Purpose,
		ExpiresAt:   otp.ExpiresAt,
		Attempts:    otp.Attempts,
		MaxAttempts: otp.MaxAttempts,
		Ttl:         otp.ExpiresAt.Add(time.Hour),
	}
	return ddb.otpTable.Put(row).Run(ctx)
}

// Latest returns the newest code for the email+purpose pair.
func (ddb *DynamoDbOtpTable) Latest(ctx context.Context, email string, purpose string) (*OTP, error) {
	var rows []*OtpRow
	err := ddb.otpTable.Get("email", email).
		Order(dynamo.Descending).
		All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row.Purpose != purpose {
			continue
		}
		return otpFromRow(row), nil
	}
	return nil, nil
}

func (ddb *DynamoDbOtpTable) DeleteAll(ctx context.Context, email string, purpose string) error {
	var rows []*OtpRow
	err := ddb.otpTable.Get("email", email).All(ctx, &rows)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if row.Purpose != purpose {
			continue
		}
		err := ddb.otpTable.Delete("email", row.Email).
			Range("created_at_ns", row.CreatedAtNs).
			Run(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

func otpFromRow(row *OtpRow) *OTP {
	return &OTP{
		Email:       row.Email,
		Code:        row.Code,
		Purpose:     row.Purpose,
		ExpiresAt:   row.ExpiresAt,
		Attempts:    row.Attempts,
		MaxAttempts: row.MaxAttempts,
		CreatedAt:   time.Unix(0, row.CreatedAtNs),
	}
}
