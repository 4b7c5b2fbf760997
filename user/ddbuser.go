package user

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"
)

// UserRow is the DynamoDB representation of an account.
type UserRow struct {
	Uuid        string    `dynamo:"uuid,hash"` // Primary key
	Name        string    `dynamo:"name"`
	Email       string    `dynamo:"email" index:"email-index,hash"`
	BcryptPwd   []byte    `dynamo:"bcrypt_pwd"`
	Role        string    `dynamo:"role"`
	LoginMethod string    `dynamo:"login_method"`
	IsVerified  bool      `dynamo:"is_verified"`
	CreatedAt   time.Time `dynamo:"created_at"`
	Version     int64     `dynamo:"version"` // For optimistic locking
}

type DynamoDbUserTable struct {
	ddbClient *dynamodb.Client
	tableName string
	userTable *dynamo.Table
}

func NewDynamoDbUserTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbUserTable {
	ddb := &DynamoDbUserTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.userTable = &table

	return ddb
}

// Store saves a user with optimistic locking.
func (ddb *DynamoDbUserTable) Store(ctx context.Context, u *User) error {
	row := rowFromUser(u)

	var existing UserRow
	err := ddb.userTable.Get("uuid", u.ID).One(ctx, &existing)
	if err != nil && !errors.Is(err, dynamo.ErrNotFound) {
		return err
	}

	row.Version = existing.Version + 1
	put := ddb.userTable.Put(row).If("attribute_not_exists(version) OR version = ?", row.Version-1)
	return put.Run(ctx)
}

// Get retrieves a user by id, returning nil when it does not exist.
func (ddb *DynamoDbUserTable) Get(ctx context.Context, id string) (*User, error) {
	row := new(UserRow)

	err := ddb.userTable.Get("uuid", id).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return userFromRow(row), nil
}

// GetByEmail looks a user up via the email GSI.
func (ddb *DynamoDbUserTable) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := new(UserRow)

	err := ddb.userTable.Get("email", email).Index("email-index").One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return userFromRow(row), nil
}

func (ddb *DynamoDbUserTable) List(ctx context.Context) ([]*User, error) {
	var rows []*UserRow
	err := ddb.userTable.Scan().All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, userFromRow(row))
	}
	return users, nil
}

func rowFromUser(u *User) *UserRow {
	return &UserRow{
		Uuid:        u.ID,
		Name:        u.Name,
		Email:       u.Email,
		BcryptPwd:   u.BcryptPwd,
		Role:        u.Role,
		LoginMethod: u.LoginMethod,
		IsVerified:  u.IsVerified,
		CreatedAt:   u.CreatedAt,
	}
}

func userFromRow(row *UserRow) *User {
	return &User{
		ID:          row.Uuid,
		Name:        row.Name,
		Email:       row.Email,
		BcryptPwd:   row.BcryptPwd,
		Role:        row.Role,
		LoginMethod: row.LoginMethod,
		IsVerified:  row.IsVerified,
		CreatedAt:   row.CreatedAt,
	}
}
