package exam

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"
)

// ExamRow is the DynamoDB representation of an exam.
type ExamRow struct {
	Uuid       string          `dynamo:"uuid,hash"` // Primary key
	Title      string          `dynamo:"title"`
	Level      string          `dynamo:"level"`
	Modules    []ExamModuleRow `dynamo:"modules"`
	TotalMarks int             `dynamo:"total_marks"`
	IsActive   bool            `dynamo:"is_active"`
	CreatedBy  string          `dynamo:"created_by"`
	CreatedAt  time.Time       `dynamo:"created_at"`
	Version    int64           `dynamo:"version"` // For optimistic locking
}

type ExamModuleRow struct {
	Name            string   `dynamo:"name"`
	DurationMinutes int      `dynamo:"duration_minutes"`
	BufferMinutes   int      `dynamo:"buffer_minutes"`
	TaskIds         []string `dynamo:"task_ids"`
}

// DynamoDbExamTable represents the DynamoDB table.
type DynamoDbExamTable struct {
	ddbClient *dynamodb.Client
	tableName string
	examTable *dynamo.Table
}

// NewDynamoDbExamTable initializes a new DynamoDbExamTable.
func NewDynamoDbExamTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbExamTable {
	ddb := &DynamoDbExamTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.examTable = &table

	return ddb
}

// Store saves an exam with optimistic locking.
func (ddb *DynamoDbExamTable) Store(ctx context.Context, e *Exam) error {
	row := rowFromExam(e)

	var existing ExamRow
	err := ddb.examTable.Get("uuid", e.ID).One(ctx, &existing)
	if err != nil && !errors.Is(err, dynamo.ErrNotFound) {
		return err
	}

	row.Version = existing.Version + 1
	put := ddb.examTable.Put(row).If("attribute_not_exists(version) OR version = ?", row.Version-1)
	return put.Run(ctx)
}

// Get retrieves an exam by id, returning nil when it does not exist.
func (ddb *DynamoDbExamTable) Get(ctx context.Context, id string) (*Exam, error) {
	row := new(ExamRow)

	err := ddb.examTable.Get("uuid", id).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return examFromRow(row), nil
}

func (ddb *DynamoDbExamTable) List(ctx context.Context) ([]*Exam, error) {
	var rows []*ExamRow
	err := ddb.examTable.Scan().All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	exams := make([]*Exam, 0, len(rows))
	for _, row := range rows {
		exams = append(exams, examFromRow(row))
	}
	return exams, nil
}

func rowFromExam(e *Exam) *ExamRow {
	modules := make([]ExamModuleRow, 0, len(e.Modules))
	for _, m := range e.Modules {
		modules = append(modules, ExamModuleRow{
			Name:            m.Name,
			DurationMinutes: m.DurationMinutes,
			BufferMinutes:   m.BufferMinutes,
			TaskIds:         m.TaskIDs,
		})
	}
	return &ExamRow{
		Uuid:       e.ID,
		Title:      e.Title,
		Level:      e.Level,
		Modules:    modules,
		TotalMarks: e.TotalMarks,
		IsActive:   e.IsActive,
		CreatedBy:  e.CreatedBy,
		CreatedAt:  e.CreatedAt,
	}
}

func examFromRow(row *ExamRow) *Exam {
	modules := make([]ExamModule, 0, len(row.Modules))
	for _, m := range row.Modules {
		modules = append(modules, ExamModule{
			Name:            m.Name,
			DurationMinutes: m.DurationMinutes,
			BufferMinutes:   m.BufferMinutes,
			TaskIDs:         m.TaskIds,
		})
	}
	return &Exam{
		ID:         row.Uuid,
		Title:      row.Title,
		Level:      row.Level,
		Modules:    modules,
		TotalMarks: row.TotalMarks,
		IsActive:   row.IsActive,
		CreatedBy:  row.CreatedBy,
		CreatedAt:  row.CreatedAt,
	}
}
