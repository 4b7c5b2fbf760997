package task

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"
)

// TaskRow is the DynamoDB representation of a catalog task.
type TaskRow struct {
	Uuid        string        `dynamo:"uuid,hash"` // Primary key
	Title       string        `dynamo:"title"`
	Module      string        `dynamo:"module"`
	TaskType    string        `dynamo:"task_type"`
	Instruction string        `dynamo:"instruction"`
	Content     string        `dynamo:"content"`
	Questions   []QuestionRow `dynamo:"questions"`
	MediaUrl    *string       `dynamo:"media_url"`
	ImageUrl    *string       `dynamo:"image_url"`

	DurationMinutes int `dynamo:"duration_minutes"`
	Points          int `dynamo:"points"`
	MaxFiles        int `dynamo:"max_files"`
	MaxFileSizeMb   int `dynamo:"max_file_size_mb"`

	CreatedBy string    `dynamo:"created_by"`
	IsActive  bool      `dynamo:"is_active"`
	CreatedAt time.Time `dynamo:"created_at"`
	Version   int64     `dynamo:"version"` // For optimistic locking
}

type QuestionRow struct {
	Uuid          string      `dynamo:"uuid"`
	Prompt        string      `dynamo:"prompt"`
	Options       []OptionRow `dynamo:"options"`
	CorrectAnswer *string     `dynamo:"correct_answer"`
	Points        int         `dynamo:"points"`
	Kind          string      `dynamo:"kind"`
}

type OptionRow struct {
	Id   string `dynamo:"id"`
	Text string `dynamo:"text"`
}

// DynamoDbTaskTable represents the DynamoDB table.
type DynamoDbTaskTable struct {
	ddbClient *dynamodb.Client
	tableName string
	taskTable *dynamo.Table
}

// NewDynamoDbTaskTable initializes a new DynamoDbTaskTable.
func NewDynamoDbTaskTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbTaskTable {
	ddb := &DynamoDbTaskTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.taskTable = &table

	return ddb
}

// Store saves a task with optimistic locking.
func (ddb *DynamoDbTaskTable) Store(ctx context.Context, t *Task) error {
	row := rowFromTask(t)

	var existing TaskRow
	err := ddb.taskTable.Get("uuid", t.ID).One(ctx, &existing)
	if err != nil && !errors.Is(err, dynamo.ErrNotFound) {
		return err
	}

	row.Version = existing.Version + 1
	put := ddb.taskTable.Put(row).If("attribute_not_exists(version) OR version = ?", row.Version-1)
	return put.Run(ctx)
}

// Get retrieves a task by id, returning nil when it does not exist.
func (ddb *DynamoDbTaskTable) Get(ctx context.Context, id string) (*Task, error) {
	row := new(TaskRow)

	err := ddb.taskTable.Get("uuid", id).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return taskFromRow(row), nil
}

func (ddb *DynamoDbTaskTable) List(ctx context.Context) ([]*Task, error) {
	var rows []*TaskRow
	err := ddb.taskTable.Scan().All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	tasks := make([]*Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, taskFromRow(row))
	}
	return tasks, nil
}

func rowFromTask(t *Task) *TaskRow {
	questions := make([]QuestionRow, 0, len(t.Questions))
	for _, q := range t.Questions {
		options := make([]OptionRow, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, OptionRow{Id: o.ID, Text: o.Text})
		}
		questions = append(questions, QuestionRow{
			Uuid:          q.ID,
			Prompt:        q.Prompt,
			Options:       options,
			CorrectAnswer: q.CorrectAnswer,
			Points:        q.Points,
			Kind:          q.Kind,
		})
	}
	return &TaskRow{
		Uuid:            t.ID,
		Title:           t.Title,
		Module:          t.Module,
		TaskType:        t.Type,
		Instruction:     t.Instruction,
		Content:         t.Content,
		Questions:       questions,
		MediaUrl:        t.MediaURL,
		ImageUrl:        t.ImageURL,
		DurationMinutes: t.DurationMinutes,
		Points:          t.Points,
		MaxFiles:        t.MaxFiles,
		MaxFileSizeMb:   t.MaxFileSizeMB,
		CreatedBy:       t.CreatedBy,
		IsActive:        t.IsActive,
		CreatedAt:       t.CreatedAt,
	}
}

func taskFromRow(row *TaskRow) *Task {
	questions := make([]Question, 0, len(row.Questions))
	for _, q := range row.Questions {
		options := make([]Option, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, Option{ID: o.Id, Text: o.Text})
		}
		questions = append(questions, Question{
			ID:            q.Uuid,
			Prompt:        q.Prompt,
			Options:       options,
			CorrectAnswer: q.CorrectAnswer,
			Points:        q.Points,
			Kind:          q.Kind,
		})
	}
	return &Task{
		ID:              row.Uuid,
		Title:           row.Title,
		Module:          row.Module,
		Type:            row.TaskType,
		Instruction:     row.Instruction,
		Content:         row.Content,
		Questions:       questions,
		MediaURL:        row.MediaUrl,
		ImageURL:        row.ImageUrl,
		DurationMinutes: row.DurationMinutes,
		Points:          row.Points,
		MaxFiles:        row.MaxFiles,
		MaxFileSizeMB:   row.MaxFileSizeMb,
		CreatedBy:       row.CreatedBy,
		IsActive:        row.IsActive,
		CreatedAt:       row.CreatedAt,
	}
}
