package subm

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"
)

// SubmissionRow is the DynamoDB representation of a submission.
type SubmissionRow struct {
	Uuid       string        `dynamo:"uuid,hash"` // Primary key
	StudentId  string        `dynamo:"student_id"`
	ExamId     string        `dynamo:"exam_id"`
	Module     string        `dynamo:"module"`
	Responses  []ResponseRow `dynamo:"responses"`
	MediaUrls  []string      `dynamo:"media_urls"`
	TotalScore int           `dynamo:"total_score"`
	Status     string        `dynamo:"status"`
	ReviewedBy *string       `dynamo:"reviewed_by"`
	ReviewedAt *time.Time    `dynamo:"reviewed_at"`
	CreatedAt  time.Time     `dynamo:"created_at"`
	Version    int64         `dynamo:"version"` // For optimistic locking
}

type ResponseRow struct {
	TaskId     string  `dynamo:"task_id"`
	QuestionId *string `dynamo:"question_id"`
	Answer     string  `dynamo:"answer"`
	Score      int     `dynamo:"score"`
	MaxScore   int     `dynamo:"max_score"`
	Feedback   string  `dynamo:"feedback"`
}

// DynamoDbSubmTable represents the DynamoDB table.
type DynamoDbSubmTable struct {
	ddbClient *dynamodb.Client
	tableName string
	submTable *dynamo.Table
}

// NewDynamoDbSubmTable initializes a new DynamoDbSubmTable.
func NewDynamoDbSubmTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbSubmTable {
	ddb := &DynamoDbSubmTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.submTable = &table

	return ddb
}

// Create inserts a fresh submission; it fails if the id already exists.
func (ddb *DynamoDbSubmTable) Create(ctx context.Context, s *Submission) error {
	row := rowFromSubmission(s)
	row.Version = 1

	put := ddb.submTable.Put(row).If("attribute_not_exists(version)")
	return put.Run(ctx)
}

// Get retrieves a submission by id, returning nil when it is absent.
func (ddb *DynamoDbSubmTable) Get(ctx context.Context, id string) (*Submission, error) {
	row := new(SubmissionRow)

	err := ddb.submTable.Get("uuid", id).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return submissionFromRow(row), nil
}

// Save overwrites a submission. Concurrent reviews of the same
// submission are last-write-wins.
func (ddb *DynamoDbSubmTable) Save(ctx context.Context, s *Submission) error {
	row := rowFromSubmission(s)

	var existing SubmissionRow
	err := ddb.submTable.Get("uuid", s.ID).One(ctx, &existing)
	if err != nil && !errors.Is(err, dynamo.ErrNotFound) {
		return err
	}

	row.Version = existing.Version + 1
	return ddb.submTable.Put(row).Run(ctx)
}

func (ddb *DynamoDbSubmTable) List(ctx context.Context) ([]*Submission, error) {
	var rows []*SubmissionRow
	err := ddb.submTable.Scan().All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	subms := make([]*Submission, 0, len(rows))
	for _, row := range rows {
		subms = append(subms, submissionFromRow(row))
	}
	return subms, nil
}

func rowFromSubmission(s *Submission) *SubmissionRow {
	responses := make([]ResponseRow, 0, len(s.Responses))
	for _, r := range s.Responses {
		responses = append(responses, ResponseRow{
			TaskId:     r.TaskID,
			QuestionId: r.QuestionID,
			Answer:     r.Answer,
			Score:      r.Score,
			MaxScore:   r.MaxScore,
			Feedback:   r.Feedback,
		})
	}
	return &SubmissionRow{
		Uuid:       s.ID,
		StudentId:  s.StudentID,
		ExamId:     s.ExamID,
		Module:     s.Module,
		Responses:  responses,
		MediaUrls:  s.MediaURLs,
		TotalScore: s.TotalScore,
		Status:     s.Status,
		ReviewedBy: s.ReviewedBy,
		ReviewedAt: s.ReviewedAt,
		CreatedAt:  s.CreatedAt,
	}
}

func submissionFromRow(row *SubmissionRow) *Submission {
	responses := make([]Response, 0, len(row.Responses))
	for _, r := range row.Responses {
		responses = append(responses, Response{
			TaskID:     r.TaskId,
			QuestionID: r.QuestionId,
			Answer:     r.Answer,
			Score:      r.Score,
			MaxScore:   r.MaxScore,
			Feedback:   r.Feedback,
		})
	}
	return &Submission{
		ID:         row.Uuid,
		StudentID:  row.StudentId,
		ExamID:     row.ExamId,
		Module:     row.Module,
		Responses:  responses,
		MediaURLs:  row.MediaUrls,
		TotalScore: row.TotalScore,
		Status:     row.Status,
		ReviewedBy: row.ReviewedBy,
		ReviewedAt: row.ReviewedAt,
		CreatedAt:  row.CreatedAt,
	}
}
