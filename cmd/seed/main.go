// Command seed loads task and exam definitions from TOML manifests
// into the catalog. Intended for bootstrapping fresh environments.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/aeiou-exam/backend/exam"
	"github.com/aeiou-exam/backend/task"
)

type questionManifest struct {
	Prompt        string   `toml:"prompt"`
	Options       []string `toml:"options"`
	CorrectAnswer string   `toml:"correct_answer"`
	Points        int      `toml:"points"`
	Kind          string   `toml:"kind"`
}

type taskManifest struct {
	Key             string             `toml:"key"` // referenced by exam manifests
	Title           string             `toml:"title"`
	Module          string             `toml:"module"`
	Type            string             `toml:"type"`
	Instruction     string             `toml:"instruction"`
	Content         string             `toml:"content"`
	MediaUrl        string             `toml:"media_url"`
	ImageUrl        string             `toml:"image_url"`
	DurationMinutes int                `toml:"duration_minutes"`
	Points          int                `toml:"points"`
	Questions       []questionManifest `toml:"questions"`
}

type examModuleManifest struct {
	Name            string   `toml:"name"`
	DurationMinutes int      `toml:"duration_minutes"`
	BufferMinutes   int      `toml:"buffer_minutes"`
	TaskKeys        []string `toml:"task_keys"`
}

type examManifest struct {
	Title      string               `toml:"title"`
	Level      string               `toml:"level"`
	TotalMarks int                  `toml:"total_marks"`
	Active     bool                 `toml:"active"`
	Modules    []examModuleManifest `toml:"modules"`
}

type seedManifest struct {
	Tasks []taskManifest `toml:"tasks"`
	Exams []examManifest `toml:"exams"`
}

func main() {
	dir := flag.String("dir", "seed", "directory with .toml manifests")
	flag.Parse()

	_ = godotenv.Load()

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "eu-central-1"
	}

	ctx := context.Background()
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		log.Fatalf("failed to load AWS config: %v", err)
	}
	ddbClient := dynamodb.NewFromConfig(cfg)

	taskSrvc := task.NewTaskSrvc(task.NewDynamoDbTaskTable(ddbClient, tableName("DDB_TASKS_TABLE", "aeiou_tasks")))
	examSrvc := exam.NewExamSrvc(exam.NewDynamoDbExamTable(ddbClient, tableName("DDB_EXAMS_TABLE", "aeiou_exams")))

	paths, err := filepath.Glob(filepath.Join(*dir, "*.toml"))
	if err != nil {
		log.Fatalf("failed to list manifests: %v", err)
	}
	if len(paths) == 0 {
		log.Fatalf("no .toml manifests found in %s", *dir)
	}

	for _, path := range paths {
		if err := seedFromFile(ctx, path, taskSrvc, examSrvc); err != nil {
			log.Fatalf("failed to seed from %s: %v", path, err)
		}
	}
}

func seedFromFile(ctx context.Context, path string, taskSrvc *task.TaskSrvc, examSrvc *exam.ExamSrvc) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var manifest seedManifest
	if err := toml.Unmarshal(content, &manifest); err != nil {
		return err
	}

	keyToTaskID := make(map[string]string)

	for _, tm := range manifest.Tasks {
		questions := make([]task.QuestionParams, 0, len(tm.Questions))
		for _, qm := range tm.Questions {
			options := make([]task.Option, 0, len(qm.Options))
			for i, text := range qm.Options {
				options = append(options, task.Option{
					ID:   string(rune('a' + i)),
					Text: text,
				})
			}
			var correct *string
			if qm.CorrectAnswer != "" {
				answer := qm.CorrectAnswer
				correct = &answer
			}
			questions = append(questions, task.QuestionParams{
				Prompt:        qm.Prompt,
				Options:       options,
				CorrectAnswer: correct,
				Points:        qm.Points,
				Kind:          qm.Kind,
			})
		}

		created, err := taskSrvc.CreateTask(ctx, task.CreateTaskParams{
			Title:           tm.Title,
			Module:          tm.Module,
			Type:            tm.Type,
			Instruction:     tm.Instruction,
			Content:         tm.Content,
			Questions:       questions,
			MediaURL:        strPtrOrNil(tm.MediaUrl),
			ImageURL:        strPtrOrNil(tm.ImageUrl),
			DurationMinutes: tm.DurationMinutes,
			Points:          tm.Points,
			CreatedBy:       "seed",
		})
		if err != nil {
			return err
		}
		if tm.Key != "" {
			keyToTaskID[tm.Key] = created.ID
		}
		log.Printf("seeded task %q (%s)", created.Title, created.ID)
	}

	for _, em := range manifest.Exams {
		modules := make([]exam.ModuleParams, 0, len(em.Modules))
		for _, mm := range em.Modules {
			taskIDs := make([]string, 0, len(mm.TaskKeys))
			for _, key := range mm.TaskKeys {
				id, ok := keyToTaskID[key]
				if !ok {
					log.Printf("warning: exam %q references unknown task key %q", em.Title, key)
					continue
				}
				taskIDs = append(taskIDs, id)
			}
			modules = append(modules, exam.ModuleParams{
				Name:            mm.Name,
				DurationMinutes: mm.DurationMinutes,
				BufferMinutes:   mm.BufferMinutes,
				TaskIDs:         taskIDs,
			})
		}

		created, err := examSrvc.CreateExam(ctx, exam.CreateExamParams{
			Title:      em.Title,
			Level:      em.Level,
			Modules:    modules,
			TotalMarks: em.TotalMarks,
			IsActive:   em.Active,
			CreatedBy:  "seed",
		})
		if err != nil {
			return err
		}
		log.Printf("seeded exam %q (%s)", created.Title, created.ID)
	}

	return nil
}

func tableName(env, def string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
