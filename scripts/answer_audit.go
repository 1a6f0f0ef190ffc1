// Reports questions whose answer options violate the one-correct rule.
//
// The write path only rejects questions with no correct option at all, so
// imports or manual edits can leave multi-correct rows behind. Run this
// after bulk loads.
//
// Usage: go run scripts/answer_audit.go

package main

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"referee_training_backend/internal/config"
	"referee_training_backend/internal/model"
	"referee_training_backend/pkg/database"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("read config: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("parse config: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	var questions []model.Question
	if err := db.Preload("Options").Find(&questions).Error; err != nil {
		log.Fatalf("load questions: %v", err)
	}

	violations := 0
	for _, q := range questions {
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			violations++
			fmt.Printf("question %s: %d correct options (%d total)\n", q.ID, correct, len(q.Options))
		}
	}

	if violations == 0 {
		fmt.Printf("audited %d questions, all carry exactly one correct option\n", len(questions))
		return
	}
	fmt.Printf("audited %d questions, %d violations\n", len(questions), violations)
	os.Exit(1)
}
