package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/joho/godotenv"

	"academia/internal/config"
	"academia/internal/database"
	"academia/internal/domain/notification"
	"academia/internal/domain/payment"
	"academia/internal/domain/plan"
	"academia/internal/domain/student"
	"academia/internal/domain/subscription"
	"academia/internal/pkg/clock"
	"academia/internal/scheduler"
)

// One-shot sweep runner for cron. The API process runs the same batch on a
// ticker; this binary exists for deployments that prefer external scheduling.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	clk := clock.System()

	studentService := student.NewService(student.NewRepository(db), clk)
	planService := plan.NewService(plan.NewRepository(db), clk)
	subService := subscription.NewService(subscription.NewRepository(db), planService, studentService, clk)
	dispatcher := notification.NewInAppDispatcher(notification.NewRepository(db), clk)
	payService := payment.NewService(payment.NewRepository(db), studentService, subService, dispatcher, clk, log.Printf)

	sweeper := scheduler.NewSweeper(
		subService,
		payService,
		dispatcher,
		clk,
		cfg.ReminderDays,
		cfg.NotifyTimeout,
		log.Printf,
	)

	report, err := sweeper.RunDailySweep(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatal(err)
	}
}
