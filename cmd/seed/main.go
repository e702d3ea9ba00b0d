package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"academia/internal/config"
	"academia/internal/database"
	"academia/internal/domain/article"
	"academia/internal/domain/auth"
	"academia/internal/domain/checkin"
	"academia/internal/domain/notification"
	"academia/internal/domain/payment"
	"academia/internal/domain/plan"
	"academia/internal/domain/student"
	"academia/internal/domain/subscription"
	"academia/internal/domain/workout"
)

// Seeds the database with demo data for local development.
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

	if err := db.AutoMigrate(
		&auth.Staff{},
		&student.Student{},
		&plan.Plan{},
		&subscription.Subscription{},
		&payment.Payment{},
		&checkin.Checkin{},
		&notification.Notification{},
		&workout.Exercise{},
		&workout.Workout{},
		&workout.WorkoutItem{},
		&article.Article{},
	); err != nil {
		log.Fatal(err)
	}

	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	admin := &auth.Staff{
		Name:         "Admin",
		Email:        "admin@academia.local",
		PasswordHash: string(hash),
		Role:         auth.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(admin).Error; err != nil {
		log.Fatal(err)
	}

	plans := []*plan.Plan{
		{Name: "Mensal", Description: "Acesso livre por 30 dias", Price: 120, DurationDays: 30, IsActive: true, CreatedAt: now, UpdatedAt: now},
		{Name: "Trimestral", Description: "Acesso livre por 90 dias", Price: 320, DurationDays: 90, DiscountPercent: 10, IsActive: true, CreatedAt: now, UpdatedAt: now},
		{Name: "Anual", Description: "Acesso livre por 365 dias", Price: 1100, DurationDays: 365, DiscountPercent: 15, IsActive: true, CreatedAt: now, UpdatedAt: now},
	}
	for _, p := range plans {
		if err := db.Where("name = ?", p.Name).FirstOrCreate(p).Error; err != nil {
			log.Fatal(err)
		}
	}

	students := []*student.Student{
		{Name: "Maria Silva", Email: "maria@example.com", Phone: "+55 11 91234-5678", Status: student.StatusActive, CreatedAt: now, UpdatedAt: now},
		{Name: "João Souza", Email: "joao@example.com", Phone: "+55 11 99876-5432", Status: student.StatusActive, CreatedAt: now, UpdatedAt: now},
	}
	for _, st := range students {
		if err := db.Where("email = ?", st.Email).FirstOrCreate(st).Error; err != nil {
			log.Fatal(err)
		}
	}

	monthly := plans[0]
	sub := &subscription.Subscription{
		StudentID:  students[0].ID,
		PlanID:     monthly.ID,
		StartDate:  now.AddDate(0, 0, -5),
		EndDate:    now.AddDate(0, 0, 25),
		Price:      monthly.Price,
		FinalPrice: monthly.FinalPrice(),
		Status:     subscription.StatusActive,
		AutoRenew:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := db.Where("student_id = ? AND plan_id = ?", sub.StudentID, sub.PlanID).FirstOrCreate(sub).Error; err != nil {
		log.Fatal(err)
	}

	paidAt := now.AddDate(0, 0, -5)
	pay := &payment.Payment{
		StudentID:      students[0].ID,
		SubscriptionID: &sub.ID,
		Amount:         monthly.Price,
		FinalAmount:    monthly.FinalPrice(),
		Method:         payment.MethodPix,
		Status:         payment.StatusPaid,
		DueDate:        paidAt,
		PaidAt:         &paidAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := db.Where("student_id = ? AND subscription_id = ?", pay.StudentID, sub.ID).FirstOrCreate(pay).Error; err != nil {
		log.Fatal(err)
	}

	exercises := []*workout.Exercise{
		{Name: "Supino reto", MuscleGroup: "peito", Equipment: "barra", CreatedAt: now},
		{Name: "Agachamento livre", MuscleGroup: "pernas", Equipment: "barra", CreatedAt: now},
		{Name: "Remada curvada", MuscleGroup: "costas", Equipment: "barra", CreatedAt: now},
	}
	for _, e := range exercises {
		if err := db.Where("name = ?", e.Name).FirstOrCreate(e).Error; err != nil {
			log.Fatal(err)
		}
	}

	log.Println("seed complete: admin@academia.local / admin123")
}
