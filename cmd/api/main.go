package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"academia/internal/config"
	"academia/internal/database"
	"academia/internal/domain/article"
	"academia/internal/domain/auth"
	"academia/internal/domain/checkin"
	"academia/internal/domain/feed"
	"academia/internal/domain/notification"
	"academia/internal/domain/payment"
	"academia/internal/domain/plan"
	"academia/internal/domain/student"
	"academia/internal/domain/subscription"
	"academia/internal/domain/workout"
	"academia/internal/middleware"
	"academia/internal/pkg/clock"
	jwtsvc "academia/internal/pkg/jwt"
	"academia/internal/pkg/response"
	"academia/internal/scheduler"
)

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

	clk := clock.System()
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	staffRepo := auth.NewRepository(db)
	studentRepo := student.NewRepository(db)
	planRepo := plan.NewRepository(db)
	subRepo := subscription.NewRepository(db)
	payRepo := payment.NewRepository(db)
	checkinRepo := checkin.NewRepository(db)
	notifRepo := notification.NewRepository(db)
	workoutRepo := workout.NewRepository(db)
	articleRepo := article.NewRepository(db)

	dispatcher := notification.NewInAppDispatcher(notifRepo, clk)
	hub := feed.NewHub()

	authService := auth.NewService(staffRepo, j)
	studentService := student.NewService(studentRepo, clk)
	planService := plan.NewService(planRepo, clk)
	subService := subscription.NewService(subRepo, planService, studentService, clk)
	payService := payment.NewService(payRepo, studentService, subService, dispatcher, clk, log.Printf)
	checkinService := checkin.NewService(checkinRepo, studentService, subRepo, hub, clk)
	workoutService := workout.NewService(workoutRepo, studentService, clk)
	articleService := article.NewService(articleRepo, clk)

	sweeper := scheduler.NewSweeper(
		subService,
		payService,
		dispatcher,
		clk,
		cfg.ReminderDays,
		cfg.NotifyTimeout,
		log.Printf,
	)

	authHandler := auth.NewHandler(authService)
	studentHandler := student.NewHandler(studentService)
	planHandler := plan.NewHandler(planService)
	subHandler := subscription.NewHandler(subService, clk)
	payHandler := payment.NewHandler(payService, clk)
	checkinHandler := checkin.NewHandler(checkinService)
	notifHandler := notification.NewHandler(notifRepo)
	workoutHandler := workout.NewHandler(workoutService)
	articleHandler := article.NewHandler(articleService)
	wsHandler := feed.NewWSHandler(hub, j)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		planHandler.RegisterPublicRoutes(v1)
		articleHandler.RegisterPublicRoutes(v1)

		// WebSocket authenticates via query token inside the handler
		v1.GET("/ws/feed", wsHandler.HandleWebSocket)

		// staff
		staff := v1.Group("")
		staff.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterStaffRoutes(staff)
			studentHandler.RegisterRoutes(staff)
			subHandler.RegisterRoutes(staff)
			payHandler.RegisterRoutes(staff)
			checkinHandler.RegisterRoutes(staff)
			notifHandler.RegisterRoutes(staff)
			workoutHandler.RegisterRoutes(staff)

			// admin
			admin := staff.Group("")
			admin.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleManager))
			{
				planHandler.RegisterRoutes(admin)
				articleHandler.RegisterStaffRoutes(admin)
				authHandler.RegisterAdminRoutes(admin)

				admin.POST("/admin/sweep", func(c *gin.Context) {
					report, err := sweeper.RunDailySweep(c.Request.Context())
					if err != nil {
						response.DomainError(c, err)
						return
					}
					response.Success(c, http.StatusOK, report)
				})
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.SweepEnabled {
		go runSweepLoop(sweeper, cfg.SweepInterval)
	}

	log.Printf("API listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// runSweepLoop triggers the daily maintenance batch on a fixed interval.
// A run still in flight makes the tick a no-op.
func runSweepLoop(sweeper *scheduler.Sweeper, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		report, err := sweeper.RunDailySweep(context.Background())
		if err != nil {
			log.Printf("sweep: %v", err)
			continue
		}
		log.Printf("sweep: expired=%d renewals=%d reminders=%d failures=%d",
			report.ExpiredCount, len(report.Renewals), report.RemindersSent, report.ReminderFailures)
	}
}
