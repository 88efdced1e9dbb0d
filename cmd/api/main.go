package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hanoisoft/timesheet-backend-go/internal/config"
	appHTTP "github.com/hanoisoft/timesheet-backend-go/internal/handler/http"
	"github.com/hanoisoft/timesheet-backend-go/internal/pkg/database"
	"github.com/hanoisoft/timesheet-backend-go/internal/pkg/events"
	"github.com/hanoisoft/timesheet-backend-go/internal/pkg/jwt"
	"github.com/hanoisoft/timesheet-backend-go/internal/repository/postgresql"
	timesheetService "github.com/hanoisoft/timesheet-backend-go/internal/service/timesheet"
	"github.com/hanoisoft/timesheet-backend-go/internal/service/worktime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	submissionRepo := postgresql.NewSubmissionRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	auditRecorder := postgresql.NewAuditRecorder(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	hub := events.NewHub()
	calculator := worktime.NewCalculator()

	tsService := timesheetService.NewTimesheetService(
		db,
		submissionRepo,
		employeeRepo,
		calculator,
		auditRecorder,
		hub,
	)

	timesheetHandler := appHTTP.NewTimesheetHandler(tsService, hub)

	router := appHTTP.NewRouter(jwtService, cfg.App.Env, timesheetHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Starting server on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
