package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "estate-access-service/internal/adapter/http"
	"estate-access-service/internal/adapter/middleware"
	"estate-access-service/internal/adapter/repository/mysql"
	"estate-access-service/internal/config"
	domainUser "estate-access-service/internal/domain/user"
	"estate-access-service/internal/infrastructure/cache"
	"estate-access-service/internal/infrastructure/db"
	"estate-access-service/internal/infrastructure/mpesa"
	accesslogUC "estate-access-service/internal/usecase/accesslog"
	authUC "estate-access-service/internal/usecase/auth"
	membershipUC "estate-access-service/internal/usecase/membership"
	paymentUC "estate-access-service/internal/usecase/payment"
	residentUC "estate-access-service/internal/usecase/resident"
	visitorUC "estate-access-service/internal/usecase/visitor"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	memberships := mysql.NewMembershipRepository(gdb)
	residents := mysql.NewResidentRepository(gdb)
	payments := mysql.NewPaymentRepository(gdb)
	visitors := mysql.NewVisitorRepository(gdb)
	accessLogs := mysql.NewAccessLogRepository(gdb)
	users := mysql.NewUserRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	darajaClient := mpesa.NewClient(cfg)

	authSvc := authUC.NewUsecase(users, cfg.JWTSecret, cfg.JWTTTLHours)
	membershipSvc := membershipUC.NewUsecase(memberships, residents, uow)
	residentSvc := residentUC.NewUsecase(residents)
	paymentSvc := paymentUC.NewUsecase(payments, residents, uow, darajaClient)
	visitorSvc := visitorUC.NewUsecase(visitors, uow)
	accessLogSvc := accesslogUC.NewUsecase(accessLogs)

	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(authSvc)
	membershipH := httpadp.NewMembershipHandler(membershipSvc)
	residentH := httpadp.NewResidentHandler(residentSvc, paymentSvc)
	paymentH := httpadp.NewPaymentHandler(paymentSvc)
	mpesaH := httpadp.NewMpesaHandler(paymentSvc)
	visitorH := httpadp.NewVisitorHandler(visitorSvc)
	accessLogH := httpadp.NewAccessLogHandler(accessLogSvc)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = httpadp.NewValidator()

	authed := middleware.RequireAuth(authSvc)
	adminOnly := middleware.RequireRoles(domainUser.RoleAdmin)
	staff := middleware.RequireRoles(domainUser.RoleAdmin, domainUser.RoleSecurity)
	residentOnly := middleware.RequireRoles(domainUser.RoleResident)
	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// public
	e.GET("/health", h.Health)
	e.POST("/auth/login", authH.Login)
	e.POST("/membership/requests", membershipH.Submit)
	e.GET("/membership/requests/count", membershipH.Count)
	e.POST("/payments/mpesa/callback", mpesaH.Callback)

	// membership administration
	m := e.Group("/membership", authed, adminOnly)
	m.GET("/requests", membershipH.List)
	m.GET("/requests/:request_id", membershipH.Get)
	m.POST("/requests/:request_id/approve", membershipH.Approve)
	m.POST("/requests/:request_id/reject", membershipH.Reject)
	m.POST("/requests/:request_id/promote", membershipH.Promote)
	m.POST("/requests/sync", membershipH.SyncAll)

	// residents
	r := e.Group("/residents", authed)
	r.GET("/me", residentH.Profile, residentOnly)
	r.POST("/me/pay", residentH.Pay, residentOnly, idemp)
	r.GET("", residentH.List, adminOnly)
	r.PUT("/:resident_id/total-due", residentH.SetTotalDue, adminOnly)

	// payments
	p := e.Group("/payments", authed)
	p.POST("", paymentH.MakePayment, idemp)
	p.GET("", paymentH.List)
	p.GET("/balances", paymentH.Balances)
	p.POST("/:payment_id/verify", paymentH.Verify, adminOnly)

	// visitor passes
	v := e.Group("/visitors", authed)
	v.POST("", visitorH.Register, residentOnly)
	v.GET("", visitorH.List)
	v.GET("/:pass_code", visitorH.Get)
	v.POST("/:pass_code/approve", visitorH.Approve, adminOnly)
	v.POST("/:pass_code/reject", visitorH.Reject, adminOnly)
	v.POST("/:pass_code/l2-approve", visitorH.L2Approve, staff)
	v.POST("/:pass_code/checkin", visitorH.CheckIn, staff)
	v.POST("/:pass_code/checkout", visitorH.CheckOut, staff)

	// access logs
	l := e.Group("/logs", authed)
	l.POST("", accessLogH.Record)
	l.GET("", accessLogH.Query, staff)
	l.GET("/daily-counts", accessLogH.DailyCounts, staff)
	l.POST("/gate-overrides", accessLogH.RecordOverride, staff)
	l.GET("/gate-overrides", accessLogH.ListOverrides, staff)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
