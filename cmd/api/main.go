package main

import (
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	httpadp "creditsea-backend/internal/adapter/http"
	mw "creditsea-backend/internal/adapter/middleware"
	"creditsea-backend/internal/adapter/repository/mysql"
	"creditsea-backend/internal/config"
	"creditsea-backend/internal/domain/user"
	"creditsea-backend/internal/infrastructure/cache"
	"creditsea-backend/internal/infrastructure/db"
	adminUC "creditsea-backend/internal/usecase/admin"
	appUC "creditsea-backend/internal/usecase/application"
	authUC "creditsea-backend/internal/usecase/auth"
	loanUC "creditsea-backend/internal/usecase/loan"
	verifierUC "creditsea-backend/internal/usecase/verifier"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), logger)
	if err != nil {
		logger.Fatalf("mysql: %v", err)
	}

	// repositories + unit of work
	users := mysql.NewUserRepository(gdb)
	apps := mysql.NewApplicationRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	// usecases
	auth := authUC.NewUsecase(users, []byte(cfg.JWTSecret), logger)
	applications := appUC.NewUsecase(apps, logger)
	verification := verifierUC.NewUsecase(tx, logger)
	administration := adminUC.NewUsecase(users, tx, logger)
	lending := loanUC.NewUsecase(loans, apps, users, tx, logger)

	// handlers
	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(auth)
	appH := httpadp.NewApplicationHandler(applications)
	verifierH := httpadp.NewVerifierHandler(verification)
	adminH := httpadp.NewAdminHandler(administration)
	loanH := httpadp.NewLoanHandler(lending)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover(), echomw.CORS())

	authed := mw.Auth([]byte(cfg.JWTSecret))

	e.GET("/health", h.Health)

	e.POST("/auth/register", authH.Register)
	e.POST("/auth/login", authH.Login)

	e.POST("/applications", appH.Submit, authed, mw.RequireCapability(user.CapSubmitApplications))
	e.GET("/applications", appH.ListMine, authed)

	v := e.Group("/verifier", authed, mw.RequireCapability(user.CapVerifyApplications))
	v.GET("", appH.ListAll)
	v.PUT("/verify/:id", verifierH.Verify)
	v.PUT("/reject/:id", verifierH.Reject)

	a := e.Group("/admin", authed)
	a.GET("", appH.ListAll, mw.RequireCapability(user.CapApproveApplications))
	a.PUT("/approve/:id", adminH.Approve, mw.RequireCapability(user.CapApproveApplications))
	a.GET("/users", adminH.ListUsers, mw.RequireCapability(user.CapManageRoles))
	a.PUT("/make-admin/:id", adminH.MakeAdmin, mw.RequireCapability(user.CapManageRoles))
	a.PUT("/remove-admin/:id", adminH.RemoveAdmin, mw.RequireCapability(user.CapManageRoles))
	a.PUT("/make-verifier/:id", adminH.MakeVerifier, mw.RequireCapability(user.CapManageRoles))
	a.PUT("/remove-verifier/:id", adminH.RemoveVerifier, mw.RequireCapability(user.CapManageRoles))
	a.PUT("/make-user/:id", adminH.MakeUser, mw.RequireCapability(user.CapManageRoles))

	payMW := []echo.MiddlewareFunc{authed, mw.RequireCapability(user.CapRepayLoans)}
	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.Fatalf("redis: %v", err)
		}
		payMW = append(payMW, mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, logger))
	} else {
		logger.Warn("REDIS_ADDR not set, payment idempotency disabled")
	}

	l := e.Group("/loan")
	l.POST("/approve/:appId", loanH.Fund, authed, mw.RequireCapability(user.CapFundLoans))
	l.POST("/pay/:loanId", loanH.PayEMI, payMW...)
	l.GET("/user", loanH.UserLoans, authed, mw.RequireCapability(user.CapRepayLoans))
	l.GET("/get-total", loanH.UserTotal, authed)
	l.GET("/get-stats", loanH.Statistics)
	l.GET("/:loanId", loanH.Details, authed)

	if cfg.KeepAliveURL != "" {
		cr := cron.New()
		_, err := cr.AddFunc("*/15 * * * *", func() {
			client := &http.Client{Timeout: 30 * time.Second}
			resp, err := client.Get(cfg.KeepAliveURL)
			if err != nil {
				logger.WithError(err).Warn("keep-alive ping failed")
				return
			}
			resp.Body.Close()
			logger.WithField("status", resp.StatusCode).Debug("keep-alive ping")
		})
		if err != nil {
			logger.Fatalf("cron: %v", err)
		}
		cr.Start()
		defer cr.Stop()
	}

	addr := ":" + cfg.AppPort
	logger.Infof("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		logger.Fatal(err)
	}
}
