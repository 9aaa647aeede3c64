package main

import (
	"log"

	"rentledger/config"
	"rentledger/routes"
	"rentledger/services"
	"rentledger/services/logger"
	"rentledger/services/notification"
	"rentledger/utils"
)

func main() {

	config.LoadEnv()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatalf("JWT_SECRET is required")
	}

	router, m, c, err := config.InitApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	level := logger.ParseLevel(cfg.LogLevel)
	appLogger := logger.NewDefaultLogger(level)

	// lỗi ghi audit được ghi cả ra stdout và file
	fileLogger, err := utils.NewFileLogger(cfg.LogDir, level)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer fileLogger.Close()

	var locker services.PropertyLocker = services.NewLocalLocker()
	if cfg.LockBackend == "redis" {
		locker = services.NewRedisLocker(config.RedisClient, cfg.LockTTL)
	}

	auditService := services.NewAuditService(services.AuditServiceOptions{
		DB:        config.DB,
		Logger:    utils.MultiLogger{appLogger.Named("audit"), fileLogger},
		Notifier:  notification.NewMelodyService(m),
		Async:     cfg.AuditAsync,
		QueueSize: cfg.AuditQueueSize,
	})
	defer auditService.Close()

	ledgerService := services.NewLedgerService(services.LedgerServiceOptions{
		DB:     config.DB,
		Locker: locker,
		Audit:  auditService,
		Logger: appLogger.Named("ledger"),
	})

	contractService := services.NewContractService(services.ContractServiceOptions{
		DB:     config.DB,
		Locker: locker,
		Audit:  auditService,
		Logger: appLogger.Named("contract"),
	})

	occupancyService := services.NewOccupancyService(services.OccupancyServiceOptions{
		DB:            config.DB,
		Registry:      services.NewPropertyRegistry(config.DB),
		Redis:         config.RedisClient,
		Logger:        appLogger.Named("occupancy"),
		Policy:        cfg.VacancyPolicy,
		CacheTTL:      cfg.VacancyCacheTTL,
		DefaultWindow: cfg.VacancyWindowDays,
	})

	if err := config.InitCronJobs(c, cfg.VacancyCron, occupancyService); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}
	defer c.Stop()

	config.InitWebSocket(router, m)
	config.InitHealthCheck(router)

	routes.SetupRoutes(router, routes.Services{
		Ledger:    ledgerService,
		Contracts: contractService,
		Occupancy: occupancyService,
		Audit:     auditService,
	}, cfg.JWTSecret)

	log.Println("Server starting on port " + cfg.Port + "...")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
