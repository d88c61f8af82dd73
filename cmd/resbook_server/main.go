package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avdonin/resbook/internal/config"
	"github.com/avdonin/resbook/internal/database"
	"github.com/avdonin/resbook/internal/model"
	"github.com/avdonin/resbook/internal/service"
)

var (
	gitRevision = "unknown"
	gitBranch   = "unknown"
)

type App struct {
	logger *slog.Logger
	config *config.AppConfig
	dbm    *database.DatabaseManager

	missions *service.MissionService

	stations  *service.BookingService[model.StationEvent, model.StationEventCreate, model.StationEventUpdate]
	crawlers  *service.BookingService[model.CrawlerEvent, model.CrawlerEventCreate, model.CrawlerEventUpdate]
	platforms *service.BookingService[model.PlatformEvent, model.PlatformEventCreate, model.PlatformEventUpdate]
	rts       *service.BookingService[model.RadioTerminalEvent, model.RadioTerminalEventCreate, model.RadioTerminalEventUpdate]
	operators *service.BookingService[model.OperatorEvent, model.OperatorEventCreate, model.OperatorEventUpdate]
}

func NewApp(cfg *config.AppConfig, dbm *database.DatabaseManager) *App {
	return &App{
		logger:    slog.With("logger", "app"),
		config:    cfg,
		dbm:       dbm,
		missions:  service.NewMissionService(dbm),
		stations:  service.NewBookingService[model.StationEvent, model.StationEventCreate, model.StationEventUpdate](dbm, model.ResourceStation),
		crawlers:  service.NewBookingService[model.CrawlerEvent, model.CrawlerEventCreate, model.CrawlerEventUpdate](dbm, model.ResourceCrawler),
		platforms: service.NewBookingService[model.PlatformEvent, model.PlatformEventCreate, model.PlatformEventUpdate](dbm, model.ResourcePlatform),
		rts:       service.NewBookingService[model.RadioTerminalEvent, model.RadioTerminalEventCreate, model.RadioTerminalEventUpdate](dbm, model.ResourceRT),
		operators: service.NewBookingService[model.OperatorEvent, model.OperatorEventCreate, model.OperatorEventUpdate](dbm, model.ResourceOperator),
	}
}

func (app *App) Run() {
	api := NewHttp(app)

	go func() {
		if err := api.Listen(app.config.ApiAddr()); err != nil {
			app.logger.Error("api error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	app.logger.Info("listening on " + app.config.ApiAddr())

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	app.logger.Info("exiting...")
	_ = api.Shutdown()
}

func main() {
	fmt.Printf("version %s %s\n", gitRevision, gitBranch)

	var debug = flag.Bool("debug", false, "debug logging")
	var conf = flag.String("config", "resbook.yml", "name of config file")
	flag.Parse()

	cfg := config.NewAppConfig()
	cfg.Load(*conf)

	if err := cfg.LoadEnv("RESBOOK_"); err != nil {
		fmt.Printf("error loading env: %s\n", err.Error())
		return
	}

	level := slog.LevelInfo
	if *debug || cfg.Debug() {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	db, err := gorm.Open(sqlite.Open(cfg.DBFile()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		slog.Error("db error", slog.Any("error", err))
		return
	}

	dbm := database.New(db)

	if err := dbm.Migrate(); err != nil {
		slog.Error("migrate error", slog.Any("error", err))
		return
	}

	dbm.AddDefaults()

	NewApp(cfg, dbm).Run()
}
