package main

import (
	"fmt"

	"github.com/omkarchillalndss/cryptominerpp/assets"
	"github.com/omkarchillalndss/cryptominerpp/cfg"
	"github.com/omkarchillalndss/cryptominerpp/db"
	"github.com/omkarchillalndss/cryptominerpp/log"
	"github.com/omkarchillalndss/cryptominerpp/model"
	"github.com/omkarchillalndss/cryptominerpp/msgs"
	"github.com/omkarchillalndss/cryptominerpp/server"
	"github.com/omkarchillalndss/cryptominerpp/services"

	"github.com/fatih/color"
	"github.com/mbndr/figlet4go"
	"github.com/roylee0704/gron"
)

func main() {
	printBanner()

	cfg.Load()
	assets.UploadEngineSettings(cfg.App.SettingsPath)

	logger := log.NewDefaultLogger()

	if err := msgs.InitDeveloperNotifications(cfg.App.TgToken, cfg.App.DevChatID); err != nil {
		logger.Warn("developer notifications disabled: %s", err.Error())
	}

	dataBase := model.UploadDataBase()
	rdb := model.StartRedis()

	stores := services.Stores{
		Accounts:      db.NewAccountStore(dataBase),
		Sessions:      db.NewSessionStore(dataBase),
		Bonuses:       db.NewBonusStore(dataBase),
		Grants:        db.NewGrantStore(dataBase),
		Notifications: db.NewNotificationStore(dataBase),
		Receipts:      db.NewReceiptStore(rdb),
		Activities:    db.NewActivityStore(dataBase),
		Stats:         db.NewStatsStore(dataBase),
	}

	engine := services.NewEngine(stores, assets.Settings, model.NewClock(), logger, cfg.App.AdRewardTZ)

	cron := gron.New()
	engine.StartSweeper(cron)
	cron.Start()

	srv := server.NewServer(engine, logger)

	logger.Info("mining server listening on :%s", cfg.App.Port)
	if err := srv.Router().Run(":" + cfg.App.Port); err != nil {
		logger.Fatal("server stopped: %s", err.Error())
	}
}

func printBanner() {
	ascii := figlet4go.NewAsciiRender()
	banner, err := ascii.Render("cryptominer")
	if err != nil {
		return
	}

	fmt.Print(color.CyanString(banner))
}
