package model

import (
	"database/sql"
	"log"

	"github.com/omkarchillalndss/cryptominerpp/cfg"

	"github.com/go-redis/redis"
	_ "github.com/go-sql-driver/mysql"
)

const dbDriver = "mysql"

func UploadDataBase() *sql.DB {
	dataBase, err := sql.Open(dbDriver, cfg.App.DBUser+":"+cfg.App.DBPassword+"@/")
	if err != nil {
		log.Fatalf("Failed open database: %s\n", err.Error())
	}

	dataBase.Exec("CREATE DATABASE IF NOT EXISTS " + cfg.App.DBName + ";")
	dataBase.Exec("USE " + cfg.App.DBName + ";")
	dataBase.Exec("CREATE TABLE IF NOT EXISTS accounts (" + cfg.AccountTable + ");")
	dataBase.Exec("CREATE TABLE IF NOT EXISTS sessions (" + cfg.SessionTable + ");")
	dataBase.Exec("CREATE TABLE IF NOT EXISTS referral_bonuses (" + cfg.ReferralBonusTable + ");")
	dataBase.Exec("CREATE TABLE IF NOT EXISTS ad_reward_grants (" + cfg.AdRewardGrantTable + ");")
	dataBase.Exec("CREATE TABLE IF NOT EXISTS notifications (" + cfg.NotificationTable + ");")
	dataBase.Exec("CREATE TABLE IF NOT EXISTS activities (" + cfg.ActivityTable + ");")

	dataBase.Close()

	dataBase, err = sql.Open(dbDriver, cfg.App.DBUser+":"+cfg.App.DBPassword+"@/"+cfg.App.DBName)
	if err != nil {
		log.Fatalf("Failed open database: %s\n", err.Error())
	}

	if err = dataBase.Ping(); err != nil {
		log.Fatalf("Failed upload database: %s\n", err.Error())
	}

	return dataBase
}

func StartRedis() *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.App.RedisAddr,
		Password: cfg.App.RedisPassword,
		DB:       0, // use default DB
	})
	return rdb
}
