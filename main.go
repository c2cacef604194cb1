package main

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/postium/postium/config"
	"github.com/postium/postium/models"
	"github.com/postium/postium/routes"
	"github.com/postium/postium/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)

	var rc *redis.Client
	if utils.RedisAvailable() {
		rc = utils.GetRedis()
	} else {
		utils.Sugar.Warn("redis unreachable, falling back to in-memory page cache")
	}
	cache := utils.NewPageCache(time.Duration(cfg.HomeCacheTTLSeconds)*time.Second, rc)

	r := routes.SetupRouter(db, cache)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
