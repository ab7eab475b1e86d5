package main

import (
	"context"

	"Iris_Blog/internal/config"
	"Iris_Blog/internal/logger"
	"Iris_Blog/internal/model"
	"Iris_Blog/internal/pkg"
	"Iris_Blog/internal/repository/mysql"
	"Iris_Blog/internal/repository/redis"
	"Iris_Blog/internal/router"
	"Iris_Blog/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger.Init(cfg.LogLevel)

	if err := mysql.InitDB(cfg.DBDSN); err != nil {
		logger.Log.WithError(err).Fatal("mysql init failed")
	}

	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		logger.Log.WithError(err).Fatal("redis init failed")
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.Post{},
		&model.Message{},
		&model.Notification{},
		&model.Task{},
		&model.SearchOutbox{},
		&model.Group{},
		&model.GroupMember{},
	); err != nil {
		logger.Log.WithError(err).Fatal("auto migrate failed")
	}

	// 没配 kafka 就退化为日志投递
	sender := service.Sender(service.LogSender)
	if len(cfg.KafkaBrokers) > 0 {
		producer := pkg.NewSearchProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}

	// 搜索索引投递循环
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	relayer := service.NewSearchRelayer(sender)
	go relayer.Run(ctx)

	// Gin
	r := router.InitRouter(cfg)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Log.WithError(err).Fatal("http server exited")
	}
}
