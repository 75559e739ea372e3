package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MoneySmartz/internal/config"
	"MoneySmartz/internal/model"
	"MoneySmartz/internal/notifier"
	"MoneySmartz/internal/recorder"
	"MoneySmartz/internal/scheduler"
	"MoneySmartz/internal/sim"
	"MoneySmartz/internal/strategy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("config validation")
	}
	log, err := cfg.Logger()
	if err != nil {
		logrus.WithError(err).Fatal("init logger")
	}
	log.Info("MoneySmartz starting...")

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.WithError(err).Warn("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	player := model.NewPlayer(cfg.Player.Name, cfg.Player.Age, cfg.StartingCash(), cfg.Player.CreditScore)
	sess := sim.New(player, sim.WithSeed(seed), sim.WithRules(cfg.Rules()), sim.WithLogger(log))
	pilot := strategy.NewAutopilot(strategy.Config{
		CashBuffer:     decimal.NewFromFloat(cfg.Strategy.CashBuffer).Round(2),
		SavingsAccount: cfg.Strategy.SavingsAccount,
	}, log)
	cn := notifier.NewConsoleNotifier(os.Stdout, log)

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	id := uuid.NewString()
	sched := scheduler.NewScheduler(ctx, id, sess, pilot, cn, rec, log)
	log.WithFields(logrus.Fields{"session": id, "seed": seed, "player": cfg.Player.Name}).Info("life started")

	if cfg.Schedule.Fast {
		if err := sched.RunToCompletion(ctx); err != nil {
			log.WithError(err).Error("simulation stopped")
		}
		log.Info("MoneySmartz stopped")
		return
	}

	if err := sched.Register(cfg.Schedule.TickCron); err != nil {
		log.WithError(err).Fatal("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	// Console commands
	go cn.StartPolling(ctx, os.Stdin, sched.HandleCommand)
	log.Info("MoneySmartz is running. Type status, networth, loans or assets; Ctrl+C to stop.")

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping...")
	case <-sched.Done():
	}
	log.Info("MoneySmartz stopped")
}
