// alert-bot announces newly recorded catch analyses to a Telegram chat.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"go.uber.org/zap"

	"fish-price-api/api/internal/config"
	"fish-price-api/api/internal/logging"
	"fish-price-api/api/internal/store"
)

const pollInterval = 30 * time.Second

func main() {
	cfg := config.LoadBot()
	logging.Init(cfg.LogLevel, "json")
	defer logging.Sync()
	log := logging.Logger

	chatID, err := strconv.ParseInt(cfg.AlertChatID, 10, 64)
	if err != nil {
		log.Fatal("ALERT_CHAT_ID must be a numeric chat id", zap.Error(err))
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("sql.Open", zap.Error(err))
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal("db.Ping", zap.Error(err))
		}
	}
	analyses := store.NewAnalysisRepo(db)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal("telegram", zap.Error(err))
	}
	bot.Debug = false
	log.Info("alert-bot started", zap.String("bot", bot.Self.UserName), zap.Int64("chat_id", chatID))

	run(context.Background(), log, analyses, bot, chatID)
}

func run(ctx context.Context, log *zap.Logger, analyses *store.AnalysisRepo, bot *tgbotapi.BotAPI, chatID int64) {
	lastSeen := time.Now().UTC()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		qctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		recs, err := analyses.ListSince(qctx, lastSeen)
		cancel()
		if err != nil {
			log.Warn("list analyses", zap.Error(err))
			continue
		}

		for _, rec := range recs {
			msg := tgbotapi.NewMessage(chatID, formatAlert(rec))
			if _, err := bot.Send(msg); err != nil {
				// Leave lastSeen alone so the record is retried next tick.
				log.Warn("send alert", zap.String("id", rec.ID), zap.Error(err))
				break
			}
			lastSeen = rec.CreatedAt
		}
	}
}

func formatAlert(rec store.AnalysisRecord) string {
	return fmt.Sprintf("New catch: %s\nqty %d, %.1f kg, Rs. %.2f\nat (%.4f, %.4f) by %s",
		rec.FishClass, rec.QtyCaptured, rec.WeightKg, rec.TotalPrice,
		rec.Location.Lat, rec.Location.Lon, rec.UserID)
}
