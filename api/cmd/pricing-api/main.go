package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"go.uber.org/zap"

	"fish-price-api/api/internal/classify/gemini"
	"fish-price-api/api/internal/config"
	"fish-price-api/api/internal/geo"
	"fish-price-api/api/internal/handle"
	"fish-price-api/api/internal/heatmap"
	"fish-price-api/api/internal/logging"
	"fish-price-api/api/internal/pricing"
	"fish-price-api/api/internal/store"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel, "json")
	defer logging.Sync()
	log := logging.Logger

	// --- Reference price table (fatal if missing: the service cannot price
	// anything without it) ---
	table, err := pricing.LoadTable(cfg.PriceCSVPath)
	if err != nil {
		log.Fatal("load price table", zap.String("path", cfg.PriceCSVPath), zap.Error(err))
	}
	log.Info("price table loaded", zap.String("path", cfg.PriceCSVPath), zap.Int("rows", table.Len()))

	// --- Postgres ---
	dsn := resolveDSN(cfg)
	if dsn == "" {
		log.Fatal("database DSN is empty: set DATABASE_URL or POSTGRES_* env vars")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal("sql.Open", zap.Error(err))
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(1 * time.Hour)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal("db.Ping", zap.Error(err))
		}
		log.Info("db connected", zap.String("dsn", safeDSNSummary(dsn)))
	}

	analyses := store.NewAnalysisRepo(db)
	resolver := geo.NewNominatimResolver(cfg.NominatimBaseURL)
	pipeline := pricing.NewPipeline(resolver, table, analyses)
	classifier := gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	hm := heatmap.New(cfg.HeatmapBaseURL)

	h := handle.New(pipeline, analyses, classifier, hm)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db: not ok\n" + err.Error()))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/price", h.Price)
	mux.HandleFunc("/v1/analysis", h.Analysis)
	mux.HandleFunc("/v1/identify", h.Identify)
	mux.HandleFunc("/v1/heatmap/predict", h.Heatmap)

	addr := ":" + cfg.Port
	log.Info("pricing-api listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal("listen", zap.Error(err))
	}
}

func resolveDSN(cfg *config.Config) string {
	// Prefer DATABASE_URL if provided
	if v := strings.TrimSpace(cfg.DatabaseURL); v != "" {
		return v
	}
	// Build DSN from POSTGRES_* / PG* env vars (single-container default)
	user := getenvDefault("POSTGRES_USER", "fishprice")
	pass := os.Getenv("POSTGRES_PASSWORD")
	host := getenvDefault("PGHOST", "db")
	port := getenvDefault("PGPORT", "5432")
	db := getenvDefault("POSTGRES_DB", "fishprice")

	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, pass),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + db,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func getenvDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func safeDSNSummary(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "dsn: parse error"
	}
	user := u.User.Username()
	host := u.Host
	port := ""
	if h, p, err := net.SplitHostPort(u.Host); err == nil {
		host, port = h, p
	}
	db := strings.TrimPrefix(u.Path, "/")
	if port == "" {
		return fmt.Sprintf("host=%s db=%s user=%s", host, db, user)
	}
	return fmt.Sprintf("host=%s port=%s db=%s user=%s", host, port, db, user)
}
