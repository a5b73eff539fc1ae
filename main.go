package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workcal/config"
	"workcal/handlers"
	"workcal/llm"
	"workcal/middleware"
	"workcal/routes"
	"workcal/storage"
	"workcal/store"
	"workcal/supabase"
)

func main() {
	config.LoadEnv()
	config.InitLogger()

	cfg, err := config.LoadOrCreate(config.DefaultConfigFileName)
	if err != nil {
		config.Logger.Warn("config load problem, continuing with defaults:", err)
	}

	local, err := storage.Open(cfg.DBPath)
	if err != nil {
		config.Logger.Fatal("failed to open local storage:", err)
	}
	defer local.Close()

	var remote *supabase.Client
	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		remote, err = supabase.New(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			config.Logger.Fatal("failed to create Supabase client:", err)
		}
	} else {
		config.Logger.Info("Supabase not configured, running local-only")
	}

	st := store.New(local, remote, cfg.PollInterval())
	st.RestoreSession()

	for _, task := range st.TodayReminders() {
		config.Logger.Info("due today: ", task.Title)
	}

	h := handlers.New(st, llm.Model(cfg.Extractor))

	mux := http.NewServeMux()
	routes.RegisterAllRoutes(mux, h)

	handler := middleware.Chain(
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)(mux)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	go func() {
		config.Logger.Info("Server is running on ", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Fatal("server error:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	config.Logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		config.Logger.Error("shutdown error:", err)
	}
	st.Close()
}
