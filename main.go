package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/GQAdonis/goal-app/app/api"
	"github.com/GQAdonis/goal-app/app/client/claude"
	"github.com/GQAdonis/goal-app/app/client/turnapi"
	"github.com/GQAdonis/goal-app/app/config"
	"github.com/GQAdonis/goal-app/app/service/chat"
	"github.com/GQAdonis/goal-app/app/service/orchestrator"
	"github.com/GQAdonis/goal-app/app/service/store"
	"github.com/GQAdonis/goal-app/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	clientURL := flag.String("client", "", "run as a terminal chat client against the given server url")
	flag.Parse()

	if *clientURL != "" {
		runClient(*clientURL)
		return
	}

	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, claude.NewClient)
	do.Provide(di, chat.New)
	do.Provide(di, api.New)

	slog.Info("Service started", "listen", cfg.Server.Listen)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	go func() {
		if err := do.MustInvoke[*api.Server](di).Run(); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-appCtx.Done()
}

// runClient drives the orchestrator from the terminal, standing in for the
// web UI: it prints assistant replies and re-prompts on every turn.
func runClient(baseURL string) {
	st := store.New()
	orch := orchestrator.New(st, turnapi.NewClient(baseURL, 2*time.Minute))

	fmt.Println("What is your goal?")

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}

			return
		}

		before := len(st.Messages())

		if err := orch.SubmitUserText(context.Background(), scanner.Text()); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}

		for _, msg := range st.Messages()[before:] {
			if msg.Sender == chat.RoleAssistant {
				fmt.Println(msg.Content)
			}
		}
	}
}
