package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/stafftools/entra-admin/directory"
	"github.com/stafftools/entra-admin/internal/config"
	"github.com/stafftools/entra-admin/server"
	"github.com/stafftools/entra-admin/session"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	if err := config.Validate(c); err != nil {
		return fmt.Errorf("config.Validate: %w", err)
	}
	displayAppname(c.GetAppName())

	srv, err := buildServer(c)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildServer(c config.Config) (*server.Server, error) {
	credential, err := session.NewInteractiveCredential(c)
	if err != nil {
		return nil, fmt.Errorf("session.NewInteractiveCredential: %w", err)
	}

	sessionManager, err := session.NewManager(credential)
	if err != nil {
		return nil, fmt.Errorf("session.NewManager: %w", err)
	}

	directoryClient, err := directory.NewClient(sessionManager.AcquireToken, directory.WithBaseURL(c.GetGraphBaseURL()))
	if err != nil {
		return nil, fmt.Errorf("directory.NewClient: %w", err)
	}

	var options []server.ServerOption
	if webhookURL := c.GetPassWebhookURL(); webhookURL != "" {
		webhook, err := directory.NewPassWebhook(webhookURL)
		if err != nil {
			return nil, fmt.Errorf("directory.NewPassWebhook: %w", err)
		}
		options = append(options, server.WithPassWebhook(webhook))
	}

	return server.New(c, sessionManager, directoryClient, options...)
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
