package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jessevdk/go-flags"
	"github.com/jrsteele09/tracker-web/internal/config"
	"github.com/jrsteele09/tracker-web/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	options := &Options{}
	if _, err := flags.ParseArgs(options, os.Args[1:]); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(2)
	}

	if err := run(options); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run(options *Options) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	if options.Port != "" {
		if err := os.Setenv(config.PortEnvVar, options.Port); err != nil {
			return fmt.Errorf("[main run] set port: %w", err)
		}
	}
	c, err := config.Load(options.EnvFile)
	if err != nil {
		return err
	}
	setupLogging(c)
	displayAppname(c.GetAppName())

	server := &http.Server{
		Addr:              c.GetPort(),
		Handler:           server.New(c),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- listenAndServe(server)
	}()

	select {
	case err := <-errs:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(server)
}

func setupLogging(c config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if c.IsProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
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
