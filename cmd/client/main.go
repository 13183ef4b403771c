package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notes-app/internal/client/httpclient"
	"notes-app/internal/client/notes"
	"notes-app/internal/config"
	"notes-app/internal/logger"
	"notes-app/internal/model"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// clientConfig - настройки CLI из переменных окружения с префиксом NOTES_
type clientConfig struct {
	APIURL         string `envconfig:"API_URL" default:"http://localhost:8080/api"`
	TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"10"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"warn"`
}

const usage = `usage: notes <command> [args]

commands:
  list                          list all notes, newest first
  get <id>                      show one note
  create <title> <content>      create a note
  update <id> <title> <content> update a note (empty fields keep stored values)
  delete <id>                   delete a note
  watch                         print note change events until interrupted`

var errUsage = errors.New(usage)

func main() {
	_ = config.LoadDotEnv()

	var cfg clientConfig
	if err := envconfig.Process("notes", &cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(&config.ConfigLogger{Level: cfg.LogLevel, Console: true})

	client := notes.NewClient(httpclient.New(cfg.APIURL,
		httpclient.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}),
		httpclient.WithLogger(log),
	))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, client, os.Args[1:], os.Stdout, log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run выполняет команду CLI и печатает результат в out в формате JSON
func run(ctx context.Context, client *notes.Client, args []string, out io.Writer, log zerolog.Logger) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, args := args[0], args[1:]
	switch {
	case cmd == "list" && len(args) == 0:
		list, err := client.FetchNotes(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, list)

	case cmd == "get" && len(args) == 1:
		note, err := client.FetchNote(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(out, note)

	case cmd == "create" && len(args) == 2:
		note, err := client.CreateNote(ctx, model.NoteRequest{Title: args[0], Content: args[1]})
		if err != nil {
			return err
		}
		return printJSON(out, note)

	case cmd == "update" && len(args) == 3:
		note, err := client.UpdateNote(ctx, args[0], model.NoteRequest{Title: args[1], Content: args[2]})
		if err != nil {
			return err
		}
		return printJSON(out, note)

	case cmd == "delete" && len(args) == 1:
		resp, err := client.DeleteNote(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(out, resp)

	case cmd == "watch" && len(args) == 0:
		var printErr error
		err := client.Watch(ctx, func(event model.NoteEvent) {
			if printErr == nil {
				printErr = printJSON(out, event)
			}
		})
		if errors.Is(err, context.Canceled) {
			log.Info().Msg("watch stopped")
			return printErr
		}
		return errors.Join(err, printErr)

	default:
		return errUsage
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
