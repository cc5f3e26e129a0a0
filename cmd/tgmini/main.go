package main

import (
	"fmt"
	"net/http"
	"os"
	"path"

	"github.com/benjamonnguyen/tgmini"
	"github.com/benjamonnguyen/tgmini/api"
	"github.com/benjamonnguyen/tgmini/auth"
	"github.com/benjamonnguyen/tgmini/charmlog"
	"github.com/benjamonnguyen/tgmini/notify"
	"github.com/benjamonnguyen/tgmini/sqlite"
	tea "github.com/charmbracelet/bubbletea"
)

const programUsage = `Usage:
  tgmini: log in with TGMINI_TELEGRAM_ID or prompt for it
  tgmini <telegram_id>: log in as the given telegram user`

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		fmt.Println(colorize(colorYellow, programUsage))
		os.Exit(0)
	}

	// conf
	conf, err := tgmini.LoadConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if len(os.Args) > 1 {
		conf.TelegramID = os.Args[1]
	}

	if err := os.MkdirAll(path.Dir(conf.LogPath), 0o744); err != nil {
		panic(err)
	}
	f, err := os.OpenFile(conf.LogPath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o666)
	if err != nil {
		panic(err)
	}
	defer f.Close() //nolint:errcheck
	logger := charmlog.NewLogger(charmlog.Options{
		Writer: f,
		Level:  conf.LogLevel,
	})
	logger.Info("loaded config", "apiURL", conf.APIURL, "db", conf.DatabaseURL, "timeout", conf.RequestTimeout)

	// db
	if err := os.MkdirAll(path.Dir(conf.DatabaseURL), 0o744); err != nil {
		logger.Error("failed creating database dir", "error", err)
		os.Exit(1)
	}
	db, err := sqlite.Open(conf.DatabaseURL)
	if err != nil {
		logger.Error("failed database open", "error", err)
		os.Exit(1)
	}
	defer db.Close() //nolint:errcheck
	if err := db.Migrate(); err != nil {
		logger.Error("failed migration", "error", err)
		os.Exit(1)
	}

	// repos
	sessionRepo := sqlite.NewSessionRepo(db.DB(), logger)

	// svcs
	session := auth.NewSession()
	client := api.New(conf.APIURL, session,
		api.WithLogger(logger),
		api.WithHTTPClient(&http.Client{Timeout: conf.RequestTimeout}),
	)
	authenticator := auth.NewAuthenticator(client, sessionRepo, session, logger)

	m := newModel(modelConfig{
		l:          logger,
		auth:       authenticator,
		svc:        client,
		admin:      client,
		toasts:     notify.NewCenter(),
		telegramID: conf.TelegramID,
		timeout:    conf.RequestTimeout,
		timeFormat: conf.TimeFormat,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error(err.Error())
	}
}
