package tgmini

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIURL         string
	TelegramID     string
	DatabaseURL    string
	LogLevel       string
	LogPath        string
	TimeFormat     string
	RequestTimeout time.Duration
}

const (
	DefaultAPIURL         = "http://localhost:8089"
	DefaultLogLevel       = "WARN"
	DefaultTimeFormat     = "2006-01-02"
	DefaultRequestTimeout = "0s"
)

const (
	KeyAPIURL         = "TGMINI_API_URL"
	KeyTelegramID     = "TGMINI_TELEGRAM_ID"
	KeyDatabaseURL    = "TGMINI_DB_URL"
	KeyLogLevel       = "TGMINI_LOG_LEVEL"
	KeyLogPath        = "TGMINI_LOG_PATH"
	KeyTimeFormat     = "TGMINI_TIME_FORMAT"
	KeyRequestTimeout = "TGMINI_REQUEST_TIMEOUT"
	KeyDevMode        = "TGMINI_DEV_MODE"
)

var (
	userHome, _        = os.UserHomeDir()
	DefaultDatabaseURL = path.Join(userHome, ".tgmini", "tgmini.db")
	DefaultLogPath     = path.Join(userHome, ".tgmini", "tgmini.log")
)

type rawConfig struct {
	apiURL, telegramID, dbURL, logLevel, logPath, timeFormat, requestTimeout string
}

func readEnv() rawConfig {
	return rawConfig{
		apiURL:         os.Getenv(KeyAPIURL),
		telegramID:     os.Getenv(KeyTelegramID),
		dbURL:          os.Getenv(KeyDatabaseURL),
		logLevel:       os.Getenv(KeyLogLevel),
		logPath:        os.Getenv(KeyLogPath),
		timeFormat:     os.Getenv(KeyTimeFormat),
		requestTimeout: os.Getenv(KeyRequestTimeout),
	}
}

// LoadConfig merges, in order of precedence, the process environment, the
// conf file under the user config dir and the defaults. The conf file is
// created with defaults on first run.
func LoadConfig() (Config, error) {
	cfgDir, _ := os.UserConfigDir()
	return LoadConfigFrom(path.Join(cfgDir, "tgmini", "tgmini.conf"))
}

func LoadConfigFrom(confFile string) (Config, error) {
	fromEnv := readEnv()

	if os.Getenv(KeyDevMode) != "" {
		fmt.Println("Dev mode is on!")
		fromEnv.logLevel = "DEBUG"
		fromEnv.dbURL = path.Join(os.TempDir(), "tgmini-dev.db")
		fromEnv.logPath = path.Join(os.TempDir(), "tgmini-dev.log")
	}

	if _, err := os.Stat(confFile); err != nil {
		log.Println("creating default conf file")
		if err := writeDefaultConf(confFile); err != nil {
			return Config{}, err
		}
	}
	fileVals, err := godotenv.Read(confFile)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", confFile, err)
	}
	fromFile := rawConfig{
		apiURL:         fileVals[KeyAPIURL],
		telegramID:     fileVals[KeyTelegramID],
		dbURL:          fileVals[KeyDatabaseURL],
		logLevel:       fileVals[KeyLogLevel],
		logPath:        fileVals[KeyLogPath],
		timeFormat:     fileVals[KeyTimeFormat],
		requestTimeout: fileVals[KeyRequestTimeout],
	}

	timeout, err := time.ParseDuration(coalesce(fromEnv.requestTimeout, fromFile.requestTimeout, DefaultRequestTimeout))
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", KeyRequestTimeout, err)
	}

	return Config{
		APIURL:         coalesce(fromEnv.apiURL, fromFile.apiURL, DefaultAPIURL),
		TelegramID:     coalesce(fromEnv.telegramID, fromFile.telegramID),
		DatabaseURL:    coalesce(fromEnv.dbURL, fromFile.dbURL, DefaultDatabaseURL),
		LogLevel:       coalesce(fromEnv.logLevel, fromFile.logLevel, DefaultLogLevel),
		LogPath:        coalesce(fromEnv.logPath, fromFile.logPath, DefaultLogPath),
		TimeFormat:     coalesce(fromEnv.timeFormat, fromFile.timeFormat, DefaultTimeFormat),
		RequestTimeout: timeout,
	}, nil
}

func writeDefaultConf(confFile string) error {
	if err := os.MkdirAll(path.Dir(confFile), 0o744); err != nil {
		return err
	}
	defaults := map[string]string{
		KeyAPIURL:         DefaultAPIURL,
		KeyDatabaseURL:    DefaultDatabaseURL,
		KeyLogLevel:       DefaultLogLevel,
		KeyLogPath:        DefaultLogPath,
		KeyTimeFormat:     DefaultTimeFormat,
		KeyRequestTimeout: DefaultRequestTimeout,
	}
	return godotenv.Write(defaults, confFile)
}

func coalesce(args ...string) string {
	for _, s := range args {
		if s != "" {
			return s
		}
	}
	return ""
}

// RequestContext bounds a single backend call. A zero timeout leaves the call
// to the HTTP stack's own limits.
func RequestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}
