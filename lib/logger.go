package lib

import (
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/ziflex/lecho/v3"
)

// Logger writes JSON logs to STDOUT, or to a daily file when logFilePath is set.
func Logger(logFilePath string) *lecho.Logger {
	target := os.Stdout

	// check if a log file config is set
	if logFilePath != "" {
		extension := filepath.Ext(logFilePath)
		path := logFilePath
		if extension == "" {
			path = logFilePath + time.Now().Format("-2006-01-02") + ".log"
		}
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
		if err != nil {
			panic(err)
		}
		target = file
	}

	return lecho.New(
		target,
		lecho.WithLevel(log.INFO),
		lecho.WithTimestamp(),
	)
}
