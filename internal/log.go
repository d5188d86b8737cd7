package internal

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging sends detailed per-file logging to organizer.log, keeping
// stdout free for the summary report.
func SetupLogging(debug bool) error {
	logFile, err := os.OpenFile("organizer.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logrus.SetOutput(logFile)
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	return nil
}
