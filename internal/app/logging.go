package app

import (
	"bytes"
	"log"

	"github.com/nir0k/logger"
)

// Log is the leveled logging surface shared by the renamer and the mover.
type Log struct {
	Infof  func(format string, args ...interface{})
	Warnf  func(format string, args ...interface{})
	Errorf func(format string, args ...interface{})
}

// OpenLog creates the rotating file log. When buf is non-nil the console
// side of the logger is redirected into it.
func OpenLog(level, file string, buf *bytes.Buffer) (Log, error) {
	cfg := logger.LogConfig{
		FilePath:       file,
		Format:         "standard",
		FileLevel:      level,
		ConsoleLevel:   level,
		ConsoleOutput:  buf != nil,
		EnableRotation: true,
		RotationConfig: logger.RotationConfig{
			MaxSize:    25,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		},
	}
	logInstance, err := logger.NewLogger(cfg)
	if err != nil {
		return Log{}, err
	}
	if buf != nil {
		logInstance.Config.ConsoleOutput = true
		logInstance.ConsoleLogger = log.New(buf, "", 0)
	}

	return Log{
		Infof:  logInstance.Infof,
		Warnf:  logInstance.Warningf,
		Errorf: logInstance.Errorf,
	}, nil
}
