package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

var (
	InfoLog  *log.Logger
	ErrorLog *log.Logger
	WarnLog  *log.Logger
	DebugLog *log.Logger
	logFile  *os.File
	level    = INFO
	initOnce sync.Once
)

const (
	INFO = iota
	DEBUG
)

const flags = log.Ldate | log.Ltime | log.Lshortfile

// InitLogger writes log output to the console and appends it to filename.
// An empty filename logs to the console only. Call it before any goroutine
// starts logging; it is not safe for concurrent use.
func InitLogger(filename string, lvl int) error {
	level = lvl

	out := io.Writer(os.Stdout)
	errOut := io.Writer(os.Stderr)
	if filename != "" {
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		logFile = f
		out = io.MultiWriter(os.Stdout, logFile)
		errOut = io.MultiWriter(os.Stderr, logFile)
	}

	InfoLog = log.New(out, "INFO: ", flags)
	WarnLog = log.New(out, "WARN: ", flags)
	DebugLog = log.New(out, "DEBUG: ", flags)
	ErrorLog = log.New(errOut, "ERROR: ", flags)
	return nil
}

func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Init sets up console-only loggers at INFO level.
func Init() {
	InfoLog = log.New(os.Stdout, "INFO: ", flags)
	ErrorLog = log.New(os.Stderr, "ERROR: ", flags)
	WarnLog = log.New(os.Stdout, "WARN: ", flags)
	DebugLog = log.New(os.Stdout, "DEBUG: ", flags)
}

func ensure() {
	initOnce.Do(func() {
		if InfoLog == nil {
			Init()
		}
	})
}

// callDepth makes Lshortfile report the caller of Infof and friends.
const callDepth = 2

func Infof(format string, v ...interface{}) {
	ensure()
	InfoLog.Output(callDepth, fmt.Sprintf(format, v...))
}

func Warnf(format string, v ...interface{}) {
	ensure()
	WarnLog.Output(callDepth, fmt.Sprintf(format, v...))
}

func Errorf(format string, v ...interface{}) {
	ensure()
	ErrorLog.Output(callDepth, fmt.Sprintf(format, v...))
}

// Debugf only writes when the logger was initialised at DEBUG level.
func Debugf(format string, v ...interface{}) {
	if level < DEBUG {
		return
	}
	ensure()
	DebugLog.Output(callDepth, fmt.Sprintf(format, v...))
}
