// Package logging wires structured logging for the server. The call-site
// style — a logger plus a Fields map passed alongside a short message —
// mirrors the logger.Info(msg, logger.Fields{...}) idiom used throughout
// the other_examples tictactoe backend, backed here by logrus rather than
// a hand-rolled logger since logrus is an ecosystem library the corpus
// already exercises.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Fields is re-exported so call sites don't need to import logrus directly.
type Fields = logrus.Fields

// New builds the process-wide base logger. verbose raises the level to
// Debug; otherwise the server logs at Info and above.
func New(verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}
