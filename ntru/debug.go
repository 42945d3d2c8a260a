package ntru

import (
	"io"
	"sync/atomic"

	"gopkg.in/op/go-logging.v1"

	"ntru-lattice/internal/log"
)

var logger atomic.Pointer[logging.Logger]

func init() {
	logger.Store(log.FromEnv("NTRU_DEBUG").GetLogger("ntru"))
}

// SetLogOutput redirects the package logger to w at the given level
// (ERROR, WARNING, NOTICE, INFO or DEBUG). By default messages go to stderr
// and debug output is enabled by NTRU_DEBUG=1.
func SetLogOutput(w io.Writer, level string) error {
	b, err := log.New(w, level)
	if err != nil {
		return err
	}
	logger.Store(b.GetLogger("ntru"))
	return nil
}

func dbg(f string, a ...any) {
	logger.Load().Debugf(f, a...)
}

func warn(f string, a ...any) {
	logger.Load().Warningf(f, a...)
}
