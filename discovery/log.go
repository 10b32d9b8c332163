package discovery

import "github.com/btcsuite/btclog"

// log is the package-level subsystem logger. It discards output until a
// caller installs a concrete logger via UseLogger, matching the teacher's
// own per-package logging convention.
var log btclog.Logger

func init() {
	UseLogger(btclog.Disabled)
}

// UseLogger sets the logger used by the discovery package.
func UseLogger(logger btclog.Logger) {
	log = logger
}
