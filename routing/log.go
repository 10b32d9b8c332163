package routing

import "github.com/btcsuite/btclog"

// log is the package-level subsystem logger, discarding output until a
// caller installs a concrete logger via UseLogger.
var log btclog.Logger

func init() {
	UseLogger(btclog.Disabled)
}

// UseLogger sets the logger used by the routing package.
func UseLogger(logger btclog.Logger) {
	log = logger
}
