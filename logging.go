package substrate

import "log"

// defaultErrorSink logs swallowed internal failures with the standard
// library logger, matching the "log.Printf and continue" convention for
// this class of event, with a bracketed component prefix.
func defaultErrorSink(format string, args ...any) {
	log.Printf("[substrate] "+format, args...)
}
