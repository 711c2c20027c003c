package re2

import "github.com/ledgerwatch/log/v3"

// logger is the package logger. It writes through log.Root, so its output
// follows whatever handler the program installs there.
var logger = log.New("pkg", "re2")

// logCompileError reports a failed compile when o asks for it.
func logCompileError(o Options, pattern string, err *Error) {
	if !o.LogErrors {
		return
	}
	o.logger().Error("Error parsing '"+pattern+"': "+err.Message, "code", int(err.Code))
}
