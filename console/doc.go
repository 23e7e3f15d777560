// Package console renders the check's status output.
//
// Status lines go to standard error through a logrus logger whose Formatter
// tags each line by severity:
//
//	[ERROR] red, [WARN] magenta, [OK] blue, plain info in cyan.
//
// The banner goes to standard output. Colour can be switched off, and is off
// by default when the target writer is not a terminal.
package console
