package tools

import (
	"fmt"

	"github.com/golang/glog"
)

var isEnabled = true

func DisableLogger() {
	isEnabled = false
}

// LogOutput writes progress messages. Errors go through glog.Errorf directly
// and are never silenced.
func LogOutput(val ...interface{}) {
	if isEnabled {
		glog.InfoDepth(1, fmt.Sprintln(val...))
	}
}
