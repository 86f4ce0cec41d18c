package structure

import (
	"io"
	"log"
	"os"
)

// LogWhere decides where diagnostics go. "" means throw them away,
// "stdout" means standard output and anything else is a file we append
// to. The same convention is used everywhere in this module.
func LogWhere(dest string) (*log.Logger, error) {
	var w io.Writer
	switch dest {
	case "":
		w = io.Discard
	case "stdout":
		w = os.Stdout
	default:
		var err error
		w, err = os.OpenFile(dest, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0777)
		if err != nil {
			return nil, err
		}
	}
	return log.New(w, "", log.Lshortfile), nil
}
