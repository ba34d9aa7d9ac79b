package logger

import (
	"fmt"
	"io"
	"log"
	"regexp"
	"sync/atomic"

	"github.com/cornelk/hashmap"
)

const (
	ERROR   = 1
	INFO    = 2
	VERBOSE = 3
	DEBUG   = 7
)

var (
	level   int
	limiter int
	filter  *regexp.Regexp
	counter *hashmap.HashMap
)

func init() {
	level = INFO
	counter = &hashmap.HashMap{}
}

func SetLevel(l int) {
	level = l
}

func SetLimiter(l int) {
	limiter = l
}

func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// SetFilter only prints messages matching the RE2 pattern, an empty
// pattern removes the filter.
func SetFilter(pattern string) error {
	if pattern == "" {
		filter = nil
		return nil
	}
	reg, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	filter = reg
	return nil
}

func Errorf(format string, v ...interface{}) {
	printfAtLevel(ERROR, format, v...)
}

func Println(v ...interface{}) {
	if level >= INFO {
		log.Println(v...)
	}
}

func Printf(format string, v ...interface{}) {
	printfAtLevel(INFO, format, v...)
}

func Verbosef(format string, v ...interface{}) {
	printfAtLevel(VERBOSE, format, v...)
}

func Debugf(format string, v ...interface{}) {
	printfAtLevel(DEBUG, format, v...)
}

func printfAtLevel(l int, format string, v ...interface{}) {
	if level < l {
		return
	}
	out := filterOutput(format, v...)
	if out == "" {
		return
	}
	if !limiterAvailable(out) {
		return
	}
	log.Print(out)
}

func limiterAvailable(out string) bool {
	if limiter == 0 {
		return true
	}
	var i int64
	val, _ := counter.GetOrInsert(out, &i)
	actual := (val).(*int64)
	count := atomic.AddInt64(actual, 1)
	return count <= int64(limiter)
}

func filterOutput(format string, v ...interface{}) string {
	out := fmt.Sprintf(format, v...)
	if filter == nil || filter.MatchString(out) {
		return out
	}
	return ""
}
