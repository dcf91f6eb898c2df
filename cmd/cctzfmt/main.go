// Command cctzfmt formats or parses a time against a named zone using
// cctz's strftime-style directives, exercising Load, Format, and Parse
// end-to-end.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	cctz "github.com/ngrash/go-cctz"
	_ "github.com/ngrash/go-cctz/tzfif"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	zone := flag.String("zone", "UTC", "IANA zone name, or \"localtime\"")
	format := flag.String("format", "%Y-%m-%dT%H:%M:%S%Ez", "strftime-style directive string")
	parse := flag.String("parse", "", "if set, parse this input instead of formatting the current time")
	at := flag.Int64("at", 0, "unix seconds to format (ignored with -parse); 0 means now")
	flag.Parse()

	var z cctz.Zone
	if !cctz.Load(*zone, &z) {
		fmt.Fprintf(os.Stderr, "warning: zone %q not recognized, using UTC\n", *zone)
	}

	if *parse != "" {
		var t cctz.Instant
		if !cctz.Parse(*format, *parse, z, &t) {
			return fmt.Errorf("could not parse %q with format %q", *parse, *format)
		}
		fmt.Println(t.UnixSeconds())
		return nil
	}

	sec := *at
	if sec == 0 {
		sec = time.Now().Unix()
	}
	fmt.Println(cctz.Format(*format, cctz.UnixInstant(sec), z))
	return nil
}
