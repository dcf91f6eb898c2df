// Command tzinspect answers civil-time questions about a compiled TZif
// file: what offset, abbreviation, and DST status applies at a given
// instant.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"time"

	cctz "github.com/ngrash/go-cctz"
	"github.com/ngrash/go-cctz/tzfif"
	"github.com/ngrash/go-cctz/tzif"
)

func main() {
	at := flag.Int64("at", 0, "unix seconds to inspect; 0 means now")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: tzinspect [-at seconds] <tzif file>")
		os.Exit(1)
	}

	if err := run(args[0], *at); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(path string, at int64) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	data, err := tzif.DecodeData(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}

	backend, err := tzfif.NewBackend(data)
	if err != nil {
		return fmt.Errorf("building backend: %w", err)
	}
	z := cctz.NewZone(backend, path)

	sec := at
	if sec == 0 {
		sec = time.Now().Unix()
	}
	t := cctz.UnixInstant(sec)
	bd := z.Break(t)

	fmt.Printf("%s\n", cctz.Format("%Y-%m-%dT%H:%M:%S%Ez", t, z))
	fmt.Printf("  abbr   = %s\n", bd.Abbr)
	fmt.Printf("  offset = %ds\n", bd.Offset)
	fmt.Printf("  dst    = %t\n", bd.IsDST)
	fmt.Printf("  yday   = %d\n", bd.Yearday)
	fmt.Printf("  wday   = %d\n", bd.Weekday)
	return nil
}
