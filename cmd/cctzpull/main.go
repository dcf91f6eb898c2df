// Command cctzpull downloads the latest IANA time zone database and
// compiles it into TZif files, playing the role of `zic` fed straight
// from tzdata-latest.tar.gz instead of a local checkout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ngrash/go-cctz/tzc"
	"github.com/ngrash/go-cctz/tzdb/ianadist"
)

func main() {
	out := flag.String("out", "zoneinfo", "output directory for compiled TZif files")
	etag := flag.String("etag", "", "ETag from a previous run; skips the download if the release is unchanged")
	flag.Parse()

	if err := run(*out, *etag); err != nil {
		log.Fatal(err)
	}
}

func run(out, etag string) error {
	ctx := context.Background()
	release, newEtag, err := ianadist.Latest(ctx, etag)
	if err != nil {
		return fmt.Errorf("fetching latest release: %w", err)
	}
	if release == nil {
		fmt.Println("release unchanged, nothing to do")
		return nil
	}
	fmt.Printf("compiling tzdb release %s (etag %s)\n", release.Version, newEtag)

	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}

	zones, compileErrs := tzc.CompileRelease(release)
	for _, e := range compileErrs {
		fmt.Fprintln(os.Stderr, "warning:", e)
	}

	var failures int
	for zone, data := range zones {
		if err := writeZone(out, zone, data); err != nil {
			fmt.Fprintf(os.Stderr, "warning: writing %s: %v\n", zone, err)
			failures++
		}
	}

	if failures > 0 || len(compileErrs) > 0 {
		fmt.Printf("completed with %d compile failure(s), %d write failure(s)\n", len(compileErrs), failures)
	}
	return nil
}

func writeZone(out, zone string, data []byte) error {
	path := filepath.Join(out, filepath.FromSlash(zone))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
