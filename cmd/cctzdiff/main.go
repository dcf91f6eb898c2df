// Command cctzdiff decodes two TZif files and reports how their decoded
// contents differ, or, given the -zones flag and two zone names instead of
// file paths, compares the civil breakdown of an instant across the zones.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/go-cmp/cmp"
	cctz "github.com/ngrash/go-cctz"
	_ "github.com/ngrash/go-cctz/tzfif"
	"github.com/ngrash/go-cctz/tzif"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	zoneMode := flag.Bool("zones", false, "diff the breakdown of an instant across two zones named by the arguments")
	at := flag.Int64("at", 0, "unix seconds to break down (only with -zones)")
	flag.Parse()
	args := flag.Args()
	if len(args) != 2 {
		return fmt.Errorf("usage: cctzdiff <tzif file A> <tzif file B>\n       cctzdiff -zones [-at seconds] <zone A> <zone B>")
	}

	if *zoneMode {
		return diffZones(args[0], args[1], *at)
	}
	return diffFiles(args[0], args[1])
}

func diffFiles(pathA, pathB string) error {
	af, err := os.ReadFile(pathA)
	if err != nil {
		return err
	}
	bf, err := os.ReadFile(pathB)
	if err != nil {
		return err
	}

	adata, err := tzif.DecodeData(bytes.NewReader(af))
	if err != nil {
		return err
	}
	bdata, err := tzif.DecodeData(bytes.NewReader(bf))
	if err != nil {
		return err
	}

	if diff := cmp.Diff(adata, bdata); diff != "" {
		fmt.Println("files are different: -A +B")
		fmt.Println(diff)
	} else {
		fmt.Println("files are identical")
	}
	return nil
}

func diffZones(nameA, nameB string, at int64) error {
	var za, zb cctz.Zone
	if !cctz.Load(nameA, &za) {
		fmt.Fprintf(os.Stderr, "warning: %s not recognized, using UTC\n", nameA)
	}
	if !cctz.Load(nameB, &zb) {
		fmt.Fprintf(os.Stderr, "warning: %s not recognized, using UTC\n", nameB)
	}

	t := cctz.UnixInstant(at)
	a := za.Break(t)
	b := zb.Break(t)

	fmt.Printf("%-6s %s  offset=%s abbr=%s dst=%t\n", nameA,
		cctz.Format("%Y-%m-%d %H:%M:%S", t, za), formatOffset(a.Offset), a.Abbr, a.IsDST)
	fmt.Printf("%-6s %s  offset=%s abbr=%s dst=%t\n", nameB,
		cctz.Format("%Y-%m-%d %H:%M:%S", t, zb), formatOffset(b.Offset), b.Abbr, b.IsDST)
	return nil
}

func formatOffset(seconds int32) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return sign + strconv.Itoa(int(seconds/3600)) + ":" + strconv.Itoa(int(seconds%3600/60))
}
