// Package tzc compiles parsed IANA tzdata source (package tzdata) into
// TZif binary data (package tzif), playing the role of zic.
package tzc

import (
	"bytes"
	"fmt"

	"github.com/ngrash/go-cctz/internal/tzir"
	"github.com/ngrash/go-cctz/tzdata"
	"github.com/ngrash/go-cctz/tzdb/ianadist"
	"github.com/ngrash/go-cctz/tzif"
)

// CompileBytes parses and compiles a tzdata source file, returning the
// encoded TZif bytes for each zone it defines.
func CompileBytes(dataBuf []byte) (map[string][]byte, error) {
	f, err := tzdata.Parse(bytes.NewReader(dataBuf))
	if err != nil {
		return nil, err
	}
	compiled, err := Compile(f)
	if err != nil {
		return nil, err
	}
	result := make(map[string][]byte)
	for zone, data := range compiled {
		buf := new(bytes.Buffer)
		if err := data.Encode(buf); err != nil {
			return nil, err
		}
		result[zone] = buf.Bytes()
	}
	return result, nil
}

// CompileRelease compiles every data file in an IANA tzdb release into
// TZif bytes, keyed by zone name, playing the role cmd/cctzpull otherwise
// had to orchestrate by hand over ianadist.Release's raw DataFiles map.
// Per-file compile errors are collected and returned alongside whatever
// zones did compile successfully, so one malformed data file in a release
// doesn't block the rest.
func CompileRelease(rel *ianadist.Release) (map[string][]byte, []error) {
	result := make(map[string][]byte)
	var errs []error
	for _, name := range rel.DataFileNames() {
		zones, err := CompileBytes(rel.DataFiles[name])
		if err != nil {
			errs = append(errs, fmt.Errorf("compiling %s: %w", name, err))
			continue
		}
		for zone, data := range zones {
			result[zone] = data
		}
	}
	return result, errs
}

// Compile compiles every zone defined in f into TZif data, keyed by zone
// name.
func Compile(f tzdata.File) (map[string]tzif.Data, error) {
	// Group zone lines by zone name; continuation lines share the name of
	// the most recent non-continuation line.
	var (
		zones    = make(map[string][]tzdata.ZoneLine)
		order    []string
		lastName string
	)
	for _, l := range f.ZoneLines {
		if !l.Continuation {
			lastName = l.Name
			order = append(order, lastName)
		}
		zones[lastName] = append(zones[lastName], l)
	}

	result := make(map[string]tzif.Data)
	for _, name := range order {
		z, err := compileZone(f, name, zones[name])
		if err != nil {
			return nil, fmt.Errorf("compiling zone %s: %v", name, err)
		}
		if err := tzif.Validate(z); err != nil {
			return nil, fmt.Errorf("compiling zone %s: invalid tzif: %v", name, err)
		}
		result[name] = z
	}
	return result, nil
}

func compileZone(f tzdata.File, name string, lines []tzdata.ZoneLine) (tzif.Data, error) {
	irz, err := tzir.Process(f, name, lines)
	if err != nil {
		return tzif.Data{}, err
	}

	var b builder
	b.minimalV1Compliance()
	b.setInitial(irz.Initial)
	for _, t := range irz.Transitions {
		b.addTransition(t)
	}
	b.setFooter("")
	b.deriveV2HeaderFromData()

	return b.Data(), nil
}
