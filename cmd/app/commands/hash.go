package commands

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/allisson/hname/internal/hname"
	"github.com/allisson/hname/internal/registry/http/dto"
)

// RunHash prints the hname of every name in args, followed by the names read
// from filePath, one per line. A filePath of "-" reads streams.Reader.
// No database is needed.
func RunHash(streams IOTuple, args []string, filePath, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	names := append([]string(nil), args...)
	if filePath != "" {
		fromFile, err := readNames(streams.Reader, filePath)
		if err != nil {
			return err
		}
		names = append(names, fromFile...)
	}
	if len(names) == 0 {
		return fmt.Errorf("no names given: pass names as arguments or use --file")
	}

	hnames := make([]hname.HName, len(names))
	for i, name := range names {
		hnames[i] = hname.Hash(name)
	}
	resp := dto.MapHashResponse(names, hnames)

	if format == "json" {
		return writeJSON(streams.Writer, resp)
	}
	for _, r := range resp.Data {
		if _, err := fmt.Fprintf(streams.Writer, "%s\t%s\n", r.HName, r.Name); err != nil {
			return err
		}
	}
	return nil
}

func readNames(stdin io.Reader, filePath string) ([]string, error) {
	r := stdin
	if filePath != "-" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open names file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var names []string
	scanner := bufio.NewScanner(r)
	// Names have no length limit, so lines may outgrow the default token size.
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read names: %w", err)
	}
	return names, nil
}
