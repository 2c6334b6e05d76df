// Command mwpmdecode decodes syndromes against a Stim-style detector
// error model.
//
// Usage: mwpmdecode <dem-file>
//
// Stdin is read one line at a time, each line a space-separated 0/1
// value per detector. Stdout gets one line per input line, a
// space-separated 0/1 value per observable.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/qecmatch/driver"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <dem-file>\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(demPath string, in io.Reader, out io.Writer) error {
	demText, err := os.ReadFile(demPath)
	if err != nil {
		return fmt.Errorf("reading DEM file: %w", err)
	}

	matching, err := driver.FromDEM(string(demText))
	if err != nil {
		return fmt.Errorf("parsing DEM: %w", err)
	}

	w := bufio.NewWriter(out)
	defer w.Flush()

	scanner := bufio.NewScanner(in)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		syndrome := make([]byte, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseUint(f, 10, 8)
			if err != nil || v > 1 {
				return fmt.Errorf("line %d: syndrome values must be 0 or 1, got %q", lineNum, f)
			}
			syndrome[i] = byte(v)
		}

		predictions, err := matching.Decode(syndrome)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}

		parts := make([]string, len(predictions))
		for i, p := range predictions {
			parts[i] = strconv.Itoa(int(p))
		}
		if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
			return err
		}
	}

	return scanner.Err()
}
