// Copyright (C) 2026 The Shoal Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Command shoal exposes the external sorter (C8) as a standalone tool:
// bounded-memory sort of a line-oriented file too large to hold in
// memory at once.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shoaldata/shoal/extsort"
)

const version = "0.1.0"

func main() {
	log.SetFlags(0)
	log.SetPrefix("shoal: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "sort":
		runSort(os.Args[2:])
	case "version":
		fmt.Println(version)
	case "-h", "-help", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "shoal: unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: shoal <command> [flags] [file]")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  sort     external-sort lines of a file (or stdin) to stdout")
	fmt.Fprintln(os.Stderr, "  version  print the shoal version")
}

func runSort(args []string) {
	fs := flag.NewFlagSet("sort", flag.ExitOnError)
	chunkSize := fs.Int64("chunk-size", 100*1024*1024, "in-memory chunk size in bytes before spilling to disk")
	header := fs.Bool("header", false, "treat the first input line as a header; pass it through unsorted")
	compress := fs.Bool("compress", false, "zstd-compress spill chunks on disk")
	numeric := fs.Bool("numeric", false, "compare lines as numbers instead of lexicographically")
	out := fs.String("o", "", "output file (default stdout)")
	fs.Parse(args)

	cmp := lexicographic
	if *numeric {
		cmp = numericCompare
	}

	opts := extsort.NewOptions().
		WithChunkSize(*chunkSize).
		WithComparator(cmp).
		WithSkipHeader(*header).
		WithCompression(*compress)

	var in io.Reader = os.Stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			log.Fatalf("open %s: %v", fs.Arg(0), err)
		}
		defer f.Close()
		in = f
	}

	var dst io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("create %s: %v", *out, err)
		}
		defer f.Close()
		dst = f
	}

	bw := bufio.NewWriter(dst)
	if err := extsort.Sort(in, bw, opts); err != nil {
		log.Fatalf("sort: %v", err)
	}
	if err := bw.Flush(); err != nil {
		log.Fatalf("flush: %v", err)
	}
}

func lexicographic(a, b string) int {
	return strings.Compare(a, b)
}

// numericCompare compares lines as floating-point numbers, falling back to a
// lexicographic comparison when either side fails to parse.
func numericCompare(a, b string) int {
	af, aerr := strconv.ParseFloat(strings.TrimSpace(a), 64)
	bf, berr := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if aerr != nil || berr != nil {
		return lexicographic(a, b)
	}
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}
