// Command query is a jq-like filter engine for JSON documents, built
// on succinct's semi-indexed representation (package jsonindex):
// documents are indexed, not parsed, so the supported filters run
// without ever materializing values the query doesn't visit.
//
// Supported filters (see succinct/query):
//
//	.            produce the input as the output.
//	.foo         the value of object key "foo", or null if absent.
//	.foo?        like .foo, but does not error on a non-object input.
//	.["foo"]     equivalent to .foo, for any key text.
//	.[2]         the list element at index 2 (0-based, negative OK).
//	.[10:15]     the list slice [10, 15).
//	.[]          every element of a list, or every value of an object.
//	.[]?         like .[], but does not error on a non-container input.
//	a, b         concatenate the outputs of filters a and b.
//	a | b        pipe the output of filter a into filter b.
//
// Grounded on succinct/json.py's main().
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"succinct/jsonindex"
	"succinct/query"
)

func main() {
	var (
		filterArg = flag.String("f", ".", "jq-like filter to apply to each document")
		verbose   = flag.Bool("v", false, "report document sizes and progress on stderr")
	)
	flag.Usage = usage
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	q, err := query.Compile(*filterArg)
	if err != nil {
		fail("%v", err)
	}

	var bar *progressbar.ProgressBar
	if *verbose && len(paths) > 1 {
		bar = progressbar.Default(int64(len(paths)), "querying")
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for _, path := range paths {
		if err := runOne(w, q, path, *verbose); err != nil {
			fail("%s: %v", path, err)
		}
		if bar != nil {
			bar.Add(1)
		}
	}
}

func runOne(w io.Writer, q *query.Query, path string, verbose bool) error {
	src, err := readInput(path)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, humanize.Bytes(uint64(len(src))))
	}

	doc := jsonindex.NewDocument(src)
	root, err := doc.Root()
	if err != nil {
		return err
	}

	if verbose {
		report, err := doc.SizeReport()
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stderr, report.String())
	}

	results, err := q.Execute(root)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintln(w, r)
	}
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: query [-f filter] [-v] [file ...]\n\n")
	flag.PrintDefaults()
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
