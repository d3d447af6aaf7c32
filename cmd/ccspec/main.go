package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andrewchambers/ccspec/cpp"
	"github.com/andrewchambers/ccspec/parse"
)

func printVersion() {
	fmt.Println("ccspec version 0.01")
}

func printUsage() {
	printVersion()
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ccspec [FLAGS] FILE.c")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  CCSPECDEBUG=true adds parser stack traces to syntax errors.")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

func tokenizeFile(path string, out io.Writer) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read source file %s: %s", path, err)
	}
	toks, errs := cpp.Tokenize(path, src)
	if _, err := io.WriteString(out, cpp.Dump(toks)); err != nil {
		return err
	}
	return errs.Err()
}

func parseFile(path string, cfg parse.Config, pretty bool, out io.Writer) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read source file %s: %s", path, err)
	}
	tu, perr := parse.Parse(path, src, cfg)
	if pretty {
		_, err = fmt.Fprintln(out, parse.PrettyString(tu))
	} else {
		_, err = fmt.Fprintln(out, parse.Sexp(tu))
	}
	if err != nil {
		return err
	}
	return perr
}

func main() {
	flag.Usage = printUsage
	tokenizeOnly := flag.Bool("T", false, "Print tokens after lexing.")
	pretty := flag.Bool("pretty", false, "Print the tree with field values instead of as an S-expression.")
	typeNames := flag.String("types", "", "Comma separated identifiers to treat as type names.")
	maxErrors := flag.Int("maxerrors", 0, "Stop reporting syntax errors after this many, 0 for no limit.")
	version := flag.Bool("version", false, "Print version info and exit.")
	outputPath := flag.String("o", "-", "File to write output to, - for stdout.")
	flag.Parse()

	if *version {
		printVersion()
		return
	}
	if flag.NArg() == 0 {
		printUsage()
		os.Exit(1)
	}
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Bad number of args, please specify a single source file.\n")
		os.Exit(1)
	}

	input := flag.Args()[0]
	var output io.WriteCloser
	var err error

	if *outputPath == "-" {
		output = os.Stdout
	} else {
		output, err = os.Create(*outputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open output file %s\n", err)
			os.Exit(1)
		}
		defer output.Close()
	}

	cfg := parse.Config{
		Debug:     os.Getenv("CCSPECDEBUG") == "true",
		MaxErrors: *maxErrors,
	}
	for _, name := range strings.Split(*typeNames, ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.TypeNames = append(cfg.TypeNames, name)
		}
	}

	if *tokenizeOnly {
		err = tokenizeFile(input, output)
	} else {
		err = parseFile(input, cfg, *pretty, output)
	}
	if err != nil {
		reportError(err)
		output.Close()
		os.Exit(1)
	}
}
