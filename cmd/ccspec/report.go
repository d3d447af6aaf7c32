package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/andrewchambers/ccspec/cpp"
)

// reportError prints every diagnostic in err followed by its source line
// with a caret under the column.
func reportError(err error) {
	var errs cpp.ErrorList
	if !errors.As(err, &errs) {
		var loc cpp.ErrorLoc
		if !errors.As(err, &loc) {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		errs = cpp.ErrorList{loc}
	}
	lines := map[string][]string{}
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
		file, ok := lines[e.Pos.File]
		if !ok {
			file = readLines(e.Pos.File)
			lines[e.Pos.File] = file
		}
		if e.Pos.Line < 1 || e.Pos.Line > len(file) {
			fmt.Fprintln(os.Stderr, "")
			continue
		}
		line := file[e.Pos.Line-1]
		fmt.Fprintln(os.Stderr, line)
		fmt.Fprintln(os.Stderr, caret(line, e.Pos.Col))
	}
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var ret []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		ret = append(ret, s.Text())
	}
	return ret
}

// caret returns a marker line for col, a one based byte column. Tabs are
// copied so the caret lines up however the terminal renders them.
func caret(line string, col int) string {
	buf := make([]byte, 0, col)
	for i := 0; i < col-1; i++ {
		if i < len(line) && line[i] == '\t' {
			buf = append(buf, '\t')
		} else {
			buf = append(buf, ' ')
		}
	}
	return string(append(buf, '^'))
}
