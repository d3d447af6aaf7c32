package cpp

import (
	"fmt"
	"strings"
)

type ErrorKind int

const (
	LexError ErrorKind = iota
	SyntaxError
	UnterminatedPreprocessorBlock
)

func (k ErrorKind) String() string {
	switch k {
	case LexError:
		return "lex error"
	case SyntaxError:
		return "syntax error"
	case UnterminatedPreprocessorBlock:
		return "unterminated preprocessor block"
	}
	return "error"
}

type ErrorLoc struct {
	Kind ErrorKind
	Err  error
	Pos  FilePos
}

func (e ErrorLoc) Error() string {
	return fmt.Sprintf("%s at %s", e.Err, e.Pos)
}

func (e ErrorLoc) Unwrap() error {
	return e.Err
}

// ErrorList is every diagnostic produced while reading one source buffer,
// in the order they were found.
type ErrorList []ErrorLoc

func (l *ErrorList) Add(kind ErrorKind, pos FilePos, format string, args ...interface{}) {
	*l = append(*l, ErrorLoc{Kind: kind, Err: fmt.Errorf(format, args...), Pos: pos})
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var sb strings.Builder
	for i, e := range l {
		if i != 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Err returns nil for an empty list so callers can return it directly.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
