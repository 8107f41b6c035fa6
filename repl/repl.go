package repl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/luthersystems/sexpread/lisp"
	"github.com/luthersystems/sexpread/sexp"
)

// RunRepl runs a simple read-print loop on stdin.  Symbols are interned in
// one model for the life of the session.
func RunRepl(prompt string) {
	model := lisp.NewModel()

	rl, err := readline.New(prompt)
	if err != nil {
		panic(err)
	}
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	var buf []byte
	for {
		var line []byte
		line, err = rl.ReadSlice()
		if err != nil && err != readline.ErrInterrupt {
			break
		}
		if err == readline.ErrInterrupt {
			line = nil
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(buf) != 0 {
			buf = append(buf, '\n')
			line = append(buf, line...)
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(line) != 0 {
			complete := printLine(model, line)
			if !complete {
				buf = line
				rl.SetPrompt(contPrompt)
			}
		}
	}
	if err != io.EOF {
		errln(err)
		return
	}
	errln("done")
}

// printLine reads every datum in line and prints each on its own line.  A
// false return means the input ended mid-datum and should be continued.
func printLine(model *lisp.Model, line []byte) bool {
	r := model.NewReader("repl", bytes.NewReader(line))
	vs, err := r.ReadAll()
	if sexp.IsSyntaxError(err, sexp.ErrUnexpectedEOF) {
		return false
	}
	for _, v := range vs {
		fmt.Println(v.(*lisp.LVal))
	}
	if err != nil {
		errln(err)
	}
	return true
}

func errln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}
