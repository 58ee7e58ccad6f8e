package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/peterh/liner"

	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/compiler"
)

const (
	historyFile = ".lukc_history"
	promptMain  = "luk> "
	promptCont  = "...> "
)

const replHelp = `:mode <name>  switch output mode
:tree         dump everything entered so far
:reset        forget all declarations
:quit         leave
`

func cmdRepl(args []string) int {
	cfg, _, err := settings("repl", args)
	if err != nil {
		log.Error.Printf("repl: %v", err)
		return 2
	}
	session := compiler.NewSession(cfg)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Printf("Łukasiewicz REPL (%s mode). Type :help for commands.\n", session.Mode())
	for {
		src, ok := readStatement(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if quit := replCommand(session, trimmed); quit {
				return 0
			}
			continue
		}

		out, diags := session.Eval(src)
		if diags.Count() > 0 {
			fmt.Fprintln(os.Stderr, diags.Format("repl"))
		}
		fmt.Print(out)
	}
}

func replCommand(session *compiler.Session, line string) (quit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Print(replHelp)
	case ":reset":
		session.Reset()
	case ":tree":
		fmt.Print(ast.Dump(session.Tree()))
	case ":mode":
		if len(fields) != 2 {
			fmt.Printf("current mode: %s\n", session.Mode())
			break
		}
		if err := session.SetMode(fields[1]); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %s. Type :help for commands.\n", fields[0])
	}
	return false
}

// readStatement reads lines until every opened brace is closed.
func readStatement(ln *liner.State) (string, bool) {
	var b strings.Builder
	depth := 0
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if err == io.EOF || err == liner.ErrPromptAborted {
			return "", false
		}
		if err != nil {
			log.Error.Printf("repl: %v", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth <= 0 {
			return b.String(), true
		}
	}
}
