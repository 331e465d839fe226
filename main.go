package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/peterh/liner"
)

const historyFile = ".lox_history"

// session owns one interpreter plus the error state for the current input.
// The REPL resets the flags between lines; a script run reads them once at
// the end to pick the exit code.
type session struct {
	interpreter     *Interpreter
	hadError        bool
	hadRuntimeError bool
}

func newSession() *session {
	return &session{interpreter: NewInterpreter()}
}

func (s *session) run(source string) {
	tokenizer := new(Tokenizer)
	tokenizer.Init(source)
	tokens, scanErrs := tokenizer.Tokenize()
	for _, err := range scanErrs {
		fmt.Fprintln(os.Stderr, err)
		s.hadError = true
	}
	if s.hadError {
		return
	}

	stmts, parseErrs := NewParser(tokens).Parse()
	for _, err := range parseErrs {
		fmt.Fprintln(os.Stderr, err)
		s.hadError = true
	}
	if s.hadError {
		return
	}

	locals, err := NewResolver().Resolve(stmts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		s.hadError = true
		return
	}
	for expr, depth := range locals {
		s.interpreter.Resolve(expr, depth)
	}

	if err := s.interpreter.Interpret(stmts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		s.hadRuntimeError = true
	}
}

func (s *session) reset() {
	s.hadError = false
	s.hadRuntimeError = false
}

func main() {
	switch len(os.Args) {
	case 1:
		if err := runPrompt(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case 2:
		runFile(os.Args[1])
	default:
		fmt.Println("Usage: oxidized-lox [script]")
		os.Exit(64)
	}
}

func runFile(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	s := newSession()
	s.run(string(source))

	if s.hadError {
		os.Exit(65)
	}
	if s.hadRuntimeError {
		os.Exit(70)
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

func runPrompt() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath()
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

	s := newSession()
	for {
		line, err := ln.Prompt(":> ")
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue // Ctrl+C cancels the line, not the session
		case errors.Is(err, io.EOF):
			fmt.Println()
			return nil
		case err != nil:
			return err
		}

		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		s.run(line)
		s.reset() // errors don't stick to the next line
	}
}
