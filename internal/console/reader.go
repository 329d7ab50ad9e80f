package console

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/manifoldco/promptui"
)

const promptLabel = "Enter command (start, succeed, fail, reset, exit)"

// LineReader supplies one command line at a time. It returns io.EOF when input ends.
type LineReader interface {
	ReadLine() (string, error)
}

// PromptReader reads commands interactively from a terminal.
type PromptReader struct {
	prompt promptui.Prompt
}

func NewPromptReader(stdin io.ReadCloser, stdout io.WriteCloser) *PromptReader {
	return &PromptReader{
		prompt: promptui.Prompt{
			Label:  promptLabel,
			Stdin:  stdin,
			Stdout: stdout,
		},
	}
}

func (r *PromptReader) ReadLine() (string, error) {
	line, err := r.prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return "", io.EOF
		}

		return "", err
	}

	return line, nil
}

// ScanReader reads newline-separated commands from a non-interactive source,
// such as a pipe or a script file.
type ScanReader struct {
	scanner *bufio.Scanner
}

func NewScanReader(r io.Reader) *ScanReader {
	return &ScanReader{scanner: bufio.NewScanner(r)}
}

func (r *ScanReader) ReadLine() (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}

	if err := r.scanner.Err(); err != nil {
		return "", err
	}

	return "", io.EOF
}

// StdinReader picks a PromptReader when stdin is a terminal and a ScanReader otherwise.
func StdinReader() LineReader {
	if fi, err := os.Stdin.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		return NewPromptReader(os.Stdin, os.Stdout)
	}

	return NewScanReader(os.Stdin)
}
