package console

import (
	"fmt"
	"io"

	"github.com/enetx/lifecycle"
)

// Printer implements lifecycle.Actions by announcing each action on a writer.
type Printer struct {
	out io.Writer
}

var _ lifecycle.Actions = (*Printer)(nil)

func NewPrinter(out io.Writer) *Printer { return &Printer{out: out} }

func (p *Printer) StartProcessing() error  { return p.say("Starting processing...") }
func (p *Printer) ProcessSucceeded() error { return p.say("Processing succeeded.") }
func (p *Printer) ProcessFailed() error    { return p.say("Processing failed.") }
func (p *Printer) ResetToIdle() error      { return p.say("Resetting to Idle.") }

func (p *Printer) say(msg string) error {
	_, err := fmt.Fprintf(p.out, "ACTION: %s\n", msg)
	return err
}
