package panel

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atinyakov/radclients/internal/models"
)

// Prompter asks questions on an output stream and reads one answer per line.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
	eof     bool
}

// NewPrompter returns a Prompter reading from in.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// Ask prints question and returns the trimmed answer.
func (p *Prompter) Ask(question string) string {
	fmt.Fprint(p.out, question)
	if !p.scanner.Scan() {
		p.eof = true
		return ""
	}
	return strings.TrimSpace(p.scanner.Text())
}

// More reports whether input may still hold answers.
func (p *Prompter) More() bool { return !p.eof }

// PromptForClient asks for every field of a new client. An empty or
// non-numeric zone id leaves the client without a zone.
func (p *Prompter) PromptForClient() models.Client {
	c := models.Client{
		Name:     p.Ask("Enter name: "),
		LastName: p.Ask("Enter last name: "),
		IDNumber: p.Ask("Enter id number: "),
		Status:   p.Ask("Enter status (Active/Suspended/...): "),
	}
	if zone := p.Ask("Enter zone id (leave empty for none): "); zone != "" {
		if id, err := strconv.ParseInt(zone, 10, 64); err == nil {
			c.IDZone = &id
		} else {
			fmt.Fprintf(p.out, "Ignoring zone %q: not a number\n", zone)
		}
	}
	c.Username = p.Ask("Enter RADIUS username: ")
	c.Password = p.Ask("Enter RADIUS password: ")
	return c
}
