// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the bar.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nathoo/ontherocks/engine"
	"github.com/nathoo/ontherocks/engine/state"
	"github.com/nathoo/ontherocks/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Defs      *state.Defs
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		Defs:   eng.Defs,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the night. It shows the intro, opens the start node, then
// loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if c.Defs.Game.Intro != "" {
		c.printLine(c.Defs.Game.Intro)
		c.printLine("")
	}

	result := c.Engine.Start()
	c.printResult(result)
	if c.Trace {
		c.printTrace(result)
	}

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
		if c.Engine.State.GameState == types.GameStateEndNight {
			c.printSystem("The night is over.")
			return
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/mood":
		for _, line := range c.Engine.Mood() {
			c.printLine(line)
		}

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit   Close the bar",
		"  /help   Show this help",
		"  /state  Debug: dump current state",
		"  /mood   Show the patron mood meters",
		"  /trace  Toggle debug trace output",
		"",
		"Behind the bar:",
		"  pour <ingredient> (add)  Add a serving to the glass",
		"  use <glass> (glass)      Switch to another empty glass",
		"  empty (reset)            Tip the glass out",
		"  serve (craft, mix)       Hand the drink over",
		"  shelf (menu)             List the ingredients",
		"  examine <ingredient> (x) Look closely at an ingredient",
		"",
		"In conversation:",
		"  <number> (choose)        Pick a reply",
		"  continue (c)             Move the conversation along",
		"",
		"Anywhere:",
		"  look (l)                 Describe the scene",
		"  mood                     Check the patron's mood",
		"  again (g)                Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	b := c.Engine.Bar
	c.printSystem(fmt.Sprintf("Turn: %d", s.TurnCount))
	c.printSystem(fmt.Sprintf("Game state: %s", s.GameState))
	c.printSystem(fmt.Sprintf("Patron: %s", orNone(s.Patron)))
	c.printSystem(fmt.Sprintf("Node: %s", orNone(s.Node)))
	c.printSystem(fmt.Sprintf("Glass: %s %g/%g (%s)", b.Glass().ID, b.CurrentVolume(), b.Capacity(), b.Phase()))
	if len(s.Flags) > 0 {
		c.printSystem(fmt.Sprintf("Flags: %v", s.Flags))
	}
	if len(s.Counters) > 0 {
		c.printSystem(fmt.Sprintf("Counters: %v", s.Counters))
	}
	if len(s.Vars) > 0 {
		keys := make([]string, 0, len(s.Vars))
		for k := range s.Vars {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%g", k, s.Vars[k]))
		}
		c.printSystem("Vars: " + strings.Join(parts, " "))
	}
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Commands) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Commands: %d", len(result.Commands)))
		for _, cmd := range result.Commands {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", cmd.Type, cmd.Params))
		}
	}
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
