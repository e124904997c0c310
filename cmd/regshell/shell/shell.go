// Package shell provides the interactive console of regshell.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/chzyer/readline"
	"github.com/devreg/devreg-go/pkg/register"
	"github.com/devreg/devreg-go/pkg/register/async"
	"github.com/devreg/devreg-go/pkg/regmap"
	"github.com/devreg/devreg-go/pkg/regspec"
)

// ErrNotPermitted is returned when a register's access kind forbids the
// requested operation.
var ErrNotPermitted = errors.New("operation not permitted")

// Config configures a Shell.
type Config struct {
	// Map describes the device's registers.
	Map *regspec.Map

	// Transport serves raw register accesses.
	Transport async.Interface[uint64]

	// Stats returns access counters, if the backend keeps them.
	Stats func(addr uint64) regmap.Counters

	// Prompt defaults to "<device>> ".
	Prompt string
}

// Shell runs register commands against one device.
type Shell struct {
	m      *regspec.Map
	t      async.Interface[uint64]
	stats  func(addr uint64) regmap.Counters
	prompt string
}

// New creates a shell.
func New(cfg Config) (*Shell, error) {
	if cfg.Map == nil || cfg.Transport == nil {
		return nil, errors.New("shell: map and transport are required")
	}
	prompt := cfg.Prompt
	if prompt == "" {
		name := cfg.Map.Device
		if name == "" {
			name = "device"
		}
		prompt = name + "> "
	}
	return &Shell{m: cfg.Map, t: cfg.Transport, stats: cfg.Stats, prompt: prompt}, nil
}

// Run reads commands from the terminal until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    s.completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s.printHelp(rl.Stdout())
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return nil
		}
		if !s.Exec(ctx, rl.Stdout(), line) {
			return nil
		}
	}
}

func (s *Shell) completer() *readline.PrefixCompleter {
	names := func(string) []string {
		out := make([]string, len(s.m.Registers))
		for i, r := range s.m.Registers {
			out[i] = r.Name
		}
		return out
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("list"),
		readline.PcItem("read", readline.PcItemDynamic(names)),
		readline.PcItem("write", readline.PcItemDynamic(names)),
		readline.PcItem("edit", readline.PcItemDynamic(names)),
		readline.PcItem("stats"),
		readline.PcItem("quit"),
	)
}

// Exec runs one command line, writing its output to w. It returns false
// when the shell should exit.
func (s *Shell) Exec(ctx context.Context, w io.Writer, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp(w)
	case "list", "ls", "l":
		s.cmdList(w)
	case "read", "r":
		err = s.cmdRead(ctx, w, args)
	case "write", "w":
		err = s.cmdWrite(ctx, w, args)
	case "edit", "e":
		err = s.cmdEdit(ctx, w, args)
	case "stats":
		s.cmdStats(w)
	case "quit", "exit", "q":
		fmt.Fprintln(w, "Exiting...")
		return false
	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return true
}

func (s *Shell) printHelp(w io.Writer) {
	fmt.Fprintf(w, `
Register Shell (%s):
  list                        - List registers and their access
  read <reg>                  - Read a register and decode its fields
  write <reg> <value>         - Write a whole register
  edit <reg> <field> <value>  - Read, change one field, write back
  edit <reg> <mask> <value>   - Read, change the masked bits, write back
  stats                       - Show access counters
  help                        - Show this help
  quit                        - Exit
`, s.m.Device)
}

func (s *Shell) cmdList(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tADDR\tACCESS\tWIDTH\tDESCRIPTION")
	for i := range s.m.Registers {
		r := &s.m.Registers[i]
		fmt.Fprintf(tw, "%s\t0x%02X\t%s\t%d\t%s\n", r.Name, r.Addr, r.Kind, r.Width, r.Description)
	}
	tw.Flush()
}

func (s *Shell) cmdStats(w io.Writer) {
	if s.stats == nil {
		fmt.Fprintln(w, "Access counters are not kept by this backend.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tREADS\tWRITES")
	for i := range s.m.Registers {
		r := &s.m.Registers[i]
		c := s.stats(r.Addr)
		fmt.Fprintf(tw, "%s\t%d\t%d\n", r.Name, c.Reads, c.Writes)
	}
	tw.Flush()
}

func (s *Shell) cmdRead(ctx context.Context, w io.Writer, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(w, "Usage: read <reg>")
		return nil
	}
	r, err := s.lookup(args[0], register.Access.CanRead, "read")
	if err != nil {
		return err
	}

	v := &raw{reg: r}
	if err := s.t.ReadRegister(ctx, v); err != nil {
		return err
	}
	s.printValue(w, r, v.v)
	return nil
}

func (s *Shell) cmdWrite(ctx context.Context, w io.Writer, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(w, "Usage: write <reg> <value>")
		return nil
	}
	r, err := s.lookup(args[0], register.Access.CanWrite, "written")
	if err != nil {
		return err
	}
	x, err := parseValue(args[1], r.Mask())
	if err != nil {
		return err
	}

	if err := s.t.WriteRegister(ctx, &raw{reg: r, v: x}); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s <- %s\n", r.Name, formatHex(r, x))
	return nil
}

func (s *Shell) cmdEdit(ctx context.Context, w io.Writer, args []string) error {
	if len(args) != 3 {
		fmt.Fprintln(w, "Usage: edit <reg> <field|mask> <value>")
		return nil
	}
	r, err := s.lookup(args[0], register.Access.CanEdit, "edited")
	if err != nil {
		return err
	}

	var apply func(old uint64) uint64
	if f, ok := r.Field(args[1]); ok {
		if f.Reserved {
			return fmt.Errorf("%s.%s is reserved", r.Name, f.Name)
		}
		x, err := parseValue(args[2], f.Mask()>>uint(f.Offset))
		if err != nil {
			return err
		}
		apply = func(old uint64) uint64 { return f.Insert(old, x) }
	} else {
		mask, err := parseValue(args[1], r.Mask())
		if err != nil {
			return fmt.Errorf("%q is neither a field of %s nor a mask: %w", args[1], r.Name, err)
		}
		x, err := parseValue(args[2], r.Mask())
		if err != nil {
			return err
		}
		apply = func(old uint64) uint64 { return old&^mask | x&mask }
	}

	var before, after uint64
	err = s.exclusive(ctx, func(t async.Interface[uint64]) error {
		v := &raw{reg: r}
		if err := t.ReadRegister(ctx, v); err != nil {
			return err
		}
		before = v.v
		v.v = apply(v.v)
		after = v.v
		return t.WriteRegister(ctx, v)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %s -> %s\n", r.Name, formatHex(r, before), formatHex(r, after))
	return nil
}

// exclusive runs fn under the transport's Sequencer, if it has one.
func (s *Shell) exclusive(ctx context.Context, fn func(async.Interface[uint64]) error) error {
	if seq, ok := s.t.(async.Sequencer[uint64]); ok {
		return seq.Exclusive(ctx, fn)
	}
	return fn(s.t)
}

// lookup finds a register and checks that its access kind allows an
// operation.
func (s *Shell) lookup(name string, allowed func(register.Access) bool, verb string) (*regspec.Register, error) {
	r, ok := s.m.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown register %q (type 'list' for registers)", name)
	}
	access, err := r.Access()
	if err != nil {
		return nil, err
	}
	if !allowed(access) {
		return nil, fmt.Errorf("%w: %s is %s and cannot be %s", ErrNotPermitted, r.Name, r.Kind, verb)
	}
	return r, nil
}

func (s *Shell) printValue(w io.Writer, r *regspec.Register, v uint64) {
	fmt.Fprintf(w, "%s (0x%02X) = %s\n", r.Name, r.Addr, formatHex(r, v))
	for _, f := range r.Fields {
		if f.Reserved {
			continue
		}
		fmt.Fprintf(w, "  %-16s %d\n", f.Name, f.Extract(v))
	}
}

func formatHex(r *regspec.Register, v uint64) string {
	return fmt.Sprintf("0x%0*X", r.Bytes()*2, v)
}

// parseValue parses a decimal, hex (0x), octal (0o) or binary (0b) value
// that must fit in limit.
func parseValue(s string, limit uint64) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	if v&^limit != 0 {
		return 0, fmt.Errorf("value %s does not fit in 0x%X", s, limit)
	}
	return v, nil
}
