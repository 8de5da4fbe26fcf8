// lv2inspect loads a plugin description and shows what a host would see:
// descriptors, the port layout and parameters. With --simulate it runs
// blocks through a pass-through instance, driving it the way a host does.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"

	"github.com/spf13/pflag"

	"github.com/justyntemme/lv2go/pkg/framework/debug"
	fwplugin "github.com/justyntemme/lv2go/pkg/framework/plugin"
	"github.com/justyntemme/lv2go/pkg/framework/process"
	"github.com/justyntemme/lv2go/pkg/lv2"
	"github.com/justyntemme/lv2go/pkg/lv2/atom"
	"github.com/justyntemme/lv2go/pkg/lv2/urid"
	"github.com/justyntemme/lv2go/pkg/midi"
	"github.com/justyntemme/lv2go/pkg/plugin"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	config      string
	descriptors bool
	params      bool
	simulate    bool
	blocks      int
	blockSize   int
	hostMax     int
	logLevel    string
}

func run(args []string, stdout io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("lv2inspect", pflag.ContinueOnError)
	flagSet.SetOutput(stdout)
	flagSet.StringVarP(&opts.config, "config", "c", "plugin.yaml", "plugin description to load")
	flagSet.BoolVar(&opts.descriptors, "descriptors", true, "list descriptors and port layout")
	flagSet.BoolVar(&opts.params, "params", true, "list parameters")
	flagSet.BoolVar(&opts.simulate, "simulate", false, "run blocks through a pass-through instance")
	flagSet.IntVar(&opts.blocks, "blocks", 4, "number of blocks to simulate")
	flagSet.IntVar(&opts.blockSize, "block-size", 256, "samples per simulated block")
	flagSet.IntVar(&opts.hostMax, "host-max", 0, "maximum block length the simulated host announces (0: none)")
	flagSet.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error, off")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	level, ok := debug.ParseLevel(opts.logLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", opts.logLevel)
	}
	debug.SetLevel(level)

	cfg, err := fwplugin.LoadConfig(opts.config)
	if err != nil {
		return err
	}
	mon := &monitor{}
	p := plugin.FromConfig(cfg, func(base *fwplugin.Base) (plugin.Processor, error) {
		return fwplugin.NewSimpleProcessor(base, mon.process), nil
	})
	table := plugin.NewDescriptorTable(p)
	if err := table.Err(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s (%s) %s by %s\n", cfg.Plugin.Name, cfg.Plugin.URI, cfg.Plugin.Version, cfg.Plugin.Vendor)

	if opts.descriptors {
		printDescriptors(stdout, cfg, table)
	}
	if opts.params {
		printParams(stdout, cfg)
	}
	if opts.simulate {
		return simulate(stdout, cfg, table, mon, opts)
	}
	return nil
}

func printDescriptors(w io.Writer, cfg *fwplugin.Config, table *plugin.DescriptorTable) {
	fmt.Fprintf(w, "\ndescriptors:\n")
	for i := 0; i < table.Len(); i++ {
		d, _ := table.Descriptor(i)
		fmt.Fprintf(w, "  [%d] %s  %d in / %d out\n", d.Index, d.URI,
			cfg.IO[i].Inputs, cfg.IO[i].Outputs)
	}

	base, err := fwplugin.NewBase(cfg)
	if err != nil {
		return
	}
	layout := plugin.Layout{Inputs: base.MaxInputs(), Outputs: base.MaxOutputs()}
	if cfg.ControlPorts {
		layout.Controls = len(cfg.Parameters)
	}
	fmt.Fprintf(w, "\nports (%d):\n", layout.Count())
	for port := 0; port < layout.Count(); port++ {
		kind, index := layout.Resolve(uint32(port))
		fmt.Fprintf(w, "  %3d %-9s %d\n", port, kind, index)
	}
}

func printParams(w io.Writer, cfg *fwplugin.Config) {
	base, err := fwplugin.NewBase(cfg)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "\nparameters:\n")
	for _, p := range base.Parameters().All() {
		fmt.Fprintf(w, "  %-3d %-20s %s  [%g, %g]  %s\n", p.ID, p.Name,
			p.FormatValue(p.GetValue()), p.Min, p.Max, cfg.Plugin.ParameterKey(int(p.ID)))
	}
}

// monitor passes audio through and keeps the MIDI each block delivered.
type monitor struct {
	received []midi.Message
}

func (m *monitor) process(ctx *process.Context) {
	m.received = append(m.received, ctx.MIDI()...)
	ctx.CopyInputToOutput()
}

func (m *monitor) print(w io.Writer) {
	notes := 0
	for _, msg := range m.received {
		if msg.IsNote() {
			notes++
		}
	}
	fmt.Fprintf(w, "  midi received: %d (%d notes)\n", len(m.received), notes)
	for _, msg := range m.received {
		fmt.Fprintf(w, "    %s\n", msg)
	}
}

func simulate(w io.Writer, cfg *fwplugin.Config, table *plugin.DescriptorTable, mon *monitor, opts options) error {
	if opts.blockSize < 0 || opts.blocks < 0 {
		return fmt.Errorf("blocks and block size must not be negative")
	}
	d, ok := table.Descriptor(0)
	if !ok {
		return fmt.Errorf("no descriptor")
	}

	urids := urid.NewTable()
	vocab := atom.MapURIDs(urids)
	features := urids.Features()
	if opts.hostMax > 0 {
		maxBlock := int32(opts.hostMax)
		features = append(features, lv2.Feature{
			URI: lv2.OptionsURI,
			Data: []lv2.Option{{
				Key:   urids.Map(lv2.BufSizeMaxBlockLength),
				Size:  4,
				Type:  vocab.Int,
				Value: unsafe.Pointer(&maxBlock),
			}},
		})
	}

	in, err := d.Instantiate(48000, features)
	if err != nil {
		return err
	}
	defer in.Cleanup()

	layout := in.Layout()
	events := make([]byte, 4096)
	out := make([]byte, 4096)
	audio := make([][]float32, layout.Inputs+layout.Outputs)
	for i := range audio {
		audio[i] = make([]float32, opts.blockSize)
	}
	in.ConnectPort(plugin.PortEventsIn, unsafe.Pointer(&events[0]))
	in.ConnectPort(plugin.PortEventsOut, unsafe.Pointer(&out[0]))
	if opts.blockSize > 0 {
		for i := range audio {
			in.ConnectPort(uint32(plugin.PortEventsOut+1+i), unsafe.Pointer(&audio[i][0]))
		}
	}

	count := in.IdentifierMap().Len()
	in.Activate()
	for b := 0; b < opts.blocks; b++ {
		f := atom.NewForge(vocab, events)
		f.BeginSequence()
		if count > 0 {
			key := urids.Map(cfg.Plugin.ParameterKey(b % count))
			f.PatchSet(int64(b*7), key, vocab.FloatValue(float32(b)/float32(max(opts.blocks, 1))))
		}
		f.MIDI(int64(b*11), 0x90, uint8(60+b%12), 100)
		f.MIDI(int64(b*11+1), 0xB0, 1, uint8(b%128))
		if _, err := f.End(); err != nil {
			return err
		}
		in.Run(uint32(opts.blockSize))
	}
	in.Deactivate()

	s := in.Stats()
	fmt.Fprintf(w, "\nsimulation: %d blocks of %d samples, max block %d\n", s.Blocks, opts.blockSize, in.MaxBlockSize())
	fmt.Fprintf(w, "  dropped events: %d, dropped midi: %d, block growths: %d\n", s.Dropped, s.MidiDropped, s.Growths)
	for i := 0; i < count; i++ {
		fmt.Fprintf(w, "  param %d = %g\n", i, in.Parameter(i))
	}
	mon.print(w)
	return nil
}
