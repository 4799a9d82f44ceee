// Command kenbak is a headless host for the kenbak core: it loads a
// raw memory image, then runs, single-steps, pokes/peeks, or drops
// into an interactive monitor over it.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mkessler/kenbak1/internal/loader"
	"github.com/mkessler/kenbak1/kenbak"
	"github.com/spf13/cobra"
)

// signalHost is the Host implementation for headless runs: it
// throttles to approximate the reference machine's instruction rate
// and asks to stop on SIGINT/SIGTERM, the same signals
// console/machine.go's BIOS watches for during a run.
type signalHost struct {
	sigCh chan os.Signal
}

func newSignalHost() *signalHost {
	h := &signalHost{sigCh: make(chan os.Signal, 1)}
	signal.Notify(h.sigCh, syscall.SIGINT, syscall.SIGTERM)
	return h
}

func (h *signalHost) StopRequested() bool {
	select {
	case <-h.sigCh:
		return true
	default:
		return false
	}
}

func (h *signalHost) Throttle() { time.Sleep(time.Millisecond) }

func main() {
	var programPath string
	var org uint8 = 4

	rootCmd := &cobra.Command{
		Use:   "kenbak",
		Short: "KENBAK-1 instruction-set emulator",
	}
	rootCmd.PersistentFlags().StringVar(&programPath, "program", "", "Path to a raw KENBAK-1 memory image")
	rootCmd.PersistentFlags().Uint8Var(&org, "org", 4, "Origin address to load the program at")

	loadIfGiven := func(m *kenbak.Machine) error {
		if programPath == "" {
			return nil
		}
		return loader.Load(m, programPath, org)
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the machine to completion (halt, or Ctrl-C)",
		RunE: func(cmd *cobra.Command, args []string) error {
			host := newSignalHost()
			m := kenbak.New(host)
			if err := loadIfGiven(m); err != nil {
				return err
			}
			m.Run()
			fmt.Printf("halted: A=%#02x B=%#02x X=%#02x P=%#02x OUTPUT=%#02x\n",
				m.Peek(kenbak.RegA), m.Peek(kenbak.RegB), m.Peek(kenbak.RegX),
				m.Peek(kenbak.RegP), m.Peek(kenbak.Output))
			return nil
		},
	}

	var steps int
	stepCmd := &cobra.Command{
		Use:   "step",
		Short: "Single-step the machine and print its state after each instruction",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := kenbak.New(nil)
			if err := loadIfGiven(m); err != nil {
				return err
			}
			m.Poke(kenbak.RegP, org)
			for i := 0; i < steps; i++ {
				if !m.Step() {
					fmt.Printf("halted after %d step(s)\n", i)
					return nil
				}
				fmt.Printf("step %d: A=%#02x B=%#02x X=%#02x P=%#02x\n",
					i+1, m.Peek(kenbak.RegA), m.Peek(kenbak.RegB), m.Peek(kenbak.RegX), m.Peek(kenbak.RegP))
			}
			return nil
		},
	}
	stepCmd.Flags().IntVar(&steps, "count", 1, "Number of instructions to execute")

	pokeCmd := &cobra.Command{
		Use:   "poke <addr> <value>",
		Short: "Write a single byte to a running memory image and print the result (loads --program first, if given)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, val, err := parseAddrVal(args[0], args[1])
			if err != nil {
				return err
			}
			m := kenbak.New(nil)
			if err := loadIfGiven(m); err != nil {
				return err
			}
			m.Poke(addr, val)
			fmt.Printf("mem[%#02x] = %#02x\n", addr, m.Peek(addr))
			return nil
		},
	}

	peekCmd := &cobra.Command{
		Use:   "peek <addr>",
		Short: "Read a single byte from a loaded memory image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseByte(args[0])
			if err != nil {
				return err
			}
			m := kenbak.New(nil)
			if err := loadIfGiven(m); err != nil {
				return err
			}
			fmt.Printf("mem[%#02x] = %#02x\n", addr, m.Peek(addr))
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Load the program, reset the machine, and dump the first 16 bytes",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := kenbak.New(nil)
			if err := loadIfGiven(m); err != nil {
				return err
			}
			m.Reset()
			for i := 0; i < 16; i++ {
				fmt.Printf("mem[%#02x] = %#02x\n", i, m.Peek(uint8(i)))
			}
			return nil
		},
	}

	monitorCmd := &cobra.Command{
		Use:   "monitor",
		Short: "Interactive REPL: step, run, poke, peek, dump, reset, quit",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := kenbak.New(newSignalHost())
			if err := loadIfGiven(m); err != nil {
				return err
			}
			m.Poke(kenbak.RegP, org)
			monitor(m)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, stepCmd, pokeCmd, peekCmd, resetCmd, monitorCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseByte(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte %q: %w", s, err)
	}
	return uint8(v), nil
}

func parseAddrVal(addrStr, valStr string) (uint8, uint8, error) {
	addr, err := parseByte(addrStr)
	if err != nil {
		return 0, 0, err
	}
	val, err := parseByte(valStr)
	if err != nil {
		return 0, 0, err
	}
	return addr, val, nil
}

// monitor is a Scanf-driven command loop, grounded on
// console/machine.go's BIOS() REPL — same menu-and-switch shape,
// narrowed to the KENBAK-1's much smaller state.
func monitor(m *kenbak.Machine) {
	for {
		fmt.Printf("A=%#02x B=%#02x X=%#02x P=%#02x\n", m.Peek(kenbak.RegA), m.Peek(kenbak.RegB), m.Peek(kenbak.RegX), m.Peek(kenbak.RegP))
		fmt.Println("(S)tep - execute one instruction")
		fmt.Println("(R)un - run to completion")
		fmt.Println("(P)oke - write a byte")
		fmt.Println("Pee(k) - read a byte")
		fmt.Println("(D)ump - show a memory range")
		fmt.Println("Rese(t) - zero memory and P")
		fmt.Println("(Q)uit")
		fmt.Printf("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 's', 'S':
			if !m.Step() {
				fmt.Println("halted")
			}
		case 'r', 'R':
			m.Run()
		case 'p', 'P':
			addr := readByte("Address (hex, eg 20): ")
			val := readByte("Value (hex, eg ff): ")
			m.Poke(addr, val)
		case 'k', 'K':
			addr := readByte("Address (hex, eg 20): ")
			fmt.Printf("mem[%#02x] = %#02x\n", addr, m.Peek(addr))
		case 't', 'T':
			m.Reset()
		case 'd', 'D':
			low := readByte("Low address (hex): ")
			high := readByte("High address (hex): ")
			for i := int(low); i <= int(high); i++ {
				fmt.Printf("mem[%#02x] = %#02x\n", i, m.Peek(uint8(i)))
			}
		case 'q', 'Q':
			return
		}
	}
}

func readByte(prompt string) uint8 {
	var s string
	fmt.Print(prompt)
	fmt.Scanf("%s\n", &s)
	v, _ := strconv.ParseUint(s, 16, 8)
	return uint8(v)
}
