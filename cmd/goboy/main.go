// Command goboy runs a Game Boy ROM headlessly. It prints the cartridge
// header, any header validation warnings and whatever the ROM sends over
// the serial port, which is how most test ROMs report their results.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/thelolagemann/gomeboy-core/internal/cheats"
	"github.com/thelolagemann/gomeboy-core/internal/cpu"
	"github.com/thelolagemann/gomeboy-core/internal/gameboy"
	"github.com/thelolagemann/gomeboy-core/pkg/config"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
	"github.com/thelolagemann/gomeboy-core/pkg/saves"
	"github.com/thelolagemann/gomeboy-core/pkg/utils"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load")
	configFile := flag.String("config", "goboy.yaml", "The configuration file to load")
	bootROM := flag.String("boot", "", "The boot rom file to load")
	cycles := flag.Uint64("cycles", 0, "Machine cycles to run for, 0 runs until a breakpoint")
	saveDir := flag.String("saves", "", "The folder to keep battery saves in")
	debug := flag.Bool("debug", false, "Stop on the LD B, B breakpoint")
	logLevel := flag.String("log-level", "", "The log level (debug, info, warn, error)")
	cheatFile := flag.String("cheats", "", "A file of Game Genie codes to apply")
	listSaves := flag.Bool("list-saves", false, "List the battery saves and exit")
	writeConfig := flag.String("write-config", "", "Write the effective configuration to a file and exit")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	// flags given on the command line win over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "boot":
			cfg.BootROM = *bootROM
		case "cycles":
			cfg.Cycles = *cycles
		case "saves":
			cfg.SaveDir = *saveDir
		case "debug":
			cfg.Debug = *debug
		case "log-level":
			cfg.LogLevel = *logLevel
		case "cheats":
			cfg.Cheats = *cheatFile
		}
	})

	switch {
	case *writeConfig != "":
		err = cfg.Save(*writeConfig)
	case *listSaves:
		err = printSaves(os.Stdout, cfg.SaveDir)
	default:
		err = run(*romFile, cfg)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printSaves writes the save files in dir, newest first.
func printSaves(w io.Writer, dir string) error {
	files, err := saves.List(dir)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintln(w, f)
	}
	return nil
}

// emulatedTime converts clock ticks to the time they take on hardware.
func emulatedTime(ticks uint64) time.Duration {
	return time.Duration(float64(ticks) / cpu.ClockSpeed * float64(time.Second))
}

func run(romFile string, cfg config.Config) error {
	if romFile == "" {
		return errors.New("no rom file given, use -rom")
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := log.NewWithLevel(os.Stderr, level)

	rom, err := utils.LoadFile(romFile)
	if err != nil {
		return err
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger)}
	if cfg.BootROM != "" {
		boot, err := utils.LoadFile(cfg.BootROM)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}
	if cfg.Cheats != "" {
		genie, err := loadCheats(cfg.Cheats)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithGameGenie(genie))
	}
	if cfg.SaveDir != "" {
		opts = append(opts, gameboy.WithSaveDir(cfg.SaveDir))
	}
	if cfg.Debug {
		opts = append(opts, gameboy.Debug())
	}
	var output string
	if cfg.Serial {
		opts = append(opts, gameboy.SerialDebugger(&output))
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		return err
	}
	fmt.Println(gb.Cart.Info())

	runErr := gb.RunFor(cfg.Cycles)
	if output != "" {
		fmt.Println(output)
	}
	if gb.Breakpoint() {
		fmt.Printf("breakpoint at 0x%04X after %d cycles\n", gb.CPU.PC, gb.CPU.Cycles())
	}
	logger.Infof("ran %d cycles (%s emulated)", gb.CPU.Cycles(), emulatedTime(gb.CPU.Ticks()))
	if err := gb.Close(); err != nil {
		logger.Errorf("saving: %v", err)
	}
	return runErr
}

func loadCheats(path string) (*cheats.GameGenie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	genie := cheats.NewGameGenie()
	if err := cheats.ParseFile(f, genie); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return genie, nil
}
