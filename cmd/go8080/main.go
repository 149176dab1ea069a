package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/thelolagemann/go-8080/internal/cpm"
	"github.com/thelolagemann/go-8080/internal/i8080"
	"github.com/thelolagemann/go-8080/pkg/log"
	"github.com/thelolagemann/go-8080/pkg/monitor"
	"github.com/thelolagemann/go-8080/pkg/utils"
)

func main() {
	// start pprof
	go func() {
		err := http.ListenAndServe("localhost:6060", nil)
		if err != nil {
			return
		}
	}()

	imageFile := flag.String("image", "", "The program image to load")
	origin := flag.Uint("origin", 0, "The address to load the image at")
	asCPM := flag.Bool("cpm", false, "Run the image as a CP/M transient program")
	debug := flag.Bool("debug", false, "Trace each instruction before it executes")
	monitorAddr := flag.String("monitor", "", "Serve the WebSocket debug monitor on this address")
	intFreq := flag.Int64("freq", 0, "Interrupt frequency in Hz (0 leaves the default)")
	flag.Parse()

	logger := log.New()

	// open the program image
	program, err := utils.LoadFile(*imageFile)
	if err != nil {
		logger.Errorf("loading %s: %v", *imageFile, err)
		os.Exit(1)
	}

	var opts []i8080.Opt
	opts = append(opts, i8080.WithLogger(logger))
	if *asCPM {
		opts = append(opts, i8080.CPM(cpm.WithLogger(logger)))
	}
	if *origin != 0 {
		opts = append(opts, i8080.WithOrigin(uint16(*origin)))
	}
	if *debug {
		opts = append(opts, i8080.Debug())
	}
	if *intFreq != 0 {
		opts = append(opts, i8080.WithIntFrequency(*intFreq))
	}

	m := i8080.New(opts...)
	m.Load(program)
	m.Reset()

	if *monitorAddr != "" {
		mon := monitor.New(m, logger)
		go func() {
			if err := mon.ListenAndServe(*monitorAddr); err != nil {
				logger.Errorf("monitor: %v", err)
			}
		}()
	}

	if err := m.Run(); err != nil {
		if errors.Is(err, cpm.ErrExit) {
			fmt.Println()
			return
		}
		logger.Errorf("running %s: %v", *imageFile, err)
		os.Exit(1)
	}
}
