package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/fjl/midisync/internal/cmdutil"
	"github.com/fjl/midisync/mtc"
)

func main() {
	// Argument processing.
	var (
		configFile = flag.String("config", "", "JSON config file")
		_          = flag.String("dev", "", "MIDI input device")
		_          = flag.String("rate", "", "Local timecode frame rate (default: incoming MTC rate)")
		_          = flag.Int("lock", 16, "Frames of continuous MTC before sync")
		_          = flag.Int("dropout", 10, "Frames without MTC before going idle")
		verbose    = flag.Bool("v", false, "Log every quarter frame update")
	)
	flag.Parse()
	cfg := defaultConfig()
	if *configFile != "" {
		if err := loadConfig(*configFile, &cfg); err != nil {
			log.Fatal(err)
		}
	}
	applyFlags(flag.CommandLine, &cfg)
	rc, err := cfg.receiverConfig()
	if err != nil {
		log.Fatal(err)
	}
	rc.Observer = &logObserver{verbose: *verbose}

	conn, err := cmdutil.OpenInput(&cmdutil.Config{InDevice: cfg.Device})
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := mtc.NewReceiver(rc)
	go func() {
		for {
			select {
			case msg := <-conn.PacketCh:
				r.Receive(msg)
			case <-ctx.Done():
				return
			}
		}
	}()
	log.Printf("waiting for MTC (lock %d frames, drop-out %d frames)", cfg.LockFrames, cfg.DropOutFrames)
	if err := r.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal(err)
	}
}

// logObserver prints receiver events.
type logObserver struct {
	verbose bool
}

func (o *logObserver) TimecodeChanged(u mtc.Update) {
	if !u.DisplayNeedsUpdate {
		return
	}
	if u.Source == mtc.FullFrameMessage {
		log.Printf("locate: %v @ %v fps (%v)", u.Timecode, u.Timecode.Rate, u.MTCRate)
		return
	}
	if o.verbose || u.Timecode.Frames == 0 {
		log.Printf("timecode: %v @ %v fps %v", u.Timecode, u.Timecode.Rate, u.Direction)
	}
}

func (o *logObserver) StateChanged(s mtc.Status) {
	log.Println("state:", s)
}
