package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/fjl/midisync/internal/cmdutil"
	"github.com/fjl/midisync/mtc"
)

func main() {
	// Argument processing.
	var (
		outDevice = flag.String("odev", "", "MIDI output device")
		rateFlag  = flag.String("rate", "30", "Timecode frame rate")
		startFlag = flag.String("start", "01:00:00:00", "Start position")
		reverse   = flag.Bool("reverse", false, "Run backwards")
		duration  = flag.Duration("duration", 0, "Stop after this time (default: run until interrupted)")
	)
	flag.Parse()
	rate, err := mtc.ParseRate(*rateFlag)
	if err != nil {
		log.Fatal(err)
	}
	start, err := mtc.ParseTimecode(*startFlag, rate)
	if err != nil {
		log.Fatal(err)
	}
	midiConfig := cmdutil.Config{OutDevice: *outDevice}
	sendConfig := sendConfig{Start: start, Reverse: *reverse, Duration: *duration}

	conn, err := cmdutil.OpenOutput(&midiConfig)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if sendConfig.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sendConfig.Duration)
		defer cancel()
	}
	doSend(ctx, &sendConfig, conn)
}

type sendConfig struct {
	Start    mtc.Timecode
	Reverse  bool
	Duration time.Duration
}

// doSend transmits MTC until the context is done. A full frame message is
// sent first so receivers can locate before quarter frames start.
func doSend(ctx context.Context, cfg *sendConfig, conn *cmdutil.Conn) {
	enc := mtc.NewEncoder(cfg.Start.Rate)
	enc.Locate(cfg.Start)

	log.Printf("locating to %v at %v fps (%v)", cfg.Start, cfg.Start.Rate, enc.MTCRate())
	send(conn, enc.FullFrame().Encode(nil))

	next := enc.Increment
	if cfg.Reverse {
		next = enc.Decrement
	}
	ticker := time.NewTicker(quarterFrameInterval(cfg.Start.Rate))
	defer ticker.Stop()
	lastSecond := -1
	for {
		select {
		case <-ctx.Done():
			log.Printf("stopped at %v", enc.Timecode())
			// Leave receivers at the final position.
			send(conn, enc.FullFrame().Encode(nil))
			return
		case <-ticker.C:
			send(conn, next())
			if tc := enc.Timecode(); tc.Seconds != lastSecond {
				lastSecond = tc.Seconds
				log.Println("position:", tc)
			}
		}
	}
}

// quarterFrameInterval returns the real time between two quarter frame messages.
// Four quarter frames are sent per MTC frame, which spans ScaleFactor frames of
// the local rate.
func quarterFrameInterval(rate mtc.TimecodeRate) time.Duration {
	frame := float64(mtc.FrameDuration(1, rate)) * rate.ScaleFactor()
	return time.Duration(frame / 4)
}

func send(conn *cmdutil.Conn, msg []byte) {
	_, err := conn.Write(msg)
	if err != nil {
		log.Fatal(err)
	}
}
