package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/fjl/midisync/internal/cmdutil"
	"github.com/fjl/midisync/ump"
	"github.com/fjl/midisync/value"
	"gitlab.com/gomidi/midi/v2"
)

func main() {
	var (
		listen   = flag.Bool("listen", false, "Translate live MIDI 1.0 input instead of decoding hex")
		inDevice = flag.String("dev", "", "MIDI input device (with -listen)")
		group    = flag.Int("group", 0, "UMP group of translated messages")
	)
	flag.Parse()

	if *listen {
		g, err := value.New[value.UInt4](*group)
		if err != nil {
			log.Fatalf("invalid -group: %v", err)
		}
		doListen(&cmdutil.Config{InDevice: *inDevice}, g)
		return
	}

	p := ump.NewParser()
	if flag.NArg() > 0 {
		b, err := decodeHex(strings.Join(flag.Args(), " "))
		if err != nil {
			log.Fatal(err)
		}
		printEvents(os.Stdout, p.ParseStream(b))
		return
	}
	if err := dumpStream(os.Stdin, os.Stdout, p); err != nil {
		log.Fatal(err)
	}
}

// dumpStream decodes hex UMP data line by line. SysEx messages may span lines.
func dumpStream(r io.Reader, w io.Writer, p *ump.Parser) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		b, err := decodeHex(line)
		if err != nil {
			log.Printf("ignoring line %q: %v", sc.Text(), err)
			continue
		}
		printEvents(w, p.ParseStream(b))
	}
	return sc.Err()
}

// decodeHex decodes whitespace separated hex words. Words may have a 0x prefix.
func decodeHex(s string) ([]byte, error) {
	var out []byte
	for _, word := range strings.Fields(s) {
		word = strings.TrimPrefix(strings.TrimPrefix(word, "0x"), "0X")
		b, err := hex.DecodeString(word)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

func printEvents(w io.Writer, events []ump.Event) {
	for _, ev := range events {
		fmt.Fprintln(w, formatEvent(ev))
	}
}

func formatEvent(ev ump.Event) string {
	return fmt.Sprintf("%s %+v", strings.TrimPrefix(fmt.Sprintf("%T", ev), "*ump."), ev)
}

// doListen prints MIDI 1.0 input as UMP events.
func doListen(cfg *cmdutil.Config, group value.UInt4) {
	conn, err := cmdutil.OpenInput(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	for {
		select {
		case msg := <-conn.PacketCh:
			ev := ump.FromMIDI1(midi.Message(msg), group)
			if ev == nil {
				log.Printf("ignoring message %x", msg)
				continue
			}
			fmt.Printf("%x  %s\n", ev.Encode(nil), formatEvent(ev))
		case <-ctx.Done():
			return
		}
	}
}
