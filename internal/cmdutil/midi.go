package cmdutil

import (
	"fmt"
	"log"
	"strings"

	"gitlab.com/gomidi/midi"
	driver "gitlab.com/gomidi/rtmididrv"
)

type Config struct {
	InDevice  string
	OutDevice string
}

type Conn struct {
	PacketCh chan []byte   // receives all input messages
	CloseCh  chan struct{} // closed by Close

	in  midi.In
	out midi.Out
}

// OpenInput opens the MIDI input selected by cfg.InDevice.
// Active sensing is filtered, timecode messages are delivered.
func OpenInput(cfg *Config) (*Conn, error) {
	drv, err := newDriver()
	if err != nil {
		return nil, err
	}
	in, err := findInput(drv, cfg.InDevice)
	if err != nil {
		return nil, err
	}
	log.Println("midi input:", in)
	if err := in.Open(); err != nil {
		return nil, fmt.Errorf("can't open MIDI input: %v", err)
	}

	var packetCh = make(chan []byte, 512)
	in.SetListener(func(msg []byte, deltaT int64) {
		if len(msg) == 0 {
			return
		}
		cpy := append([]byte(nil), msg...)
		select {
		case packetCh <- cpy:
		default:
		}
	})

	c := &Conn{PacketCh: packetCh, CloseCh: make(chan struct{}), in: in}
	return c, nil
}

// OpenOutput opens the MIDI output selected by cfg.OutDevice.
func OpenOutput(cfg *Config) (*Conn, error) {
	drv, err := newDriver()
	if err != nil {
		return nil, err
	}
	out, err := findOutput(drv, cfg.OutDevice)
	if err != nil {
		return nil, err
	}
	log.Println("midi output:", out)
	if err := out.Open(); err != nil {
		return nil, fmt.Errorf("can't open MIDI output: %v", err)
	}
	c := &Conn{CloseCh: make(chan struct{}), out: out}
	return c, nil
}

func newDriver() (*driver.Driver, error) {
	drv, err := driver.New(driver.IgnoreActiveSense())
	if err != nil {
		return nil, fmt.Errorf("can't initialize MIDI driver: %v", err)
	}
	return drv, nil
}

func (c *Conn) Write(msg []byte) (int, error) {
	if c.out == nil {
		return 0, fmt.Errorf("no MIDI output")
	}
	return c.out.Write(msg)
}

func (c *Conn) Close() {
	close(c.CloseCh)
	if c.in != nil {
		c.in.Close()
	}
	if c.out != nil {
		c.out.Close()
	}
}

func findInput(drv *driver.Driver, device string) (midi.In, error) {
	inputs, err := drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("can't list MIDI inputs: %v", err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no MIDI inputs")
	}
	if device == "" {
		return inputs[0], nil
	}
	var names []string
	for _, in := range inputs {
		names = append(names, in.String())
	}
	i := matchDevice(names, device)
	if i < 0 {
		return nil, fmt.Errorf("can't find MIDI input device %q, have %v", device, names)
	}
	return inputs[i], nil
}

func findOutput(drv *driver.Driver, device string) (midi.Out, error) {
	outputs, err := drv.Outs()
	if err != nil {
		return nil, fmt.Errorf("can't list MIDI outputs: %v", err)
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("no MIDI outputs")
	}
	if device == "" {
		return outputs[0], nil
	}
	var names []string
	for _, out := range outputs {
		names = append(names, out.String())
	}
	i := matchDevice(names, device)
	if i < 0 {
		return nil, fmt.Errorf("can't find MIDI output device %q, have %v", device, names)
	}
	return outputs[i], nil
}

// matchDevice returns the index of the first name containing device,
// ignoring case. An exact match is preferred.
func matchDevice(names []string, device string) int {
	for i, name := range names {
		if name == device {
			return i
		}
	}
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), strings.ToLower(device)) {
			return i
		}
	}
	return -1
}
