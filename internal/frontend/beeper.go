package frontend

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	sampleRate    = 44100
	toneFrequency = 440
	toneAmplitude = 0x1000
	bytesPerFrame = 4 // 16 bit stereo

	bufferSize = 50 * time.Millisecond
)

// beeper plays a square wave tone while the sound timer is active. All methods
// can be called on a nil beeper, which is used when no audio device is available.
type beeper struct {
	player *audio.Player
}

func newBeeper() (*beeper, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}

	player, err := ctx.NewPlayer(newSquareWave(sampleRate, toneFrequency, toneAmplitude))
	if err != nil {
		return nil, fmt.Errorf("creating audio player: %w", err)
	}
	// keep the latency low so that short tones are not stretched
	player.SetBufferSize(bufferSize)

	return &beeper{player: player}, nil
}

func (b *beeper) play() {
	if b == nil || b.player.IsPlaying() {
		return
	}
	b.player.Play()
}

func (b *beeper) pause() {
	if b == nil || !b.player.IsPlaying() {
		return
	}
	b.player.Pause()
}

func (b *beeper) close() {
	if b == nil {
		return
	}
	_ = b.player.Close()
}

// squareWave is an endless stream of 16 bit little endian stereo samples.
type squareWave struct {
	period    int // samples per wave period
	position  int
	amplitude int16
}

func newSquareWave(sampleRate, frequency int, amplitude int16) *squareWave {
	return &squareWave{
		period:    sampleRate / frequency,
		amplitude: amplitude,
	}
}

// Read fills the buffer with complete sample frames and never returns an error.
func (s *squareWave) Read(buf []byte) (int, error) {
	n := len(buf) / bytesPerFrame * bytesPerFrame

	for i := 0; i < n; i += bytesPerFrame {
		value := s.amplitude
		if s.position >= s.period/2 {
			value = -value
		}
		s.position = (s.position + 1) % s.period

		binary.LittleEndian.PutUint16(buf[i:], uint16(value))
		binary.LittleEndian.PutUint16(buf[i+2:], uint16(value))
	}
	return n, nil
}
