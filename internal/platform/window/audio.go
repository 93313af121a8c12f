package window

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/vovakirdan/schoolrun/internal/core"
)

// SampleRate of every synthesized tone.
const SampleRate = 44100

// bytesPerFrame is stereo 16-bit little endian, the format ebiten plays.
const bytesPerFrame = 4

const (
	attack  = 10 * time.Millisecond
	silence = 0.0001 // envelope start and end level
)

// Synthesize renders a one-shot tone as PCM: a short attack up to the
// tone's gain, then an exponential fade to silence by the end.
func Synthesize(t core.Tone, sampleRate int) []byte {
	return render(t, sampleRate, true)
}

// synthesizeLoop renders a tone at constant gain so it can repeat without
// clicks. The duration should hold a whole number of periods.
func synthesizeLoop(t core.Tone, sampleRate int) []byte {
	return render(t, sampleRate, false)
}

func render(t core.Tone, sampleRate int, shaped bool) []byte {
	frames := int(t.Duration.Seconds() * float64(sampleRate))
	if frames <= 0 || t.Freq <= 0 {
		return nil
	}

	buf := make([]byte, frames*bytesPerFrame)
	dur := t.Duration.Seconds()

	var phase float64
	for i := range frames {
		sec := float64(i) / float64(sampleRate)

		freq := t.Freq
		if t.SweepTo > 0 {
			freq = core.Lerp(t.Freq, t.SweepTo, sec/dur)
		}

		gain := t.Gain
		if shaped {
			gain = envelope(sec, dur, t.Gain)
		}

		v := int16(oscillate(t.Wave, phase) * gain * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*bytesPerFrame:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*bytesPerFrame+2:], uint16(v))

		phase += freq / float64(sampleRate)
		phase -= math.Floor(phase)
	}
	return buf
}

// oscillate returns the waveform value in [-1, 1] at a phase in [0, 1).
func oscillate(w core.Waveform, phase float64) float64 {
	switch w {
	case core.WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case core.WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	case core.WaveSawtooth:
		return 2*phase - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

func envelope(sec, dur, gain float64) float64 {
	if gain <= silence {
		return gain
	}
	a := attack.Seconds()
	if sec < a {
		return silence * math.Pow(gain/silence, sec/a)
	}
	rest := dur - a
	if rest <= 0 {
		return gain
	}
	return gain * math.Pow(silence/gain, (sec-a)/rest)
}

// loopPlayer is the part of *audio.Player the engine drone needs.
type loopPlayer interface {
	Play()
	Pause()
	Close() error
}

// ToneSink plays cues through ebiten's audio context. One-shot tones are
// rendered once and cached; the engine drone is a looping player that is
// paused and resumed by the engine cues.
type ToneSink struct {
	ctx       *audio.Context
	logger    *log.Logger
	cache     map[core.Tone][]byte
	live      []*audio.Player
	newEngine func(core.Tone) (loopPlayer, error)
	engine    loopPlayer
	running   bool      // the bus wants the drone, muted or not
	drone     core.Tone // tone of the last engine start
	muted     bool
}

// NewToneSink opens the audio context. Ebiten allows one context per
// process, so an existing one is reused.
func NewToneSink(logger *log.Logger) *ToneSink {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(SampleRate)
	}
	s := &ToneSink{
		ctx:    ctx,
		logger: logger,
		cache:  make(map[core.Tone][]byte),
	}
	s.newEngine = s.loopTone
	return s
}

// SetMuted silences the sink. The engine is paused while muted and picks
// up again on unmute if the bus is still moving.
func (s *ToneSink) SetMuted(muted bool) {
	s.muted = muted
	s.syncEngine()
}

// Play implements core.CueSink.
func (s *ToneSink) Play(c core.Cue) {
	switch c.Kind {
	case core.CueEngineStart:
		s.running, s.drone = true, c.Tone
		s.syncEngine()
	case core.CueEngineStop:
		s.running = false
		s.syncEngine()
	default:
		if !s.muted {
			s.playOnce(c.Tone)
		}
	}
}

// syncEngine makes the drone match the running and muted flags.
func (s *ToneSink) syncEngine() {
	if !s.running || s.muted {
		if s.engine != nil {
			s.engine.Pause()
		}
		return
	}
	if s.engine == nil {
		p, err := s.newEngine(s.drone)
		if err != nil {
			s.logger.Warn("engine sound disabled", "err", err)
			s.running = false
			return
		}
		s.engine = p
	}
	s.engine.Play()
}

func (s *ToneSink) playOnce(t core.Tone) {
	pcm, ok := s.cache[t]
	if !ok {
		pcm = Synthesize(t, s.ctx.SampleRate())
		s.cache[t] = pcm
	}
	if len(pcm) == 0 {
		return
	}

	s.prune()
	p := s.ctx.NewPlayerFromBytes(pcm)
	p.Play()
	s.live = append(s.live, p)
}

func (s *ToneSink) loopTone(t core.Tone) (loopPlayer, error) {
	pcm := synthesizeLoop(t, s.ctx.SampleRate())
	if len(pcm) == 0 {
		return nil, fmt.Errorf("engine tone %v renders no samples", t.Freq)
	}
	p, err := s.ctx.NewPlayer(audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm))))
	if err != nil {
		return nil, err
	}
	return p, nil
}

// prune drops players that have finished.
func (s *ToneSink) prune() {
	live := s.live[:0]
	for _, p := range s.live {
		if p.IsPlaying() {
			live = append(live, p)
		} else {
			_ = p.Close()
		}
	}
	s.live = live
}

// Close stops every player.
func (s *ToneSink) Close() error {
	for _, p := range s.live {
		_ = p.Close()
	}
	s.live = nil
	if s.engine != nil {
		err := s.engine.Close()
		s.engine = nil
		return err
	}
	return nil
}
