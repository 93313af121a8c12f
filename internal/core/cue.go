package core

import "time"

// Waveform selects the oscillator shape of a tone.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveTriangle
	WaveSawtooth
)

// Tone describes a short synthesized sound.
// SweepTo, when non-zero, glides the frequency linearly to that value.
type Tone struct {
	Freq     float64
	SweepTo  float64
	Duration time.Duration
	Wave     Waveform
	Gain     float64
}

// CueKind identifies why a cue was raised.
type CueKind int

const (
	CueBoard CueKind = iota
	CueArrival
	CueStep
	CueFanfare
	CueFail
	CueEngineStart
	CueEngineStop
)

// String returns the cue name used in logs.
func (k CueKind) String() string {
	switch k {
	case CueBoard:
		return "board"
	case CueArrival:
		return "arrival"
	case CueStep:
		return "step"
	case CueFanfare:
		return "fanfare"
	case CueFail:
		return "fail"
	case CueEngineStart:
		return "engine_start"
	case CueEngineStop:
		return "engine_stop"
	default:
		return "unknown"
	}
}

// Cue is a fire-and-forget audio event. Engine cues start or stop the
// looping engine drone; the rest are one-shot tones.
type Cue struct {
	Kind CueKind
	Tone Tone
}

// Tones used by the game.
var (
	ToneBoard   = Tone{Freq: 880, Duration: 140 * time.Millisecond, Wave: WaveSine, Gain: 0.08}
	ToneArrival = Tone{Freq: 440, Duration: 300 * time.Millisecond, Wave: WaveSine, Gain: 0.08}
	ToneStep    = Tone{Freq: 520, Duration: 80 * time.Millisecond, Wave: WaveSquare, Gain: 0.06}
	ToneFanfare = Tone{Freq: 880, SweepTo: 660, Duration: 450 * time.Millisecond, Wave: WaveTriangle, Gain: 0.12}
	ToneFail    = Tone{Freq: 180, SweepTo: 90, Duration: 400 * time.Millisecond, Wave: WaveSquare, Gain: 0.08}
	ToneEngine  = Tone{Freq: 280, Duration: 250 * time.Millisecond, Wave: WaveSawtooth, Gain: 0.04}
)

// NewCue builds a cue of the given kind with its standard tone.
func NewCue(kind CueKind) Cue {
	switch kind {
	case CueBoard:
		return Cue{Kind: kind, Tone: ToneBoard}
	case CueArrival:
		return Cue{Kind: kind, Tone: ToneArrival}
	case CueStep:
		return Cue{Kind: kind, Tone: ToneStep}
	case CueFanfare:
		return Cue{Kind: kind, Tone: ToneFanfare}
	case CueFail:
		return Cue{Kind: kind, Tone: ToneFail}
	case CueEngineStart, CueEngineStop:
		return Cue{Kind: kind, Tone: ToneEngine}
	default:
		return Cue{Kind: kind}
	}
}

// CueSink receives cues from the platform loop. Play must not block.
type CueSink interface {
	Play(c Cue)
}

// NopSink discards every cue. Used when no audio backend is available.
type NopSink struct{}

// Play implements CueSink.
func (NopSink) Play(Cue) {}
