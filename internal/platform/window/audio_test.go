package window

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/schoolrun/internal/core"
)

func samples(pcm []byte) []int16 {
	out := make([]int16, len(pcm)/bytesPerFrame)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(pcm[i*bytesPerFrame:]))
	}
	return out
}

func peak(s []int16) int {
	var p int
	for _, v := range s {
		if a := int(math.Abs(float64(v))); a > p {
			p = a
		}
	}
	return p
}

// crossings counts sign changes from negative to non-negative.
func crossings(s []int16) int {
	n := 0
	for i := 1; i < len(s); i++ {
		if s[i-1] < 0 && s[i] >= 0 {
			n++
		}
	}
	return n
}

func TestSynthesizeLength(t *testing.T) {
	pcm := Synthesize(core.ToneBoard, SampleRate)

	frames := int(core.ToneBoard.Duration.Seconds() * SampleRate)
	assert.Len(t, pcm, frames*bytesPerFrame)
}

func TestSynthesizeStereoChannelsMatch(t *testing.T) {
	pcm := Synthesize(core.ToneStep, SampleRate)
	require.NotEmpty(t, pcm)

	for i := 0; i < len(pcm); i += bytesPerFrame {
		require.Equal(t, pcm[i:i+2], pcm[i+2:i+4], "frame %d", i/bytesPerFrame)
	}
}

func TestSynthesizePeakStaysUnderGain(t *testing.T) {
	for _, tone := range []core.Tone{core.ToneBoard, core.ToneStep, core.ToneFanfare, core.ToneFail} {
		s := samples(Synthesize(tone, SampleRate))
		limit := int(tone.Gain*math.MaxInt16) + 1
		assert.LessOrEqual(t, peak(s), limit, "tone %+v", tone)
		assert.Greater(t, peak(s), limit/4, "tone %+v is too quiet", tone)
	}
}

func TestSynthesizeEnvelopeFades(t *testing.T) {
	s := samples(Synthesize(core.ToneArrival, SampleRate))
	n := len(s)
	require.Greater(t, n, 100)

	assert.Less(t, peak(s[:20]), peak(s[n/8:n/4]), "attack should start quiet")
	assert.Less(t, peak(s[n-100:]), peak(s[n/8:n/4]), "release should end quiet")
}

func TestSynthesizeSweepLowersPitch(t *testing.T) {
	tone := core.Tone{Freq: 880, SweepTo: 440, Duration: time.Second, Wave: core.WaveSine, Gain: 0.5}
	s := samples(synthesizeLoop(tone, SampleRate))
	q := len(s) / 4

	first, last := crossings(s[:q]), crossings(s[3*q:])
	assert.Greater(t, first, last)
	// 880 Hz falling to 770 Hz over the first quarter second
	assert.InDelta(t, 206, first, 5)
}

func TestSynthesizeEmpty(t *testing.T) {
	assert.Nil(t, Synthesize(core.Tone{Freq: 440}, SampleRate))
	assert.Nil(t, Synthesize(core.Tone{Duration: time.Second}, SampleRate))
}

func TestEngineLoopIsSeamless(t *testing.T) {
	s := samples(synthesizeLoop(core.ToneEngine, SampleRate))
	require.NotEmpty(t, s)

	// Constant gain: the loop restarts at full level, no fade
	limit := int(core.ToneEngine.Gain * math.MaxInt16)
	assert.InDelta(t, limit, peak(s[len(s)-400:]), float64(limit)/10)
	assert.InDelta(t, limit, peak(s[:400]), float64(limit)/10)
}

func TestOscillateRange(t *testing.T) {
	for _, w := range []core.Waveform{core.WaveSine, core.WaveSquare, core.WaveTriangle, core.WaveSawtooth} {
		for i := range 100 {
			v := oscillate(w, float64(i)/100)
			assert.GreaterOrEqual(t, v, -1.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

// fakeLoop records what the sink asks of the engine player.
type fakeLoop struct {
	playing bool
	plays   int
}

func (f *fakeLoop) Play() {
	f.playing = true
	f.plays++
}

func (f *fakeLoop) Pause()       { f.playing = false }
func (f *fakeLoop) Close() error { return nil }

func engineSink(loop *fakeLoop) (*ToneSink, *int) {
	built := 0
	s := &ToneSink{logger: log.New(io.Discard), cache: map[core.Tone][]byte{}}
	s.newEngine = func(core.Tone) (loopPlayer, error) {
		built++
		return loop, nil
	}
	return s, &built
}

func TestEngineResumesAfterUnmute(t *testing.T) {
	loop := &fakeLoop{}
	s, built := engineSink(loop)

	s.SetMuted(true)
	s.Play(core.Cue{Kind: core.CueEngineStart, Tone: core.ToneEngine})
	assert.Equal(t, 0, *built, "no drone while muted")

	s.SetMuted(false)
	require.Equal(t, 1, *built)
	assert.True(t, loop.playing, "bus still moving, drone resumes")

	s.SetMuted(true)
	assert.False(t, loop.playing)
}

func TestEngineStopWhileMutedStaysQuiet(t *testing.T) {
	loop := &fakeLoop{}
	s, _ := engineSink(loop)

	s.Play(core.Cue{Kind: core.CueEngineStart, Tone: core.ToneEngine})
	require.True(t, loop.playing)

	s.SetMuted(true)
	s.Play(core.Cue{Kind: core.CueEngineStop})
	s.SetMuted(false)
	assert.False(t, loop.playing, "bus stopped during mute")
	assert.Equal(t, 1, loop.plays)
}

func TestEngineFailureDisablesDrone(t *testing.T) {
	s := &ToneSink{logger: log.New(io.Discard), cache: map[core.Tone][]byte{}}
	s.newEngine = func(core.Tone) (loopPlayer, error) { return nil, errors.New("no device") }

	s.Play(core.Cue{Kind: core.CueEngineStart, Tone: core.ToneEngine})
	assert.Nil(t, s.engine)
	assert.False(t, s.running)
}

func TestMutedSinkSkipsOneShots(t *testing.T) {
	s := &ToneSink{logger: log.New(io.Discard), cache: map[core.Tone][]byte{}, muted: true}
	s.Play(core.Cue{Kind: core.CueBoard, Tone: core.ToneBoard})
	assert.Empty(t, s.cache, "muted cues are not rendered")
}
