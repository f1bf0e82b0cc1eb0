package audio

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// Recording is a mono WAV recording decoded fully into memory for loudness
// analysis. Stereo input is downmixed by averaging the channels.
type Recording struct {
	samples []float64
	format  beep.Format
}

// LoadWAV decodes a WAV file into a Recording.
func LoadWAV(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	var samples []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buf)
		for _, s := range buf[:n] {
			// Декодер beep отображает 16-битный PCM в диапазон ±0.5,
			// кодер же считает полной шкалой ±1.0. Нормализуем к ±1.0,
			// иначе каждый экспорт теряет 6 dB громкости.
			samples = append(samples, s[0]+s[1])
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read wav samples: %w", err)
	}
	return &Recording{samples: samples, format: format}, nil
}

// Len возвращает длину записи в сэмплах.
func (r *Recording) Len() int { return len(r.samples) }

// Duration возвращает длительность записи.
func (r *Recording) Duration() time.Duration {
	return r.format.SampleRate.D(len(r.samples))
}

// DBFS средняя громкость записи (RMS) в dBFS; -Inf для полностью тихой записи.
func (r *Recording) DBFS() float64 {
	return rmsDB(r.samples)
}

func rmsDB(samples []float64) float64 {
	if len(samples) == 0 {
		return math.Inf(-1)
	}
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	rms := math.Sqrt(sum / float64(len(samples)))
	if rms == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(rms)
}

// SplitPolicy политика разрезания записи по тишине. Эвристика под разговорную
// речь, не адаптивная: порог = средняя громкость записи − ThresholdOffsetDB.
type SplitPolicy struct {
	MinSilence        time.Duration
	KeepSilence       time.Duration
	ThresholdOffsetDB float64
}

// Chunk is a half-open sample range [Start, End) of non-silent audio.
type Chunk struct {
	Start, End int
}

// окно анализа громкости
const analysisWindow = 10 * time.Millisecond

// SplitOnSilence splits the recording at silence gaps of at least
// p.MinSilence, keeping p.KeepSilence of padding around every non-silent
// range. Returns chunks in ascending source order; a fully silent recording
// yields none, a recording with no qualifying silence yields one chunk.
func (r *Recording) SplitOnSilence(p SplitPolicy) []Chunk {
	if len(r.samples) == 0 {
		return nil
	}

	win := r.format.SampleRate.N(analysisWindow)
	if win < 1 {
		win = 1
	}
	threshold := r.DBFS() - p.ThresholdOffsetDB

	numWin := (len(r.samples) + win - 1) / win
	silent := make([]bool, numWin)
	for i := 0; i < numWin; i++ {
		lo := i * win
		hi := lo + win
		if hi > len(r.samples) {
			hi = len(r.samples)
		}
		// Нестрогое сравнение: для полностью тихой записи порог равен -Inf,
		// и все окна должны считаться тишиной.
		silent[i] = rmsDB(r.samples[lo:hi]) <= threshold
	}

	// Паузы короче MinSilence не считаются разрезом
	minWin := int(p.MinSilence / analysisWindow)
	if minWin < 1 {
		minWin = 1
	}

	var ranges []Chunk // границы в окнах
	start := -1
	flush := func(end int) {
		if start >= 0 {
			ranges = append(ranges, Chunk{Start: start, End: end})
			start = -1
		}
	}
	i := 0
	for i < numWin {
		if !silent[i] {
			if start < 0 {
				start = i
			}
			i++
			continue
		}
		run := i
		for run < numWin && silent[run] {
			run++
		}
		// Паузы короче minWin не закрывают открытый фрагмент
		if run-i >= minWin {
			flush(i)
		}
		i = run
	}
	flush(numWin)

	if len(ranges) == 0 {
		return nil
	}

	// Перевод в сэмплы + отступ KeepSilence по краям, слияние пересечений
	pad := r.format.SampleRate.N(p.KeepSilence)
	chunks := make([]Chunk, 0, len(ranges))
	for _, rg := range ranges {
		c := Chunk{Start: rg.Start*win - pad, End: rg.End*win + pad}
		if c.Start < 0 {
			c.Start = 0
		}
		if c.End > len(r.samples) {
			c.End = len(r.samples)
		}
		if n := len(chunks); n > 0 && c.Start <= chunks[n-1].End {
			chunks[n-1].End = c.End
			continue
		}
		chunks = append(chunks, c)
	}
	return chunks
}

// ExportChunk записывает диапазон сэмплов отдельным моно WAV-файлом.
func (r *Recording) ExportChunk(c Chunk, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	format := beep.Format{SampleRate: r.format.SampleRate, NumChannels: 1, Precision: 2}
	st := &sliceStreamer{samples: r.samples[c.Start:c.End]}
	if err := wav.Encode(f, st, format); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("export chunk: %w", err)
	}
	return f.Close()
}

// sliceStreamer отдаёт срез сэмплов как beep.Streamer.
type sliceStreamer struct {
	samples []float64
	pos     int
}

func (s *sliceStreamer) Stream(out [][2]float64) (int, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	n := 0
	for n < len(out) && s.pos < len(s.samples) {
		v := s.samples[s.pos]
		out[n] = [2]float64{v, v}
		n++
		s.pos++
	}
	return n, true
}

func (s *sliceStreamer) Err() error { return nil }
