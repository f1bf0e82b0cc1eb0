package audio

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
)

const testRate = beep.SampleRate(8000)

// makeRecording склеивает запись из пар (длительность, амплитуда).
func makeRecording(segments ...struct {
	d   time.Duration
	amp float64
}) *Recording {
	var samples []float64
	for _, seg := range segments {
		n := testRate.N(seg.d)
		for i := 0; i < n; i++ {
			samples = append(samples, seg.amp)
		}
	}
	return &Recording{
		samples: samples,
		format:  beep.Format{SampleRate: testRate, NumChannels: 1, Precision: 2},
	}
}

func seg(d time.Duration, amp float64) struct {
	d   time.Duration
	amp float64
} {
	return struct {
		d   time.Duration
		amp float64
	}{d, amp}
}

var testPolicy = SplitPolicy{
	MinSilence:        500 * time.Millisecond,
	KeepSilence:       500 * time.Millisecond,
	ThresholdOffsetDB: 14,
}

func TestSplitOnSilenceTwoChunks(t *testing.T) {
	rec := makeRecording(
		seg(300*time.Millisecond, 0.5),
		seg(1500*time.Millisecond, 0),
		seg(300*time.Millisecond, 0.5),
	)

	chunks := rec.SplitOnSilence(testPolicy)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	for i, c := range chunks {
		if c.Start >= c.End {
			t.Errorf("chunk %d has empty range [%d,%d)", i, c.Start, c.End)
		}
	}
	// строго по возрастанию, без пересечений
	if chunks[0].End > chunks[1].Start {
		t.Errorf("chunks overlap: %v then %v", chunks[0], chunks[1])
	}
	// первый фрагмент начинается с начала записи, паддинг клампится в 0
	if chunks[0].Start != 0 {
		t.Errorf("chunk 0 start = %d, want 0", chunks[0].Start)
	}
	// паддинг: фрагмент должен захватить 500мс тишины после речи
	wantEnd := testRate.N(800 * time.Millisecond)
	if chunks[0].End != wantEnd {
		t.Errorf("chunk 0 end = %d, want %d", chunks[0].End, wantEnd)
	}
	if chunks[1].End != rec.Len() {
		t.Errorf("chunk 1 end = %d, want %d", chunks[1].End, rec.Len())
	}
}

func TestSplitOnSilenceShortGapDoesNotSplit(t *testing.T) {
	rec := makeRecording(
		seg(300*time.Millisecond, 0.5),
		seg(200*time.Millisecond, 0), // короче MinSilence
		seg(300*time.Millisecond, 0.5),
	)
	chunks := rec.SplitOnSilence(testPolicy)
	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
}

func TestSplitOnSilenceOverlappingPaddingMerges(t *testing.T) {
	rec := makeRecording(
		seg(300*time.Millisecond, 0.5),
		seg(700*time.Millisecond, 0), // пауза меньше двух паддингов
		seg(300*time.Millisecond, 0.5),
	)
	chunks := rec.SplitOnSilence(testPolicy)
	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1 (padded ranges merge)", len(chunks))
	}
	if chunks[0].Start != 0 || chunks[0].End != rec.Len() {
		t.Errorf("merged chunk = %v, want whole recording [0,%d)", chunks[0], rec.Len())
	}
}

func TestSplitOnSilenceAllSilent(t *testing.T) {
	rec := makeRecording(seg(2*time.Second, 0))
	if chunks := rec.SplitOnSilence(testPolicy); len(chunks) != 0 {
		t.Fatalf("chunks = %d, want 0 for silent recording", len(chunks))
	}
}

func TestSplitOnSilenceNoSilence(t *testing.T) {
	rec := makeRecording(seg(2*time.Second, 0.5))
	chunks := rec.SplitOnSilence(testPolicy)
	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1 for uninterrupted speech", len(chunks))
	}
	if chunks[0].Start != 0 || chunks[0].End != rec.Len() {
		t.Errorf("chunk = %v, want whole recording", chunks[0])
	}
}

func TestDBFS(t *testing.T) {
	rec := makeRecording(seg(time.Second, 0.5))
	got := rec.DBFS()
	want := 20 * math.Log10(0.5)
	if math.Abs(got-want) > 0.01 {
		t.Errorf("DBFS = %.3f, want %.3f", got, want)
	}

	silent := makeRecording(seg(time.Second, 0))
	if !math.IsInf(silent.DBFS(), -1) {
		t.Errorf("silent DBFS = %.3f, want -Inf", silent.DBFS())
	}
}

// LoadWAV должен возвращать полную шкалу ±1.0: int16 16383 это ~0.5,
// без потери 6 dB на полушкальном отображении декодера.
func TestLoadWAVFullScale(t *testing.T) {
	const n = 100
	pcm := make([]byte, n*2)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(16383)))
	}
	path := filepath.Join(t.TempDir(), "tone.wav")
	wavData := FrameWAV(pcm, MimeParams{BitsPerSample: 16, Rate: int(testRate)})
	if err := os.WriteFile(path, wavData, 0o600); err != nil {
		t.Fatal(err)
	}

	rec, err := LoadWAV(path)
	if err != nil {
		t.Fatalf("LoadWAV: %v", err)
	}
	if rec.Len() != n {
		t.Fatalf("loaded %d samples, want %d", rec.Len(), n)
	}
	if math.Abs(rec.samples[0]-0.5) > 0.01 {
		t.Errorf("sample 0 = %.4f, want ~0.5", rec.samples[0])
	}
	want := 20 * math.Log10(0.5)
	if math.Abs(rec.DBFS()-want) > 0.05 {
		t.Errorf("DBFS = %.3f, want %.3f", rec.DBFS(), want)
	}
}

func TestExportChunkRoundTrip(t *testing.T) {
	rec := makeRecording(seg(500*time.Millisecond, 0.5))
	path := filepath.Join(t.TempDir(), "chunk1.wav")

	c := Chunk{Start: 0, End: rec.Len()}
	if err := rec.ExportChunk(c, path); err != nil {
		t.Fatalf("ExportChunk: %v", err)
	}

	got, err := LoadWAV(path)
	if err != nil {
		t.Fatalf("LoadWAV: %v", err)
	}
	if got.Len() != rec.Len() {
		t.Fatalf("reloaded %d samples, want %d", got.Len(), rec.Len())
	}
	// 16-битная квантизация: сравнение с допуском
	if math.Abs(got.samples[10]-0.5) > 0.01 {
		t.Errorf("sample 10 = %.4f, want ~0.5", got.samples[10])
	}
}
