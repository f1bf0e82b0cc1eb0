package audio

import (
	"bytes"
	"encoding/binary"
)

// FrameWAV оборачивает сырые PCM-байты в каноничный WAV-контейнер (RIFF).
// Заголовок — 44 байта little-endian, всегда один канал. Чистая функция: без I/O.
func FrameWAV(pcm []byte, p MimeParams) []byte {
	const numChannels = 1

	dataSize := uint32(len(pcm))
	bytesPerSample := uint16(p.BitsPerSample / 8)
	blockAlign := numChannels * bytesPerSample
	byteRate := uint32(p.Rate) * uint32(blockAlign)
	chunkSize := 36 + dataSize

	buf := bytes.NewBuffer(make([]byte, 0, 44+len(pcm)))
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, chunkSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16)) // размер fmt-подблока
	binary.Write(buf, binary.LittleEndian, uint16(1))  // PCM без сжатия
	binary.Write(buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(buf, binary.LittleEndian, uint32(p.Rate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, uint16(p.BitsPerSample))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	buf.Write(pcm)

	return buf.Bytes()
}
