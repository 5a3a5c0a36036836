package audio

import "encoding/binary"

// Float32ToPCM16LE converts float mono samples in [-1, 1] to 16-bit signed
// little-endian PCM. Samples are clamped; negative values scale by 0x8000 and
// non-negative by 0x7FFF so both rails are reachable without overflow.
func Float32ToPCM16LE(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		var v int16
		if s < 0 {
			v = int16(s * 0x8000)
		} else {
			v = int16(s * 0x7FFF)
		}
		binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out
}

// PCM16LEToFloat32 converts 16-bit signed little-endian PCM to float mono
// samples. A trailing odd byte is ignored.
func PCM16LEToFloat32(pcm []byte) []float32 {
	n := len(pcm) / 2
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(pcm[2*i:]))
		if v < 0 {
			out[i] = float32(v) / 0x8000
		} else {
			out[i] = float32(v) / 0x7FFF
		}
	}
	return out
}
