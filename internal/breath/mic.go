package breath

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/mjibson/go-dsp/fft"
)

const (
	MicBufferSize = 1024
	FrequencyBins = MicBufferSize / 2
)

// MicCapture samples the default input device and publishes a fixed-size
// frequency-magnitude buffer in the 0–255 range. Acquisition is the only
// asynchronous step; reading magnitudes is non-blocking.
type MicCapture struct {
	stream *portaudio.Stream

	mu         sync.Mutex
	mags       [FrequencyBins]uint8
	complexBuf []complex128
}

// OpenMicrophone acquires the default input device. Failure is reported to
// the caller so it can fall back to manual mode.
func OpenMicrophone() (*MicCapture, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}
	m := &MicCapture{
		complexBuf: make([]complex128, MicBufferSize),
	}
	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, MicBufferSize, m.process)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("start input stream: %w", err)
	}
	m.stream = stream
	return m, nil
}

// process runs on the capture thread: Hann window, FFT, magnitudes scaled
// into the analyser-style byte range.
func (m *MicCapture) process(in []float32) {
	n := len(in)
	if n > MicBufferSize {
		n = MicBufferSize
	}
	for i := 0; i < n; i++ {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(MicBufferSize-1)))
		m.complexBuf[i] = complex(float64(in[i])*window, 0)
	}
	for i := n; i < MicBufferSize; i++ {
		m.complexBuf[i] = 0
	}
	spectrum := fft.FFT(m.complexBuf)

	m.mu.Lock()
	for i := 0; i < FrequencyBins; i++ {
		mag := cmplx.Abs(spectrum[i])
		// Empirical scale: a full-scale sine lands near the top of the range.
		v := mag * (512.0 / MicBufferSize) * 255.0
		m.mags[i] = uint8(clampF(v, 0, 255))
	}
	m.mu.Unlock()
}

// Magnitudes copies the latest frequency-magnitude buffer into dst,
// growing it as needed, and returns it.
func (m *MicCapture) Magnitudes(dst []uint8) []uint8 {
	if cap(dst) < FrequencyBins {
		dst = make([]uint8, FrequencyBins)
	}
	dst = dst[:FrequencyBins]
	m.mu.Lock()
	copy(dst, m.mags[:])
	m.mu.Unlock()
	return dst
}

// Close stops the capture stream and releases the device.
func (m *MicCapture) Close() {
	if m.stream != nil {
		m.stream.Stop()
		m.stream.Close()
		m.stream = nil
	}
	portaudio.Terminate()
}
