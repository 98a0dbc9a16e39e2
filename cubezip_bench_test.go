package cubezip

import (
	"math"
	"testing"

	"github.com/cubezip/cubezip/internal/baseline"
	"github.com/cubezip/cubezip/ndarray"
)

func benchData2D(n int) ([]float32, ndarray.Extent) {
	ext := ndarray.Extent{n, n}
	data := make([]float32, ext.Elements())
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			data[r*n+c] = float32(math.Sin(float64(r)/33)*math.Cos(float64(c)/47)) * 1000
		}
	}

	return data, ext
}

func BenchmarkCompress_Serial2D(b *testing.B) {
	codec, err := NewSerialFloat32(2)
	if err != nil {
		b.Fatal(err)
	}
	data, ext := benchData2D(512)
	src, err := ndarray.NewSlice(data, ext)
	if err != nil {
		b.Fatal(err)
	}
	bound, err := codec.CompressedSizeBound(ext)
	if err != nil {
		b.Fatal(err)
	}
	out := make([]byte, bound)

	b.SetBytes(int64(ext.Elements() * 4))
	b.ResetTimer()
	var n int
	for i := 0; i < b.N; i++ {
		n, err = codec.Compress(src, out)
		if err != nil {
			b.Fatal(err)
		}
	}
	b.ReportMetric(float64(ext.Elements()*4)/float64(n), "ratio")
}

func BenchmarkCompress_Parallel2D(b *testing.B) {
	codec, err := NewParallelFloat32(2)
	if err != nil {
		b.Fatal(err)
	}
	data, ext := benchData2D(512)
	src, err := ndarray.NewSlice(data, ext)
	if err != nil {
		b.Fatal(err)
	}
	bound, err := codec.CompressedSizeBound(ext)
	if err != nil {
		b.Fatal(err)
	}
	out := make([]byte, bound)

	b.SetBytes(int64(ext.Elements() * 4))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := codec.Compress(src, out); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecompress_Serial2D(b *testing.B) {
	codec, err := NewSerialFloat32(2)
	if err != nil {
		b.Fatal(err)
	}
	data, ext := benchData2D(512)
	compressed, err := Compress(codec, data, ext)
	if err != nil {
		b.Fatal(err)
	}
	restored := make([]float32, ext.Elements())
	dst, err := ndarray.NewSlice(restored, ext)
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(compressed)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := codec.Decompress(compressed, dst); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRatio_VersusBaselines reports the bit-plane coder's ratio next
// to generic byte compressors over the same raw bytes. The baselines never
// touch the wire format; they are reference points only.
func BenchmarkRatio_VersusBaselines(b *testing.B) {
	codec, err := NewSerialFloat32(2)
	if err != nil {
		b.Fatal(err)
	}
	data, ext := benchData2D(512)
	rawBytes := make([]byte, len(data)*4)
	for i, v := range data {
		bits := math.Float32bits(v)
		rawBytes[i*4] = byte(bits)
		rawBytes[i*4+1] = byte(bits >> 8)
		rawBytes[i*4+2] = byte(bits >> 16)
		rawBytes[i*4+3] = byte(bits >> 24)
	}

	compressed, err := Compress(codec, data, ext)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportMetric(float64(len(rawBytes))/float64(len(compressed)), "ratio")

	for name, ref := range baseline.Codecs() {
		ref := ref
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(rawBytes)))
			var out []byte
			for i := 0; i < b.N; i++ {
				var err error
				out, err = ref.Compress(rawBytes)
				if err != nil {
					b.Fatal(err)
				}
			}
			b.ReportMetric(float64(len(rawBytes))/float64(len(out)), "ratio")
		})
	}
}

func BenchmarkFingerprint(b *testing.B) {
	codec, err := NewSerialFloat32(2)
	if err != nil {
		b.Fatal(err)
	}
	data, ext := benchData2D(512)
	compressed, err := Compress(codec, data, ext)
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(compressed)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Fingerprint(compressed)
	}
}
