package clustergo

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/clustergo/blobstore"
	"github.com/hupe1980/clustergo/codec"
	"github.com/hupe1980/clustergo/distance"
)

// Compression selects the compression applied to snapshot payloads.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 frame compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses zstd compression (better ratio).
	CompressionZSTD Compression = 2
)

// snapshotMagic identifies clustergo model snapshots. The trailing byte
// is the format version.
var snapshotMagic = []byte{'C', 'G', 'K', 'M', 1}

// SnapshotOptions configure SaveModel.
type SnapshotOptions struct {
	// Codec encodes the model payload. Defaults to codec.Default.
	Codec codec.Codec
	// Compression is applied to the encoded payload. Defaults to none.
	Compression Compression
}

// modelSnapshot is the persisted form of a fitted model.
type modelSnapshot struct {
	K         int       `json:"k"`
	Dim       int       `json:"dim"`
	Metric    string    `json:"metric"`
	Centroids []float32 `json:"centroids"`
}

// SaveModel persists the fitted model to the store under the given name.
//
// The snapshot is self-describing: the header records the codec name and
// compression type, so LoadModel needs no out-of-band configuration.
// Returns ErrNotFitted if no Fit has succeeded.
func (e *Engine) SaveModel(ctx context.Context, store blobstore.Store, name string, optFns ...func(*SnapshotOptions)) error {
	if e.model == nil {
		e.logger.LogSnapshot(ctx, name, ErrNotFitted)
		return ErrNotFitted
	}

	opts := SnapshotOptions{
		Codec:       codec.Default,
		Compression: CompressionNone,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}

	payload, err := opts.Codec.Marshal(modelSnapshot{
		K:         e.model.NumClusters(),
		Dim:       e.model.Dim,
		Metric:    e.model.Metric.String(),
		Centroids: e.model.Centroids,
	})
	if err != nil {
		e.logger.LogSnapshot(ctx, name, err)
		return err
	}

	compressed, err := compressPayload(payload, opts.Compression)
	if err != nil {
		e.logger.LogSnapshot(ctx, name, err)
		return err
	}

	var buf bytes.Buffer
	buf.Write(snapshotMagic)
	buf.WriteByte(byte(opts.Compression))
	codecName := opts.Codec.Name()
	buf.WriteByte(byte(len(codecName)))
	buf.WriteString(codecName)
	buf.Write(compressed)

	if err := store.Put(ctx, name, buf.Bytes()); err != nil {
		e.logger.LogSnapshot(ctx, name, err)
		return err
	}

	e.logger.LogSnapshot(ctx, name, nil)
	return nil
}

// WithSnapshotCodec sets the codec used to encode the snapshot payload.
func WithSnapshotCodec(c codec.Codec) func(*SnapshotOptions) {
	return func(o *SnapshotOptions) {
		o.Codec = c
	}
}

// WithSnapshotCompression sets the compression applied to the payload.
func WithSnapshotCompression(c Compression) func(*SnapshotOptions) {
	return func(o *SnapshotOptions) {
		o.Compression = c
	}
}

// LoadModel reads a model snapshot from the store and returns an engine
// ready for Predict. The engine's k and metric are taken from the
// snapshot; fitting it again reuses default iteration settings.
func LoadModel(ctx context.Context, store blobstore.Store, name string) (*Engine, error) {
	raw, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	headerLen := len(snapshotMagic) + 2
	if len(raw) < headerLen || !bytes.Equal(raw[:len(snapshotMagic)], snapshotMagic) {
		return nil, fmt.Errorf("not a clustergo model snapshot: %q", name)
	}

	compression := Compression(raw[len(snapshotMagic)])
	codecNameLen := int(raw[len(snapshotMagic)+1])
	if len(raw) < headerLen+codecNameLen {
		return nil, fmt.Errorf("truncated snapshot header: %q", name)
	}
	codecName := string(raw[headerLen : headerLen+codecNameLen])

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("unknown snapshot codec %q", codecName)
	}

	payload, err := decompressPayload(raw[headerLen+codecNameLen:], compression)
	if err != nil {
		return nil, err
	}

	var snap modelSnapshot
	if err := c.Unmarshal(payload, &snap); err != nil {
		return nil, err
	}

	metric, ok := distance.MetricByName(snap.Metric)
	if !ok {
		return nil, fmt.Errorf("unknown snapshot metric %q", snap.Metric)
	}
	if snap.Dim <= 0 || snap.K <= 0 || len(snap.Centroids) != snap.K*snap.Dim {
		return nil, fmt.Errorf("malformed snapshot: k=%d dim=%d centroids=%d", snap.K, snap.Dim, len(snap.Centroids))
	}

	engine, err := KMeans(snap.K).Build()
	if err != nil {
		return nil, err
	}
	engine.metric = metric
	engine.model = &Model{
		Centroids: snap.Centroids,
		Dim:       snap.Dim,
		Metric:    metric,
	}
	return engine, nil
}

func compressPayload(payload []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return payload, nil
	case CompressionLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(payload); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZSTD:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		defer func() { _ = enc.Close() }()
		return enc.EncodeAll(payload, nil), nil
	default:
		return nil, fmt.Errorf("unknown compression type %d", compression)
	}
}

func decompressPayload(payload []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return payload, nil
	case CompressionLZ4:
		r := lz4.NewReader(bytes.NewReader(payload))
		return io.ReadAll(r)
	case CompressionZSTD:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(payload, nil)
	default:
		return nil, fmt.Errorf("unknown compression type %d", compression)
	}
}
