package logger

import (
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// prefixEncoder writes a fixed prefix in front of every line of the wrapped encoder.
type prefixEncoder struct {
	zapcore.Encoder

	pool   buffer.Pool
	prefix string
}

func (e *prefixEncoder) Clone() zapcore.Encoder {
	return &prefixEncoder{
		Encoder: e.Encoder.Clone(),
		pool:    e.pool,
		prefix:  e.prefix,
	}
}

func (e *prefixEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line, err := e.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}
	defer line.Free()

	buf := e.pool.Get()
	buf.AppendString(e.prefix)
	buf.AppendString(" ")
	_, err = buf.Write(line.Bytes())
	if err != nil {
		return nil, err
	}
	return buf, nil
}
