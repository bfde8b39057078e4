package diag

import (
	"fmt"
	"sync"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// parquetRow mirrors Event with parquet struct tags; parquet-go generates
// its schema by reflecting on this shape rather than from Event directly,
// since Event carries JSON tags the parquet writer does not understand.
type parquetRow struct {
	TimestampMs int64   `parquet:"name=timestamp_ms, type=INT64"`
	Kind        string  `parquet:"name=kind, type=BYTE_ARRAY, convertedtype=UTF8"`
	Mode        string  `parquet:"name=mode, type=BYTE_ARRAY, convertedtype=UTF8"`
	GamepadIdx  int32   `parquet:"name=gamepad_index, type=INT32"`
	Button      string  `parquet:"name=button, type=BYTE_ARRAY, convertedtype=UTF8"`
	Timing      string  `parquet:"name=timing, type=BYTE_ARRAY, convertedtype=UTF8"`
	Content     string  `parquet:"name=content, type=BYTE_ARRAY, convertedtype=UTF8"`
	Value       float64 `parquet:"name=value, type=DOUBLE"`
}

// ParquetLogger appends diagnostics events to a columnar Parquet file,
// one row group flush per batch of rows. Durable and queryable offline,
// at the cost of buffering writes rather than flushing per event.
type ParquetLogger struct {
	fw *local.LocalFileWriter
	pw *writer.ParquetWriter
	mu sync.Mutex
}

// NewParquetLogger creates (or truncates) the Parquet file at path.
func NewParquetLogger(path string) (*ParquetLogger, error) {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, fmt.Errorf("parquet logger open: %w", err)
	}
	pw, err := writer.NewParquetWriter(fw, new(parquetRow), 4)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("parquet logger writer: %w", err)
	}
	pw.RowGroupSize = 16 * 1024 * 1024
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	return &ParquetLogger{fw: fw, pw: pw}, nil
}

func (l *ParquetLogger) LogEvent(e Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	row := parquetRow{
		TimestampMs: e.TimestampMs,
		Kind:        e.Kind,
		Mode:        e.Mode,
		GamepadIdx:  int32(e.GamepadIdx),
		Button:      e.Button,
		Timing:      e.Timing,
		Content:     e.Content,
		Value:       e.Value,
	}
	if err := l.pw.Write(row); err != nil {
		return fmt.Errorf("parquet logger write: %w", err)
	}
	return nil
}

func (l *ParquetLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.pw.WriteStop(); err != nil {
		return fmt.Errorf("parquet logger write stop: %w", err)
	}
	return l.fw.Close()
}

var _ EventLogger = (*ParquetLogger)(nil)
