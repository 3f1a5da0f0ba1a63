package logtail

import (
	"context"
	"io"

	"github.com/hpcloud/tail"

	"github.com/cyra/proxylog-report/internal/logging"
)

// Tailer streams lines appended to a log file.
type Tailer struct {
	path      string
	fromStart bool
	poll      bool
	logger    *logging.Logger
}

// New creates a Tailer for path that starts at the current end of file.
func New(path string, logger *logging.Logger) *Tailer {
	return &Tailer{
		path:   path,
		poll:   true,
		logger: logger,
	}
}

// FromStart makes the Tailer emit the existing content before new lines.
func (t *Tailer) FromStart() *Tailer {
	t.fromStart = true
	return t
}

// Tail follows the file and sends each line to out until ctx is done.
// Rotation is handled by reopening the path.
func (t *Tailer) Tail(ctx context.Context, out chan<- string) error {
	cfg := tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Poll:      t.poll,
		Logger:    tail.DiscardingLogger,
	}
	if !t.fromStart {
		cfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	tf, err := tail.TailFile(t.path, cfg)
	if err != nil {
		return err
	}
	defer tf.Cleanup()

	t.logger.Infof("following log file %s", t.path)

	for {
		select {
		case <-ctx.Done():
			_ = tf.Stop()
			return ctx.Err()
		case line, ok := <-tf.Lines:
			if !ok {
				return tf.Err()
			}
			if line.Err != nil {
				t.logger.Errorf("tail error: %v", line.Err)
				continue
			}
			select {
			case out <- line.Text:
			case <-ctx.Done():
				_ = tf.Stop()
				return ctx.Err()
			}
		}
	}
}
