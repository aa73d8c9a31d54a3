package resource

import (
	"context"
	"io"
)

// RateLimitedWriter charges the controller's IO limiter before each write.
type RateLimitedWriter struct {
	w    io.Writer
	ctx  context.Context
	ctrl *Controller
}

// NewRateLimitedWriter throttles w by rc. A nil rc passes writes through.
func NewRateLimitedWriter(ctx context.Context, w io.Writer, rc *Controller) *RateLimitedWriter {
	return &RateLimitedWriter{w: w, ctx: ctx, ctrl: rc}
}

func (w *RateLimitedWriter) Write(p []byte) (int, error) {
	if err := w.ctrl.AcquireIO(w.ctx, len(p)); err != nil {
		return 0, err
	}
	return w.w.Write(p)
}

// RateLimitedReader charges the controller's IO limiter after each read, for
// the bytes actually returned.
type RateLimitedReader struct {
	r    io.Reader
	ctx  context.Context
	ctrl *Controller
}

// NewRateLimitedReader throttles r by rc. A nil rc passes reads through.
func NewRateLimitedReader(ctx context.Context, r io.Reader, rc *Controller) *RateLimitedReader {
	return &RateLimitedReader{r: r, ctx: ctx, ctrl: rc}
}

func (r *RateLimitedReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := r.r.Read(p)
	if n == 0 {
		return 0, err
	}
	if werr := r.ctrl.AcquireIO(r.ctx, n); werr != nil {
		return n, werr
	}
	return n, err
}
