package logs

import (
	"context"
	"fmt"
)

// WrapSpan tags err with the span in ctx, so a failed catalog run or CLI
// command can be matched to its log lines.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	span, ok := ctx.Value(SpanKey).(Span)
	if !ok || span == "" {
		return err
	}
	return fmt.Errorf("%w [span %s]", err, span)
}
