package logs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Zitronenjoghurt/simple-turing-machine/modes"
	"github.com/reusee/dscope"
)

func TestHandler(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		logger Logger,
	) {
		logger.Info("test", "hello", "world!")
	})
}

func TestSpanSurvivesWith(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		ctx := context.WithValue(context.Background(), SpanKey, Span("abc"))
		logger.With("program", "adder").InfoContext(ctx, "run")
		line := buf.String()
		if !strings.Contains(line, "logs.span=abc") {
			t.Fatalf("got %v", line)
		}
		if !strings.Contains(line, "program=adder") {
			t.Fatalf("got %v", line)
		}
	})
}

func TestWrapSpan(t *testing.T) {
	err := WrapSpan(context.Background(), context.Canceled)
	if err != context.Canceled {
		t.Fatalf("got %v", err)
	}
	ctx := context.WithValue(context.Background(), SpanKey, Span("abc"))
	err = WrapSpan(ctx, context.Canceled)
	if !strings.Contains(err.Error(), "[span abc]") {
		t.Fatalf("got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
	if WrapSpan(ctx, nil) != nil {
		t.Fatal("should be nil")
	}
}
