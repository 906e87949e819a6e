package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	l := NoopLayoutHooks{}
	l.OnPlacementStart(ctx, 5)
	l.OnPlacementComplete(ctx, 5, 2.5, time.Second)
	l.OnSimulationStart(ctx, 100, 4)
	l.OnSimulationComplete(ctx, 300, 0.001, time.Second)

	e := NoopEvalHooks{}
	e.OnMeasure(ctx, 100, 200, time.Second)
	e.OnUserChecked(ctx, "quick-glancer", true, 1.0)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}
	if _, ok := Eval().(NoopEvalHooks); !ok {
		t.Error("Eval() should return NoopEvalHooks by default")
	}

	customLayout := &testLayoutHooks{}
	SetLayoutHooks(customLayout)
	if Layout() != customLayout {
		t.Error("SetLayoutHooks should set custom hooks")
	}

	customEval := &testEvalHooks{}
	SetEvalHooks(customEval)
	if Eval() != customEval {
		t.Error("SetEvalHooks should set custom hooks")
	}

	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore NoopLayoutHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testLayoutHooks{}
	SetLayoutHooks(custom)
	SetLayoutHooks(nil)

	if Layout() != custom {
		t.Error("SetLayoutHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testLayoutHooks struct{ NoopLayoutHooks }
type testEvalHooks struct{ NoopEvalHooks }
