package ctxutil

import (
	"context"
	"testing"
)

func TestRequestDataRoundTrip(t *testing.T) {
	ctx := WithRequestData(context.Background(), &RequestData{UserID: 9, Explicit: true})
	rd := GetRequestData(ctx)
	if rd == nil || rd.UserID != 9 || !rd.Explicit {
		t.Fatalf("unexpected request data: %+v", rd)
	}
	if GetRequestData(context.Background()) != nil {
		t.Fatalf("expected nil request data on bare context")
	}
}

func TestTraceDataNilContext(t *testing.T) {
	if GetTraceData(nil) != nil {
		t.Fatalf("expected nil trace data")
	}
	ctx := WithTraceData(nil, &TraceData{RequestID: "r1"})
	if td := GetTraceData(ctx); td == nil || td.RequestID != "r1" {
		t.Fatalf("unexpected trace data: %+v", td)
	}
}
