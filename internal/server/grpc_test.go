package server

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/gamerand/internal/random"
)

func dialBufconn(t *testing.T) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterSamplerServer(srv, grpcSampler{sampler: NewSampler(random.NewSeededFastRandom(42), 1000, nil)})
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(SamplerServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial bufconn: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func invokeSample(ctx context.Context, conn *grpc.ClientConn, fields map[string]any) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := conn.Invoke(ctx, SampleMethod, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func TestGRPCSample(t *testing.T) {
	conn := dialBufconn(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := invokeSample(ctx, conn, map[string]any{"kind": "float"})
	if err != nil {
		t.Fatalf("Sample(float) returned error: %v", err)
	}
	want := float64(random.NewSeededFastRandom(42).Float())
	if got := out.GetFields()["value"].GetNumberValue(); got != want {
		t.Fatalf("float = %v, want %v", got, want)
	}

	out, err = invokeSample(ctx, conn, map[string]any{"kind": "circle", "radius": 4.0})
	if err != nil {
		t.Fatalf("Sample(circle) returned error: %v", err)
	}
	for _, k := range []string{"x", "y"} {
		v := out.GetFields()[k].GetNumberValue()
		if v < 0 || v > 4 {
			t.Fatalf("circle %s = %v out of [0,4]", k, v)
		}
	}

	out, err = invokeSample(ctx, conn, map[string]any{"kind": "surface", "x": 1.5, "y": -2.0, "z": 0.0})
	if err != nil {
		t.Fatalf("Sample(surface) returned error: %v", err)
	}
	if x := out.GetFields()["x"].GetNumberValue(); x != 1.5 {
		t.Fatalf("surface x = %v, want 1.5", x)
	}

	out, err = invokeSample(ctx, conn, map[string]any{"kind": "stats", "n": 200.0})
	if err != nil {
		t.Fatalf("Sample(stats) returned error: %v", err)
	}
	if n := out.GetFields()["count"].GetNumberValue(); n != 200 {
		t.Fatalf("stats count = %v", n)
	}
}

func TestGRPCErrors(t *testing.T) {
	conn := dialBufconn(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cases := []struct {
		fields map[string]any
		code   codes.Code
	}{
		{map[string]any{}, codes.InvalidArgument},
		{map[string]any{"kind": "range", "min": 3.0, "max": 1.0}, codes.InvalidArgument},
		{map[string]any{"kind": "range", "min": "low", "max": 1.0}, codes.InvalidArgument},
		{map[string]any{"kind": "stats", "n": 1.5}, codes.InvalidArgument},
		{map[string]any{"kind": "dice"}, codes.Unimplemented},
	}
	for _, tc := range cases {
		_, err := invokeSample(ctx, conn, tc.fields)
		if status.Code(err) != tc.code {
			t.Fatalf("%v: code = %v, want %v (err %v)", tc.fields, status.Code(err), tc.code, err)
		}
	}
}

func TestGRPCHealth(t *testing.T) {
	conn := dialBufconn(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: SamplerServiceName})
	if err != nil {
		t.Fatalf("health check returned error: %v", err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Fatalf("health status = %v", resp.GetStatus())
	}
}
