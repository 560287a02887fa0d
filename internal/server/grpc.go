package server

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/gamerand/internal/random"
)

const (
	transportGRPC = "grpc"

	SamplerServiceName = "gamerand.v1.Sampler"
	SampleMethod       = "/" + SamplerServiceName + "/Sample"
)

// SamplerServer is the gRPC Sampler service. Requests and responses are
// google.protobuf.Struct so no generated stubs are needed.
type SamplerServer interface {
	Sample(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// SamplerServiceDesc describes gamerand.v1.Sampler for grpc.Server.
var SamplerServiceDesc = grpc.ServiceDesc{
	ServiceName: SamplerServiceName,
	HandlerType: (*SamplerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Sample", Handler: sampleHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gamerand/v1/sampler.proto",
}

// RegisterSamplerServer registers srv on s.
func RegisterSamplerServer(s grpc.ServiceRegistrar, srv SamplerServer) {
	s.RegisterService(&SamplerServiceDesc, srv)
}

func sampleHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SamplerServer).Sample(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SampleMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SamplerServer).Sample(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// grpcSampler adapts Sampler to SamplerServer.
type grpcSampler struct {
	sampler *Sampler
}

func (g grpcSampler) Sample(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := requestFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	out, err := g.sampler.Sample(transportGRPC, req)
	if err != nil {
		return nil, status.Error(grpcCode(err), err.Error())
	}
	resp, err := structpb.NewStruct(out)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return resp, nil
}

func requestFromStruct(in *structpb.Struct) (Request, error) {
	fields := in.GetFields()
	kind, ok := fields["kind"]
	if !ok {
		return Request{}, errors.New("kind is required")
	}
	req := Request{Kind: kind.GetStringValue()}
	num := func(key string) (*float64, error) {
		v, ok := fields[key]
		if !ok {
			return nil, nil
		}
		if _, isNum := v.GetKind().(*structpb.Value_NumberValue); !isNum {
			return nil, errors.New(key + " must be a number")
		}
		f := v.GetNumberValue()
		return &f, nil
	}
	var err error
	if req.Min, err = num("min"); err != nil {
		return Request{}, err
	}
	if req.Max, err = num("max"); err != nil {
		return Request{}, err
	}
	if req.Radius, err = num("radius"); err != nil {
		return Request{}, err
	}
	if req.P, err = num("p"); err != nil {
		return Request{}, err
	}
	for key, dst := range map[string]*float64{"x": &req.X, "y": &req.Y, "z": &req.Z} {
		v, err := num(key)
		if err != nil {
			return Request{}, err
		}
		if v != nil {
			*dst = *v
		}
	}
	n, err := num("n")
	if err != nil {
		return Request{}, err
	}
	if n != nil {
		if *n != float64(int(*n)) {
			return Request{}, errors.New("n must be an integer")
		}
		iv := int(*n)
		req.N = &iv
	}
	return req, nil
}

func grpcCode(err error) codes.Code {
	switch {
	case errors.Is(err, random.ErrInvalidArgument):
		return codes.InvalidArgument
	case errors.Is(err, ErrUnknownKind):
		return codes.Unimplemented
	default:
		return codes.Internal
	}
}
