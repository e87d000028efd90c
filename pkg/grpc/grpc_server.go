package grpc

import (
	"context"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"joystick.io/fleet-control/pkg/joystick"
)

const (
	ServiceName = "joystick.DeviceControl"

	MethodRunAction   = "/" + ServiceName + "/RunAction"
	MethodIsPermitted = "/" + ServiceName + "/IsPermitted"
	MethodPing        = "/" + ServiceName + "/Ping"
)

// DeviceControlServer is implemented by DeviceControl. Every method takes and
// returns a structpb.Struct so the service needs no generated code.
type DeviceControlServer interface {
	RunAction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	IsPermitted(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type DeviceControl struct {
	Joystick         *joystick.Joystick
	RateLimiterStore *joystick.RateLimiterStore
}

func (s *DeviceControl) GetLimiter(deviceID string) *rate.Limiter {
	if s.RateLimiterStore == nil {
		return nil
	} else {
		return s.RateLimiterStore.GetLimiter(deviceID)
	}
}

func (s *DeviceControl) CheckDeviceLimiter(deviceID string) bool {
	limiter := s.GetLimiter(deviceID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func unaryHandler(
	method string,
	call func(DeviceControlServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DeviceControlServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + method,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(DeviceControlServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var DeviceControlServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DeviceControlServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("RunAction", DeviceControlServer.RunAction),
		unaryHandler("IsPermitted", DeviceControlServer.IsPermitted),
		unaryHandler("Ping", DeviceControlServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "joystick/device_control",
}

func RegisterDeviceControlServer(s grpc.ServiceRegistrar, srv DeviceControlServer) {
	s.RegisterService(&DeviceControlServiceDesc, srv)
}

// NewServer builds a grpc.Server with the auth and rate limit interceptors
// and the DeviceControl service registered.
func (s *DeviceControl) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		s.CreateAuthInterceptor(),
		s.CreateRateLimitInterceptor([]string{MethodRunAction, MethodPing}),
	))
	server := grpc.NewServer(opts...)
	RegisterDeviceControlServer(server, s)
	return server
}
