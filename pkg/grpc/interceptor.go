package grpc

import (
	"context"
	"crypto/subtle"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/joystick"
	"joystick.io/fleet-control/pkg/remote"
)

type authKey struct{}

func AuthFromContext(ctx context.Context) *joystick.AuthContext {
	auth, _ := ctx.Value(authKey{}).(*joystick.AuthContext)
	return auth
}

func firstMetadata(md metadata.MD, key string) string {
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

func (s *DeviceControl) resolveAuth(ctx context.Context) (*joystick.AuthContext, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	apiKey := s.Joystick.Config.APIKey

	if key := firstMetadata(md, strings.ToLower(remote.HeaderAPIKey)); key != "" && apiKey != "" {
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			return nil, joystick.ErrUnauthorized
		}
		auth := &joystick.AuthContext{IsAPIKey: true}
		if user, err := s.Joystick.Auth.GetSystemUser(ctx); err == nil {
			auth.UserID = user.ID
			auth.User = user
		}
		return auth, nil
	}

	if token, found := strings.CutPrefix(firstMetadata(md, "authorization"), "Bearer "); found {
		user, err := s.Joystick.Auth.Authenticate(ctx, strings.TrimSpace(token))
		if err != nil {
			return nil, err
		}
		return &joystick.AuthContext{UserID: user.ID, User: user}, nil
	}

	return nil, joystick.ErrUnauthorized
}

func (s *DeviceControl) CreateAuthInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		auth, err := s.resolveAuth(ctx)
		if err != nil {
			common.GetLoggerWith(common.LoggerNameGrpcServer).
				Debug("Rejected unauthenticated call", zap.String("method", info.FullMethod), zap.Error(err))
			return nil, status.Errorf(codes.Unauthenticated, "unauthorized")
		}
		return handler(context.WithValue(ctx, authKey{}, auth), req)
	}
}

func (s *DeviceControl) CreateRateLimitInterceptor(methods []string) grpc.UnaryServerInterceptor {
	targetMethods := common.Reducer(methods,
		func(m map[string]bool, method string) map[string]bool {
			m[method] = true
			return m
		},
		map[string]bool{},
	)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if targetMethods[info.FullMethod] {
			if r, ok := req.(*structpb.Struct); ok {
				deviceID := r.GetFields()["device"].GetStringValue()
				if !s.CheckDeviceLimiter(deviceID) {
					return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
				}
			}
		}

		return handler(ctx, req)
	}
}
