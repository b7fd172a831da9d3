package skilltreev1alpha1

import (
	context "context"

	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"

	"github.com/KirkDiggler/skilltree-api/internal/pkg/jsoncodec"
)

// ProgressionServiceName is the fully qualified service name
const ProgressionServiceName = "skilltree.api.v1alpha1.ProgressionService"

const (
	ProgressionService_StartSession_FullMethodName     = "/skilltree.api.v1alpha1.ProgressionService/StartSession"
	ProgressionService_GetSession_FullMethodName       = "/skilltree.api.v1alpha1.ProgressionService/GetSession"
	ProgressionService_EndSession_FullMethodName       = "/skilltree.api.v1alpha1.ProgressionService/EndSession"
	ProgressionService_GrantSkillPoints_FullMethodName = "/skilltree.api.v1alpha1.ProgressionService/GrantSkillPoints"
	ProgressionService_UnlockSkill_FullMethodName      = "/skilltree.api.v1alpha1.ProgressionService/UnlockSkill"
	ProgressionService_ListSkills_FullMethodName       = "/skilltree.api.v1alpha1.ProgressionService/ListSkills"
	ProgressionService_WatchSession_FullMethodName     = "/skilltree.api.v1alpha1.ProgressionService/WatchSession"
)

// ProgressionServiceClient is the client API for ProgressionService.
type ProgressionServiceClient interface {
	StartSession(ctx context.Context, in *StartSessionRequest, opts ...grpc.CallOption) (*StartSessionResponse, error)
	GetSession(ctx context.Context, in *GetSessionRequest, opts ...grpc.CallOption) (*GetSessionResponse, error)
	EndSession(ctx context.Context, in *EndSessionRequest, opts ...grpc.CallOption) (*EndSessionResponse, error)
	GrantSkillPoints(ctx context.Context, in *GrantSkillPointsRequest, opts ...grpc.CallOption) (*GrantSkillPointsResponse, error)
	UnlockSkill(ctx context.Context, in *UnlockSkillRequest, opts ...grpc.CallOption) (*UnlockSkillResponse, error)
	ListSkills(ctx context.Context, in *ListSkillsRequest, opts ...grpc.CallOption) (*ListSkillsResponse, error)
	WatchSession(ctx context.Context, in *WatchSessionRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[SessionEvent], error)
}

type progressionServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewProgressionServiceClient creates a client that sends every call with
// the JSON content subtype
func NewProgressionServiceClient(cc grpc.ClientConnInterface) ProgressionServiceClient {
	return &progressionServiceClient{cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.StaticMethod(), grpc.CallContentSubtype(jsoncodec.Name)}, opts...)
}

func (c *progressionServiceClient) StartSession(ctx context.Context, in *StartSessionRequest, opts ...grpc.CallOption) (*StartSessionResponse, error) {
	out := new(StartSessionResponse)
	err := c.cc.Invoke(ctx, ProgressionService_StartSession_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *progressionServiceClient) GetSession(ctx context.Context, in *GetSessionRequest, opts ...grpc.CallOption) (*GetSessionResponse, error) {
	out := new(GetSessionResponse)
	err := c.cc.Invoke(ctx, ProgressionService_GetSession_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *progressionServiceClient) EndSession(ctx context.Context, in *EndSessionRequest, opts ...grpc.CallOption) (*EndSessionResponse, error) {
	out := new(EndSessionResponse)
	err := c.cc.Invoke(ctx, ProgressionService_EndSession_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *progressionServiceClient) GrantSkillPoints(ctx context.Context, in *GrantSkillPointsRequest, opts ...grpc.CallOption) (*GrantSkillPointsResponse, error) {
	out := new(GrantSkillPointsResponse)
	err := c.cc.Invoke(ctx, ProgressionService_GrantSkillPoints_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *progressionServiceClient) UnlockSkill(ctx context.Context, in *UnlockSkillRequest, opts ...grpc.CallOption) (*UnlockSkillResponse, error) {
	out := new(UnlockSkillResponse)
	err := c.cc.Invoke(ctx, ProgressionService_UnlockSkill_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *progressionServiceClient) ListSkills(ctx context.Context, in *ListSkillsRequest, opts ...grpc.CallOption) (*ListSkillsResponse, error) {
	out := new(ListSkillsResponse)
	err := c.cc.Invoke(ctx, ProgressionService_ListSkills_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *progressionServiceClient) WatchSession(ctx context.Context, in *WatchSessionRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[SessionEvent], error) {
	stream, err := c.cc.NewStream(ctx, &ProgressionService_ServiceDesc.Streams[0], ProgressionService_WatchSession_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[WatchSessionRequest, SessionEvent]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// ProgressionService_WatchSessionClient is the client side of WatchSession
type ProgressionService_WatchSessionClient = grpc.ServerStreamingClient[SessionEvent]

// ProgressionServiceServer is the server API for ProgressionService.
// Implementations must embed UnimplementedProgressionServiceServer.
type ProgressionServiceServer interface {
	StartSession(context.Context, *StartSessionRequest) (*StartSessionResponse, error)
	GetSession(context.Context, *GetSessionRequest) (*GetSessionResponse, error)
	EndSession(context.Context, *EndSessionRequest) (*EndSessionResponse, error)
	GrantSkillPoints(context.Context, *GrantSkillPointsRequest) (*GrantSkillPointsResponse, error)
	UnlockSkill(context.Context, *UnlockSkillRequest) (*UnlockSkillResponse, error)
	ListSkills(context.Context, *ListSkillsRequest) (*ListSkillsResponse, error)
	WatchSession(*WatchSessionRequest, grpc.ServerStreamingServer[SessionEvent]) error
	mustEmbedUnimplementedProgressionServiceServer()
}

// ProgressionService_WatchSessionServer is the server side of WatchSession
type ProgressionService_WatchSessionServer = grpc.ServerStreamingServer[SessionEvent]

// UnimplementedProgressionServiceServer answers every method with Unimplemented.
// Embed it by value.
type UnimplementedProgressionServiceServer struct{}

func (UnimplementedProgressionServiceServer) StartSession(context.Context, *StartSessionRequest) (*StartSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method StartSession not implemented")
}

func (UnimplementedProgressionServiceServer) GetSession(context.Context, *GetSessionRequest) (*GetSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSession not implemented")
}

func (UnimplementedProgressionServiceServer) EndSession(context.Context, *EndSessionRequest) (*EndSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EndSession not implemented")
}

func (UnimplementedProgressionServiceServer) GrantSkillPoints(context.Context, *GrantSkillPointsRequest) (*GrantSkillPointsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GrantSkillPoints not implemented")
}

func (UnimplementedProgressionServiceServer) UnlockSkill(context.Context, *UnlockSkillRequest) (*UnlockSkillResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UnlockSkill not implemented")
}

func (UnimplementedProgressionServiceServer) ListSkills(context.Context, *ListSkillsRequest) (*ListSkillsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListSkills not implemented")
}

func (UnimplementedProgressionServiceServer) WatchSession(*WatchSessionRequest, grpc.ServerStreamingServer[SessionEvent]) error {
	return status.Errorf(codes.Unimplemented, "method WatchSession not implemented")
}

func (UnimplementedProgressionServiceServer) mustEmbedUnimplementedProgressionServiceServer() {}

// RegisterProgressionServiceServer registers srv on s
func RegisterProgressionServiceServer(s grpc.ServiceRegistrar, srv ProgressionServiceServer) {
	s.RegisterService(&ProgressionService_ServiceDesc, srv)
}

func _ProgressionService_StartSession_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(StartSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProgressionServiceServer).StartSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ProgressionService_StartSession_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProgressionServiceServer).StartSession(ctx, req.(*StartSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProgressionService_GetSession_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProgressionServiceServer).GetSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ProgressionService_GetSession_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProgressionServiceServer).GetSession(ctx, req.(*GetSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProgressionService_EndSession_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(EndSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProgressionServiceServer).EndSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ProgressionService_EndSession_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProgressionServiceServer).EndSession(ctx, req.(*EndSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProgressionService_GrantSkillPoints_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GrantSkillPointsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProgressionServiceServer).GrantSkillPoints(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ProgressionService_GrantSkillPoints_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProgressionServiceServer).GrantSkillPoints(ctx, req.(*GrantSkillPointsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProgressionService_UnlockSkill_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UnlockSkillRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProgressionServiceServer).UnlockSkill(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ProgressionService_UnlockSkill_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProgressionServiceServer).UnlockSkill(ctx, req.(*UnlockSkillRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProgressionService_ListSkills_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListSkillsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProgressionServiceServer).ListSkills(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ProgressionService_ListSkills_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProgressionServiceServer).ListSkills(ctx, req.(*ListSkillsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProgressionService_WatchSession_Handler(srv any, stream grpc.ServerStream) error {
	m := new(WatchSessionRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ProgressionServiceServer).WatchSession(m, &grpc.GenericServerStream[WatchSessionRequest, SessionEvent]{ServerStream: stream})
}

// ProgressionService_ServiceDesc is the grpc.ServiceDesc for ProgressionService
var ProgressionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ProgressionServiceName,
	HandlerType: (*ProgressionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "StartSession",
			Handler:    _ProgressionService_StartSession_Handler,
		},
		{
			MethodName: "GetSession",
			Handler:    _ProgressionService_GetSession_Handler,
		},
		{
			MethodName: "EndSession",
			Handler:    _ProgressionService_EndSession_Handler,
		},
		{
			MethodName: "GrantSkillPoints",
			Handler:    _ProgressionService_GrantSkillPoints_Handler,
		},
		{
			MethodName: "UnlockSkill",
			Handler:    _ProgressionService_UnlockSkill_Handler,
		},
		{
			MethodName: "ListSkills",
			Handler:    _ProgressionService_ListSkills_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchSession",
			Handler:       _ProgressionService_WatchSession_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "skilltree/api/v1alpha1/progression",
}
